// Package rewrite implements TreeRewriter, the public edit API of
// spec.md §4.1: it owns the source buffer, the root action covering it,
// and the policy enforcer, and turns a stream of local edit calls into
// a single conflict-checked action tree that Process flattens and
// applies.
package rewrite

import (
	"fmt"

	"github.com/kpumuk/actiontree/internal/action"
	"github.com/kpumuk/actiontree/internal/apply"
	"github.com/kpumuk/actiontree/internal/policy"
	"github.com/kpumuk/actiontree/internal/rng"
)

// Buffer is the opaque source buffer collaborator of spec.md §6: the
// rewriter only ever needs the raw text and the range it spans.
type Buffer interface {
	SourceText() string
	FullRange() rng.Range
}

// StringBuffer is the simplest Buffer: a source string held in memory
// for the lifetime of the rewriter.
type StringBuffer string

func (b StringBuffer) SourceText() string { return string(b) }

func (b StringBuffer) FullRange() rng.Range {
	return rng.Range{Begin: 0, End: rng.Offset(len(b))}
}

// TreeRewriter accumulates edits into an action tree over one buffer
// and produces the rewritten text on demand. It is not safe for
// concurrent writers; concurrent calls to Process on a completed tree
// are safe since actions are immutable once built.
type TreeRewriter struct {
	buf  Buffer
	root action.Action
	enf  policy.Enforcer
}

// New constructs a rewriter over buf using enf to resolve conflicts.
func New(buf Buffer, enf policy.Enforcer) *TreeRewriter {
	return &TreeRewriter{
		buf:  buf,
		root: action.Root(buf.FullRange()),
		enf:  enf,
	}
}

// NewWithDefaults constructs a rewriter using spec.md §6's default
// policy and no diagnostic sink.
func NewWithDefaults(buf Buffer) *TreeRewriter {
	return New(buf, policy.DefaultSettings().Enforcer())
}

func (rw *TreeRewriter) validate(r rng.Range) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("rewrite: %w", err)
	}
	full := rw.buf.FullRange()
	if r.Begin < full.Begin || r.End > full.End {
		return fmt.Errorf("rewrite: range %s outside buffer range %s", r, full)
	}
	return nil
}

func (rw *TreeRewriter) commit(leaf action.Action) error {
	next, err := action.Combine(rw.root, leaf, rw.enf)
	if err != nil {
		return err
	}
	rw.root = next
	return nil
}

// InsertBefore prepends text at r.Begin.
func (rw *TreeRewriter) InsertBefore(r rng.Range, text string) error {
	if err := rw.validate(r); err != nil {
		return err
	}
	return rw.commit(action.Leaf(r, text, nil, ""))
}

// InsertAfter appends text at r.End.
func (rw *TreeRewriter) InsertAfter(r rng.Range, text string) error {
	if err := rw.validate(r); err != nil {
		return err
	}
	return rw.commit(action.Leaf(r, "", nil, text))
}

// Replace substitutes the entire r with text. An empty text over an
// empty range is a documented no-op (law L2).
func (rw *TreeRewriter) Replace(r rng.Range, text string) error {
	if err := rw.validate(r); err != nil {
		return err
	}
	return rw.commit(action.Leaf(r, "", &text, ""))
}

// Remove deletes r; equivalent to Replace(r, "").
func (rw *TreeRewriter) Remove(r rng.Range) error {
	return rw.Replace(r, "")
}

// Wrap surrounds r with before and after text, equivalent to
// InsertBefore(r.BeginOnly(), before) followed by
// InsertAfter(r.EndOnly(), after) (law L3).
func (rw *TreeRewriter) Wrap(r rng.Range, before, after string) error {
	if err := rw.InsertBefore(r.BeginOnly(), before); err != nil {
		return err
	}
	return rw.InsertAfter(r.EndOnly(), after)
}

// Process flattens the action tree and applies it to the source
// buffer, returning the rewritten text. Process is pure and callable
// repeatedly.
func (rw *TreeRewriter) Process() (string, error) {
	patches := rw.root.OrderedReplacements()
	return apply.Apply([]byte(rw.buf.SourceText()), patches)
}
