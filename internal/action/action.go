// Package action implements the action tree: an immutable hierarchy of
// edit contributions over disjoint, strictly-nested source ranges, the
// recursive combine algorithm that merges a new leaf into an existing
// tree, and the flattening pass that linearises a tree into an ordered
// patch list.
package action

import (
	"github.com/kpumuk/actiontree/internal/rng"
)

// Action is an immutable node describing one contribution at Range: an
// optional prefix insertion, an optional whole-range replacement, an
// optional suffix insertion, and an ordered list of children strictly
// contained within Range. Children are kept sorted by Range.Begin and
// are pairwise disjoint (invariants I1-I3 of spec.md §8); a non-nil
// Replacement always implies no children (I4).
type Action struct {
	Range        rng.Range
	InsertBefore string
	Replacement  *string
	InsertAfter  string
	Children     []Action
}

// Leaf builds a fresh leaf action with no children, ready to be combined
// into a tree via Combine.
func Leaf(r rng.Range, insertBefore string, replacement *string, insertAfter string) Action {
	return Action{
		Range:        r,
		InsertBefore: insertBefore,
		Replacement:  replacement,
		InsertAfter:  insertAfter,
	}
}

// Root builds the tree root covering the whole buffer: no insertions,
// no replacement, no children.
func Root(full rng.Range) Action {
	return Action{Range: full}
}

// IsEmpty reports whether the action contributes nothing: no
// insertions, no replacement, and (transitively) no children carry
// content either. An empty leaf is a documented no-op for Combine.
func (a Action) IsEmpty() bool {
	if a.InsertBefore != "" || a.InsertAfter != "" || a.Replacement != nil {
		return false
	}
	for _, c := range a.Children {
		if !c.IsEmpty() {
			return false
		}
	}
	return true
}

// isInsertion reports whether a carries insertion content of its own:
// a non-empty InsertBefore/InsertAfter or a non-empty Replacement. A
// pure deletion (Replacement pointing at "") and a no-op leaf are not
// insertions; this is the test place_in_hierarchy uses to decide
// between CrossingDeletions and CrossingInsertions.
func (a Action) isInsertion() bool {
	if a.InsertBefore != "" || a.InsertAfter != "" {
		return true
	}
	return a.Replacement != nil && *a.Replacement != ""
}

// withChildren returns a copy of a with Children replaced. Used by the
// combine algorithm to build fresh nodes without mutating shared state.
func (a Action) withChildren(children []Action) Action {
	a.Children = children
	return a
}
