package action

import (
	"fmt"
	"slices"

	"github.com/kpumuk/actiontree/internal/policy"
	"github.com/kpumuk/actiontree/internal/rng"
)

// Combine merges a fresh leaf action into self, which must already
// contain act.Range (the caller, TreeRewriter, enforces that). It
// returns a new action value; self and act are left untouched.
//
// combine is the entry point of §4.2: an empty act is a no-op, an act
// whose range equals self's range merges in place, and anything else
// is placed into self's child hierarchy.
func Combine(self, act Action, enf policy.Enforcer) (Action, error) {
	if act.IsEmpty() {
		return self, nil
	}
	if act.Range.Equal(self.Range) {
		return merge(self, act, enf)
	}
	children, err := placeChild(self.Range, self.Children, act, enf)
	if err != nil {
		return self, err
	}
	return self.withChildren(children), nil
}

// merge combines two actions that apply to the exact same range. The
// newer action's insertions wrap the older ones (insert_before
// prepends, insert_after appends — the documented asymmetry of
// spec.md §9 Open Question 1); a newer replacement wins after the
// enforcer is consulted if the two disagree; and if the merged action
// ends up with a replacement, any existing children are swallowed.
func merge(self, act Action, enf policy.Enforcer) (Action, error) {
	insertBefore := act.InsertBefore + self.InsertBefore
	insertAfter := self.InsertAfter + act.InsertAfter

	replacement, err := resolveReplacement(self, act, enf)
	if err != nil {
		return self, err
	}

	var children []Action
	if replacement != nil {
		children, err = swallowChildren(self.Range, self.Children, enf)
		if err != nil {
			return self, err
		}
	} else {
		children = self.Children
		for _, c := range act.Children {
			children, err = placeChild(self.Range, children, c, enf)
			if err != nil {
				return self, err
			}
		}
	}

	return Action{
		Range:        self.Range,
		InsertBefore: insertBefore,
		Replacement:  replacement,
		InsertAfter:  insertAfter,
		Children:     children,
	}, nil
}

func resolveReplacement(self, act Action, enf policy.Enforcer) (*string, error) {
	if act.Replacement == nil {
		return self.Replacement, nil
	}
	if self.Replacement != nil && *self.Replacement != *act.Replacement {
		diag := policy.Diagnostic{
			Range:   self.Range,
			Message: fmt.Sprintf("replacement %q conflicts with existing replacement %q", *act.Replacement, *self.Replacement),
		}
		if enf.Check(policy.DifferentReplacements, diag) == policy.Raise {
			return nil, &policy.Error{
				Kind:    policy.DifferentReplacements,
				Range:   self.Range,
				Message: diag.Message,
			}
		}
	}
	// The newer replacement always wins once the conflict (if any) has
	// been cleared by the enforcer.
	return act.Replacement, nil
}

// swallowChildren discards children because the owning action just
// acquired a replacement (invariant I4). Children carrying insertion
// content anywhere in their subtree are reported to the enforcer as
// SwallowedInsertions before being dropped; pure-deletion children are
// removed silently.
func swallowChildren(parent rng.Range, children []Action, enf policy.Enforcer) ([]Action, error) {
	var swallowed []rng.Range
	for _, c := range children {
		if containsInsertion(c) {
			swallowed = append(swallowed, c.Range)
		}
	}
	if len(swallowed) == 0 {
		return nil, nil
	}
	diag := policy.Diagnostic{
		Range:    parent,
		Message:  "replacement discards children carrying insertions",
		Conflict: swallowed,
	}
	if enf.Check(policy.SwallowedInsertions, diag) == policy.Raise {
		return nil, &policy.Error{
			Kind:     policy.SwallowedInsertions,
			Range:    parent,
			Message:  diag.Message,
			Conflict: swallowed,
		}
	}
	return nil, nil
}

// containsInsertion reports whether a, or any descendant of a, carries
// insertion content. Used both to decide which swallowed children are
// worth reporting and to decide whether an overlap is a
// CrossingInsertions or a CrossingDeletions conflict.
func containsInsertion(a Action) bool {
	if a.isInsertion() {
		return true
	}
	for _, c := range a.Children {
		if containsInsertion(c) {
			return true
		}
	}
	return false
}

// placeChild implements place_in_hierarchy: it classifies children
// against act.Range and returns the updated, sorted, pairwise-disjoint
// child list.
func placeChild(parent rng.Range, children []Action, act Action, enf policy.Enforcer) ([]Action, error) {
	// Equal range: act becomes the same node as an existing child: the
	// equal-range / empty-range-at-a-point corner case of §4.2 always
	// lands here, since Range.Equal is checked directly rather than via
	// binary-search index arithmetic.
	for i, c := range children {
		if c.Range.Equal(act.Range) {
			merged, err := Combine(c, act, enf)
			if err != nil {
				return children, err
			}
			out := slices.Clone(children)
			out[i] = merged
			return out, nil
		}
	}

	// Exactly one child strictly contains act: recurse into it.
	for i, c := range children {
		if c.Range.Contains(act.Range) {
			merged, err := Combine(c, act, enf)
			if err != nil {
				return children, err
			}
			out := slices.Clone(children)
			out[i] = merged
			return out, nil
		}
	}

	// Classify the remaining children: those act strictly contains
	// (candidates for wrapping), and those that partially overlap act's
	// boundary (crossing).
	var containedIdx, crossingIdx []int
	for i, c := range children {
		switch {
		case c.Range.Disjoint(act.Range):
			// left or right sibling, not involved.
		case act.Range.Contains(c.Range):
			containedIdx = append(containedIdx, i)
		default:
			crossingIdx = append(crossingIdx, i)
		}
	}

	if len(crossingIdx) == 0 {
		return wrapContained(children, containedIdx, act, enf)
	}
	return resolveCrossing(parent, children, append(append([]int{}, containedIdx...), crossingIdx...), act, enf)
}

// wrapContained implements case 3: act strictly contains zero or more
// existing children (and overlaps none). Those children become act's
// children, and act is inserted as a new sibling in their place. If act
// carries a replacement, the contained children are swallowed instead
// (invariant I4), consulting the enforcer as merge does.
func wrapContained(children []Action, containedIdx []int, act Action, enf policy.Enforcer) ([]Action, error) {
	if len(containedIdx) == 0 {
		return insertSibling(children, act), nil
	}

	wrapped := make([]Action, 0, len(containedIdx))
	for _, i := range containedIdx {
		wrapped = append(wrapped, children[i])
	}
	if act.Replacement != nil {
		if _, err := swallowChildren(act.Range, wrapped, enf); err != nil {
			return children, err
		}
		wrapped = nil
	}
	node := act.withChildren(wrapped)

	// act's own children (ordinarily none, for a caller-supplied leaf)
	// are merged in on top of the absorbed ones.
	var err error
	nodeChildren := node.Children
	for _, c := range act.Children {
		nodeChildren, err = placeChild(act.Range, nodeChildren, c, enf)
		if err != nil {
			return children, err
		}
	}
	node = node.withChildren(nodeChildren)

	out := make([]Action, 0, len(children)-len(containedIdx)+1)
	inserted := false
	contained := make(map[int]bool, len(containedIdx))
	for _, i := range containedIdx {
		contained[i] = true
	}
	for i, c := range children {
		if contained[i] {
			if !inserted {
				out = append(out, node)
				inserted = true
			}
			continue
		}
		out = append(out, c)
	}
	if !inserted {
		out = append(out, node)
	}
	slices.SortFunc(out, func(a, b Action) int {
		if a.Range.Begin != b.Range.Begin {
			return int(a.Range.Begin - b.Range.Begin)
		}
		// An empty range at a point sorts before a range starting there.
		return int(a.Range.End - b.Range.End)
	})
	return out, nil
}

// resolveCrossing implements case 4: at least one child's range
// partially overlaps act's boundary. If either side carries insertion
// content the conflict is CrossingInsertions and is never fused; if
// both sides are pure deletions it is CrossingDeletions and, unless
// raised, the deletions are fused into one joined-range deletion.
func resolveCrossing(parent rng.Range, children []Action, nonDisjointIdx []int, act Action, enf policy.Enforcer) ([]Action, error) {
	joined := act.Range
	var conflictRanges []rng.Range
	insertionInvolved := containsInsertion(act)
	for _, i := range nonDisjointIdx {
		c := children[i]
		joined = joined.Join(c.Range)
		conflictRanges = append(conflictRanges, c.Range)
		if containsInsertion(c) {
			insertionInvolved = true
		}
	}

	remaining := dropIndices(children, nonDisjointIdx)

	if insertionInvolved {
		diag := policy.Diagnostic{
			Range:    act.Range,
			Message:  "insertion overlaps an existing action's range",
			Conflict: conflictRanges,
		}
		if enf.Check(policy.CrossingInsertions, diag) == policy.Raise {
			return children, &policy.Error{
				Kind:     policy.CrossingInsertions,
				Range:    act.Range,
				Message:  diag.Message,
				Conflict: conflictRanges,
			}
		}
		// Accepted or warned: the new action wins outright. The
		// colliding children are dropped rather than fused, since a
		// lossless fuse of insertion content has no defined rule.
		return insertSibling(remaining, act), nil
	}

	diag := policy.Diagnostic{
		Range:    act.Range,
		Message:  "deletions overlap",
		Conflict: conflictRanges,
	}
	if enf.Check(policy.CrossingDeletions, diag) == policy.Raise {
		return children, &policy.Error{
			Kind:     policy.CrossingDeletions,
			Range:    act.Range,
			Message:  diag.Message,
			Conflict: conflictRanges,
		}
	}

	empty := ""
	fused := Leaf(joined, "", &empty, "")
	return placeChild(parent, remaining, fused, enf)
}

func dropIndices(children []Action, idx []int) []Action {
	drop := make(map[int]bool, len(idx))
	for _, i := range idx {
		drop[i] = true
	}
	out := make([]Action, 0, len(children)-len(idx))
	for i, c := range children {
		if !drop[i] {
			out = append(out, c)
		}
	}
	return out
}

// insertSibling inserts act into children at its sorted position; an
// empty act goes before a child that starts at the same offset. The
// caller guarantees act.Range is disjoint from every entry in children.
func insertSibling(children []Action, act Action) []Action {
	out := make([]Action, 0, len(children)+1)
	inserted := false
	for _, c := range children {
		if !inserted && (act.Range.Begin < c.Range.Begin || (act.Range.Begin == c.Range.Begin && act.Range.Empty())) {
			out = append(out, act)
			inserted = true
		}
		out = append(out, c)
	}
	if !inserted {
		out = append(out, act)
	}
	return out
}
