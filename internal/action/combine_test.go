package action

import (
	"errors"
	"testing"

	"github.com/kpumuk/actiontree/internal/policy"
	"github.com/kpumuk/actiontree/internal/rng"
)

func rangeOf(begin, end int) rng.Range {
	return rng.Range{Begin: rng.Offset(begin), End: rng.Offset(end)}
}

func mustCombine(t *testing.T, self Action, act Action, enf policy.Enforcer) Action {
	t.Helper()
	out, err := Combine(self, act, enf)
	if err != nil {
		t.Fatalf("Combine() error = %v", err)
	}
	return out
}

func applyPatches(src string, patches []Patch) string {
	var out []byte
	cursor := rng.Offset(0)
	for _, p := range patches {
		out = append(out, src[cursor:p.Range.Begin]...)
		out = append(out, p.Text...)
		cursor = p.Range.End
	}
	out = append(out, src[cursor:]...)
	return string(out)
}

func TestCombine_InsertBeforeAfterWholeRange(t *testing.T) {
	t.Parallel()

	root := Root(rangeOf(0, 3))
	enf := policy.DefaultSettings().Enforcer()

	root = mustCombine(t, root, Leaf(rangeOf(0, 3), "X", nil, ""), enf)
	root = mustCombine(t, root, Leaf(rangeOf(0, 3), "", nil, "Y"), enf)

	got := applyPatches("abc", root.OrderedReplacements())
	if got != "XabcY" {
		t.Fatalf("got %q, want %q", got, "XabcY")
	}
}

func TestCombine_NestedInsertionOrdering(t *testing.T) {
	t.Parallel()

	root := Root(rangeOf(0, 3))
	enf := policy.DefaultSettings().Enforcer()

	root = mustCombine(t, root, Leaf(rangeOf(0, 3), "1", nil, ""), enf)
	root = mustCombine(t, root, Leaf(rangeOf(0, 3), "", nil, "2"), enf)
	root = mustCombine(t, root, Leaf(rangeOf(0, 1), "3", nil, ""), enf)
	root = mustCombine(t, root, Leaf(rangeOf(0, 1), "", nil, "4"), enf)

	got := applyPatches("abc", root.OrderedReplacements())
	if got != "13a4bc2" {
		t.Fatalf("got %q, want %q", got, "13a4bc2")
	}
}

func TestCombine_CrossingDeletionsFuse(t *testing.T) {
	t.Parallel()

	root := Root(rangeOf(0, 6))
	enf := policy.DefaultSettings().Enforcer() // CrossingDeletions defaults to accept

	empty := ""
	root = mustCombine(t, root, Leaf(rangeOf(1, 3), "", &empty, ""), enf)
	root = mustCombine(t, root, Leaf(rangeOf(2, 5), "", &empty, ""), enf)

	got := applyPatches("abcdef", root.OrderedReplacements())
	if got != "af" {
		t.Fatalf("got %q, want %q", got, "af")
	}
}

func TestCombine_DifferentReplacementsDefaultRaises(t *testing.T) {
	t.Parallel()

	root := Root(rangeOf(0, 6))
	enf := policy.DefaultSettings().Enforcer()

	x, y := "X", "Y"
	root = mustCombine(t, root, Leaf(rangeOf(1, 3), "", &x, ""), enf)

	_, err := Combine(root, Leaf(rangeOf(1, 3), "", &y, ""), enf)
	if err == nil {
		t.Fatal("Combine() error = nil, want DifferentReplacements")
	}
	var perr *policy.Error
	if !errors.As(err, &perr) || perr.Kind != policy.DifferentReplacements {
		t.Fatalf("Combine() error = %v, want *policy.Error{Kind: DifferentReplacements}", err)
	}
}

func TestCombine_DifferentReplacementsAcceptedNewerWins(t *testing.T) {
	t.Parallel()

	settings := policy.DefaultSettings()
	settings.DifferentReplacements = policy.SettingAccept
	enf := settings.Enforcer()

	root := Root(rangeOf(0, 6))
	x, y := "X", "Y"
	root = mustCombine(t, root, Leaf(rangeOf(1, 3), "", &x, ""), enf)
	root = mustCombine(t, root, Leaf(rangeOf(1, 3), "", &y, ""), enf)

	got := applyPatches("abcdef", root.OrderedReplacements())
	if got != "aYdef" {
		t.Fatalf("got %q, want %q", got, "aYdef")
	}
}

func TestCombine_ZeroLengthInsertionOrderAtSamePoint(t *testing.T) {
	t.Parallel()

	root := Root(rangeOf(0, 5))
	enf := policy.DefaultSettings().Enforcer()

	root = mustCombine(t, root, Leaf(rangeOf(2, 2), "_", nil, ""), enf)
	root = mustCombine(t, root, Leaf(rangeOf(2, 2), "", nil, "_"), enf)

	got := applyPatches("hello", root.OrderedReplacements())
	if got != "he__llo" {
		t.Fatalf("got %q, want %q", got, "he__llo")
	}
}

func TestCombine_SwallowedInsertionsDefaultRaises(t *testing.T) {
	t.Parallel()

	root := Root(rangeOf(0, 3))
	enf := policy.DefaultSettings().Enforcer()

	root = mustCombine(t, root, Leaf(rangeOf(1, 2), "X", nil, ""), enf)

	z := "Z"
	_, err := Combine(root, Leaf(rangeOf(0, 3), "", &z, ""), enf)
	if err == nil {
		t.Fatal("Combine() error = nil, want SwallowedInsertions")
	}
	var perr *policy.Error
	if !errors.As(err, &perr) || perr.Kind != policy.SwallowedInsertions {
		t.Fatalf("Combine() error = %v, want *policy.Error{Kind: SwallowedInsertions}", err)
	}
}

func TestCombine_SwallowedInsertionsAccepted(t *testing.T) {
	t.Parallel()

	settings := policy.DefaultSettings()
	settings.SwallowedInsertions = policy.SettingAccept
	enf := settings.Enforcer()

	root := Root(rangeOf(0, 3))
	root = mustCombine(t, root, Leaf(rangeOf(1, 2), "X", nil, ""), enf)

	z := "Z"
	root = mustCombine(t, root, Leaf(rangeOf(0, 3), "", &z, ""), enf)

	got := applyPatches("abc", root.OrderedReplacements())
	if got != "Z" {
		t.Fatalf("got %q, want %q", got, "Z")
	}
	if len(root.Children) != 0 {
		t.Fatalf("root.Children = %v, want empty after replacement swallow", root.Children)
	}
}

func TestCombine_CrossingInsertionsRaisesByDefault(t *testing.T) {
	t.Parallel()

	root := Root(rangeOf(0, 10))
	enf := policy.DefaultSettings().Enforcer()

	root = mustCombine(t, root, Leaf(rangeOf(1, 4), "X", nil, ""), enf)

	_, err := Combine(root, Leaf(rangeOf(2, 6), "Y", nil, ""), enf)
	if err == nil {
		t.Fatal("Combine() error = nil, want CrossingInsertions")
	}
	var perr *policy.Error
	if !errors.As(err, &perr) || perr.Kind != policy.CrossingInsertions {
		t.Fatalf("Combine() error = %v, want *policy.Error{Kind: CrossingInsertions}", err)
	}
}

// Confirms spec.md §9 Open Question 2: a crossing pair where one side is a
// pure deletion and the other carries insertion content always escalates
// to CrossingInsertions, never CrossingDeletions.
func TestCombine_MixedOverlapAlwaysEscalatesToCrossingInsertions(t *testing.T) {
	t.Parallel()

	settings := policy.DefaultSettings()
	settings.CrossingDeletions = policy.SettingAccept
	enf := settings.Enforcer()

	root := Root(rangeOf(0, 10))
	empty := ""
	root = mustCombine(t, root, Leaf(rangeOf(1, 4), "", &empty, ""), enf)

	_, err := Combine(root, Leaf(rangeOf(2, 6), "Y", nil, ""), enf)
	if err == nil {
		t.Fatal("Combine() error = nil, want CrossingInsertions despite CrossingDeletions=accept")
	}
	var perr *policy.Error
	if !errors.As(err, &perr) || perr.Kind != policy.CrossingInsertions {
		t.Fatalf("Combine() error = %v, want *policy.Error{Kind: CrossingInsertions}", err)
	}
}

func TestCombine_DisjointEditsCommute(t *testing.T) {
	t.Parallel()

	enf := policy.DefaultSettings().Enforcer()

	a := Leaf(rangeOf(1, 2), "A", nil, "")
	b := Leaf(rangeOf(4, 5), "B", nil, "")

	forward := Root(rangeOf(0, 6))
	forward = mustCombine(t, forward, a, enf)
	forward = mustCombine(t, forward, b, enf)

	backward := Root(rangeOf(0, 6))
	backward = mustCombine(t, backward, b, enf)
	backward = mustCombine(t, backward, a, enf)

	src := "abcdef"
	if got, want := applyPatches(src, forward.OrderedReplacements()), applyPatches(src, backward.OrderedReplacements()); got != want {
		t.Fatalf("order dependent: forward=%q backward=%q", got, want)
	}
}

func TestCombine_EmptyEditIsNoop(t *testing.T) {
	t.Parallel()

	enf := policy.DefaultSettings().Enforcer()
	root := Root(rangeOf(0, 3))

	before, err := Combine(root, Leaf(rangeOf(0, 3), "", nil, ""), enf)
	if err != nil {
		t.Fatalf("Combine() error = %v", err)
	}
	if applyPatches("abc", before.OrderedReplacements()) != "abc" {
		t.Fatalf("empty insert_before/after changed output")
	}

	same := "abc"
	after, err := Combine(root, Leaf(rangeOf(0, 3), "", &same, ""), enf)
	if err != nil {
		t.Fatalf("Combine() error = %v", err)
	}
	if applyPatches("abc", after.OrderedReplacements()) != "abc" {
		t.Fatalf("replace with identical text changed output")
	}
}

func TestOrderedReplacements_MonotonicBegin(t *testing.T) {
	t.Parallel()

	enf := policy.DefaultSettings().Enforcer()
	root := Root(rangeOf(0, 20))
	root = mustCombine(t, root, Leaf(rangeOf(5, 8), "A", nil, "B"), enf)
	root = mustCombine(t, root, Leaf(rangeOf(1, 2), "C", nil, ""), enf)
	root = mustCombine(t, root, Leaf(rangeOf(10, 10), "D", nil, ""), enf)

	patches := root.OrderedReplacements()
	for i := 1; i < len(patches); i++ {
		if patches[i].Range.Begin < patches[i-1].Range.Begin {
			t.Fatalf("patches not monotonic: %v", patches)
		}
	}
}
