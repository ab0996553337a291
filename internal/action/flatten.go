package action

import "github.com/kpumuk/actiontree/internal/rng"

// Patch is one (range, text) instruction produced by flattening a tree:
// the bytes covered by Range are replaced by Text. A zero-length Range
// is a pure insertion at that point.
type Patch struct {
	Range rng.Range
	Text  string
}

// OrderedReplacements flattens a into the ordered patch list of §4.3.
// Children are already sorted and disjoint by construction, so no
// additional sort is needed; the returned Range.Begin values are
// non-decreasing (law L4).
func (a Action) OrderedReplacements() []Patch {
	var out []Patch
	a.appendReplacements(&out)
	return out
}

func (a Action) appendReplacements(out *[]Patch) {
	if a.InsertBefore != "" {
		*out = append(*out, Patch{Range: a.Range.BeginOnly(), Text: a.InsertBefore})
	}
	if a.Replacement != nil {
		*out = append(*out, Patch{Range: a.Range, Text: *a.Replacement})
	} else {
		for _, c := range a.Children {
			c.appendReplacements(out)
		}
	}
	if a.InsertAfter != "" {
		*out = append(*out, Patch{Range: a.Range.EndOnly(), Text: a.InsertAfter})
	}
}
