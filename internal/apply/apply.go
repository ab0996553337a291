// Package apply implements the applier of spec.md §4.4: given a flat,
// range-ordered patch list and the original source, it produces the
// rewritten text by splicing insertions and replacements into the
// source as it walks it left to right.
package apply

import (
	"bytes"
	"fmt"

	"github.com/kpumuk/actiontree/internal/action"
	"github.com/kpumuk/actiontree/internal/rng"
)

// Apply walks src from offset 0 to its end, copying untouched bytes and
// splicing each patch's text in at its range. Patches must be in source
// order, each starting at or after the end of the one before — exactly
// what action.Action.OrderedReplacements produces — so Apply does not
// re-sort; it returns an error for a patch that starts before the
// cursor or ends past the source.
func Apply(src []byte, patches []action.Patch) (string, error) {
	srcLen := rng.Offset(len(src))

	var out bytes.Buffer
	out.Grow(len(src))
	cursor := rng.Offset(0)
	for _, p := range patches {
		if p.Range.Begin < cursor {
			return "", fmt.Errorf("apply: patch %s starts before cursor %d (out-of-order or overlapping patches)", p.Range, cursor)
		}
		if p.Range.End > srcLen {
			return "", fmt.Errorf("apply: patch %s exceeds source length %d", p.Range, srcLen)
		}
		out.Write(src[cursor:p.Range.Begin])
		out.WriteString(p.Text)
		cursor = p.Range.End
	}
	out.Write(src[cursor:])
	return out.String(), nil
}
