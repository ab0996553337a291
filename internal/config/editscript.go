package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Op identifies one edit-script operation, matching TreeRewriter's
// public API one for one.
type Op string

const (
	OpInsertBefore Op = "insert_before"
	OpInsertAfter  Op = "insert_after"
	OpReplace      Op = "replace"
	OpRemove       Op = "remove"
	OpWrap         Op = "wrap"
)

// Edit is one entry of an edit script: a byte range and the operation
// to perform on it. Text carries the operand for insert_before/after
// and replace; Before/After carry the operands for wrap.
type Edit struct {
	Op     Op     `yaml:"op"`
	Begin  int    `yaml:"begin"`
	End    int    `yaml:"end"`
	Text   string `yaml:"text,omitempty"`
	Before string `yaml:"before,omitempty"`
	After  string `yaml:"after,omitempty"`
}

// EditScript is a YAML document listing the edits to run through the
// engine; the source file they apply to is supplied separately. It stands in for the AST-traversal-driven
// rewriter definitions spec.md §1 treats as an external collaborator:
// a minimal, parser-free way to drive TreeRewriter from the CLI.
type EditScript struct {
	Edits []Edit `yaml:"edits"`
}

// ParseEditScript parses an edit script from YAML bytes.
func ParseEditScript(data []byte) (*EditScript, error) {
	var script EditScript
	if err := yaml.Unmarshal(data, &script); err != nil {
		return nil, fmt.Errorf("parse edit script: %w", err)
	}
	for i, e := range script.Edits {
		switch e.Op {
		case OpInsertBefore, OpInsertAfter, OpReplace, OpRemove, OpWrap:
		default:
			return nil, fmt.Errorf("edit script entry %d: unknown op %q", i, e.Op)
		}
		if e.End < e.Begin {
			return nil, fmt.Errorf("edit script entry %d: end %d before begin %d", i, e.End, e.Begin)
		}
	}
	return &script, nil
}
