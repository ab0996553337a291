package main

import (
	"fmt"
	"io"
	"strings"
)

// printDiff prints a minimal unified-style line diff: lines unique to
// before are prefixed "- ", lines unique to after are prefixed "+ ",
// shared leading/trailing lines are prefixed with two spaces. It is a
// display aid, not a patch format.
func printDiff(w io.Writer, before, after string) {
	beforeLines := strings.Split(before, "\n")
	afterLines := strings.Split(after, "\n")

	prefix := 0
	for prefix < len(beforeLines) && prefix < len(afterLines) && beforeLines[prefix] == afterLines[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(beforeLines)-prefix && suffix < len(afterLines)-prefix &&
		beforeLines[len(beforeLines)-1-suffix] == afterLines[len(afterLines)-1-suffix] {
		suffix++
	}

	for _, l := range beforeLines[:prefix] {
		fmt.Fprintf(w, "  %s\n", l)
	}
	for _, l := range beforeLines[prefix : len(beforeLines)-suffix] {
		fmt.Fprintf(w, "- %s\n", l)
	}
	for _, l := range afterLines[prefix : len(afterLines)-suffix] {
		fmt.Fprintf(w, "+ %s\n", l)
	}
	for _, l := range beforeLines[len(beforeLines)-suffix:] {
		fmt.Fprintf(w, "  %s\n", l)
	}
}
