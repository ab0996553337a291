// Command actiontree drives TreeRewriter from an edit script file, as
// a minimal stand-in for the AST-traversal-driven rewriter definitions
// spec.md §1 treats as an external collaborator.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:]))
}
