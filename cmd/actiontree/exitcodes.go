package main

import (
	"errors"

	"github.com/kpumuk/actiontree/internal/policy"
)

// usageError reports a malformed invocation (missing required flag,
// wrong argument count) rather than a failure while doing the work
// requested, so the CLI can exit exitUsage instead of exitInternal.
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// Is lets errors.Is match any *usageError, the same pattern
// policy.Error uses for matching by kind rather than by pointer identity.
func (e *usageError) Is(target error) bool {
	_, ok := target.(*usageError)
	return ok
}

// exitCodeFor classifies a top-level command error into an exit code:
// a raised policy conflict gets its own code so scripts can distinguish
// "the edit script conflicted" from "something else went wrong", and a
// malformed invocation gets exitUsage rather than falling through to
// exitInternal alongside genuine runtime failures.
func exitCodeFor(err error) int {
	var perr *policy.Error
	if errors.As(err, &perr) {
		return exitConflict
	}
	var uerr *usageError
	if errors.As(err, &uerr) {
		return exitUsage
	}
	return exitInternal
}
