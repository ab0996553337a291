// Package policy defines the conflict taxonomy the action tree consults
// while combining edits, and the caller-supplied enforcer that decides
// whether each conflict is accepted, warned about, or raised as an error.
package policy

import (
	"fmt"

	"github.com/kpumuk/actiontree/internal/rng"
)

// Kind identifies one of the four conflict conditions the combine
// algorithm can detect.
type Kind string

const (
	// DifferentReplacements: two merge candidates disagree on the
	// replacement text for the same range.
	DifferentReplacements Kind = "different_replacements"
	// CrossingDeletions: two non-insertion actions partially overlap.
	CrossingDeletions Kind = "crossing_deletions"
	// CrossingInsertions: an insertion and another action partially overlap.
	CrossingInsertions Kind = "crossing_insertions"
	// SwallowedInsertions: a replacement is applied over a range that
	// already contains insertion children.
	SwallowedInsertions Kind = "swallowed_insertions"
)

// Severity classifies a diagnostic emitted for a Warn decision.
type Severity uint8

const (
	// SeverityWarning marks a non-fatal conflict the enforcer let through.
	SeverityWarning Severity = iota + 1
)

// Decision is the enforcer's verdict for one conflict occurrence.
type Decision uint8

const (
	// Accept proceeds silently.
	Accept Decision = iota
	// Warn emits a Diagnostic to the caller's sink and proceeds.
	Warn
	// Raise aborts the current edit call with a *Error.
	Raise
)

// Setting is the per-kind policy configured by a caller, one of
// accept/warn/raise, matching the external Decision vocabulary.
type Setting string

const (
	SettingAccept Setting = "accept"
	SettingWarn   Setting = "warn"
	SettingRaise  Setting = "raise"
)

// Decision converts a configured setting into the runtime Decision.
// An unrecognised setting defaults to Raise, the conservative choice.
func (s Setting) Decision() Decision {
	switch s {
	case SettingAccept:
		return Accept
	case SettingWarn:
		return Warn
	default:
		return Raise
	}
}

// Diagnostic is the structured payload passed to a Warn sink. Its
// String method produces the "diagnostic string" spec.md describes.
type Diagnostic struct {
	Kind     Kind
	Range    rng.Range
	Message  string
	Severity Severity
	Conflict []rng.Range // the other range(s) involved, when relevant
}

func (d Diagnostic) String() string {
	if len(d.Conflict) == 0 {
		return fmt.Sprintf("%s at %s: %s", d.Kind, d.Range, d.Message)
	}
	return fmt.Sprintf("%s at %s (conflicts with %v): %s", d.Kind, d.Range, d.Conflict, d.Message)
}

// Sink receives diagnostics for Warn decisions. A nil sink silently
// drops them.
type Sink func(Diagnostic)

// Error reports a conflict whose policy resolved to Raise. It leaves
// the tree in its last valid state: the triggering edit call returns
// before any mutation is committed.
type Error struct {
	Kind     Kind
	Range    rng.Range
	Message  string
	Conflict []rng.Range
}

func (e *Error) Error() string {
	if e == nil {
		return "action tree conflict"
	}
	if len(e.Conflict) == 0 {
		return fmt.Sprintf("%s at %s: %s", e.Kind, e.Range, e.Message)
	}
	return fmt.Sprintf("%s at %s (conflicts with %v): %s", e.Kind, e.Range, e.Conflict, e.Message)
}

// Is reports whether target is a *Error with the same Kind, so callers
// can write errors.Is(err, &policy.Error{Kind: policy.CrossingDeletions}).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil {
		return false
	}
	if t.Kind == "" {
		return true
	}
	return t.Kind == e.Kind
}

// AsError reports whether err is (or wraps) a *Error, writing it into target.
func AsError(err error, target **Error) bool {
	for err != nil {
		if e, ok := err.(*Error); ok { //nolint:errorlint // cheap type switch mirrors AsUnsafeToFormat
			*target = e
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}

// Enforcer is consulted on each conflict kind and returns a Decision.
// Implementations must be safe for reuse across every action in one
// tree; they are never mutated by the core.
type Enforcer interface {
	// Check returns the Decision for kind given the conflict's range and
	// the other range(s) it collides with. diag is the diagnostic that
	// would be reported to the sink if the decision is Warn.
	Check(kind Kind, diag Diagnostic) Decision
}

// Settings is the declarative form of an Enforcer: one Setting per kind,
// defaulting per spec.md §6 (CrossingDeletions accepts by default, the
// other three raise).
type Settings struct {
	CrossingDeletions     Setting
	CrossingInsertions    Setting
	DifferentReplacements Setting
	SwallowedInsertions   Setting
}

// DefaultSettings returns spec.md §6's default policy.
func DefaultSettings() Settings {
	return Settings{
		CrossingDeletions:     SettingAccept,
		CrossingInsertions:    SettingRaise,
		DifferentReplacements: SettingRaise,
		SwallowedInsertions:   SettingRaise,
	}
}

// WithSink attaches a diagnostic sink to Settings, producing a full Enforcer.
func (s Settings) WithSink(sink Sink) Enforcer {
	return &settingsEnforcer{settings: s, sink: sink}
}

// Enforcer builds an Enforcer with no diagnostic sink; Warn decisions
// are then silent.
func (s Settings) Enforcer() Enforcer {
	return s.WithSink(nil)
}

type settingsEnforcer struct {
	settings Settings
	sink     Sink
}

func (e *settingsEnforcer) settingFor(kind Kind) Setting {
	switch kind {
	case CrossingDeletions:
		return e.settings.CrossingDeletions
	case CrossingInsertions:
		return e.settings.CrossingInsertions
	case DifferentReplacements:
		return e.settings.DifferentReplacements
	case SwallowedInsertions:
		return e.settings.SwallowedInsertions
	default:
		return SettingRaise
	}
}

func (e *settingsEnforcer) Check(kind Kind, diag Diagnostic) Decision {
	decision := e.settingFor(kind).Decision()
	if decision == Warn && e.sink != nil {
		diag.Kind = kind
		diag.Severity = SeverityWarning
		e.sink(diag)
	}
	return decision
}
