// Package config defines the on-disk configuration this module's CLI
// loads: the four-key conflict policy of spec.md §6, plus the ambient
// logging level. These are pure data structures; the only engine package
// they depend on is internal/policy, which Settings converts into, so
// they can be loaded before a rewriter exists.
package config

// Severity mirrors the diagnostic severities a Warn decision can emit.
type Severity string

const (
	SeverityWarning Severity = "warning"
)

// Policy holds the four conflict-kind settings of spec.md §6, each one
// of "accept", "warn", or "raise".
type Policy struct {
	CrossingDeletions     string `yaml:"crossing_deletions"`
	CrossingInsertions    string `yaml:"crossing_insertions"`
	DifferentReplacements string `yaml:"different_replacements"`
	SwallowedInsertions   string `yaml:"swallowed_insertions"`
}

// Config is the root configuration for the actiontree CLI.
type Config struct {
	// Policy configures the four conflict kinds. Omitted keys keep
	// spec.md §6's default for that kind.
	Policy Policy `yaml:"policy"`

	// LogLevel is one of "debug", "info", "warn", "error".
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration spec.md §6 describes by default:
// crossing_deletions accepts, the other three kinds raise, logging at
// info level.
func Default() *Config {
	return &Config{
		Policy: Policy{
			CrossingDeletions:     "accept",
			CrossingInsertions:    "raise",
			DifferentReplacements: "raise",
			SwallowedInsertions:   "raise",
		},
		LogLevel: "info",
	}
}
