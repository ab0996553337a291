package config

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/kpumuk/actiontree/internal/policy"
)

// FromYAML parses a configuration from YAML bytes, filling in
// spec.md §6's defaults for any key the document omits.
func FromYAML(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse yaml: %w", err)
	}
	return cfg, nil
}

// ToYAML serializes the configuration back to YAML.
func (c *Config) ToYAML() ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("close encoder: %w", err)
	}
	return buf.Bytes(), nil
}

// Settings converts the loaded Policy into the engine's policy.Settings.
func (c *Config) Settings() policy.Settings {
	return policy.Settings{
		CrossingDeletions:     policy.Setting(c.Policy.CrossingDeletions),
		CrossingInsertions:    policy.Setting(c.Policy.CrossingInsertions),
		DifferentReplacements: policy.Setting(c.Policy.DifferentReplacements),
		SwallowedInsertions:   policy.Setting(c.Policy.SwallowedInsertions),
	}
}
