// Package config loads .proplint.yaml project configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/gnana997/proplint/pkg/lint"
)

// FileName is the configuration file looked up in the working directory.
const FileName = ".proplint.yaml"

// RuleEntry is one entry of the rules map. It accepts the short form
// `prop-types: error` as well as `{severity: error, options: {...}}`.
type RuleEntry struct {
	Severity string         `yaml:"severity"`
	Options  map[string]any `yaml:"options"`
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *RuleEntry) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		r.Severity = value.Value
		return nil
	}
	type plain RuleEntry
	return value.Decode((*plain)(r))
}

// File mirrors the YAML document.
type File struct {
	Settings lint.Settings        `yaml:"settings"`
	Rules    map[string]RuleEntry `yaml:"rules"`
	Include  []string             `yaml:"include"`
	Exclude  []string             `yaml:"exclude"`
}

// Config is a validated configuration.
type Config struct {
	Lint    lint.Config
	Include []string
	Exclude []string
	// Path is the file the configuration was read from, empty for defaults.
	Path string
}

// Load reads path. A missing file yields the defaults for registry.
func Load(path string, registry *lint.RuleRegistry) (*Config, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(registry), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(data, registry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// LoadFromDir loads FileName from dir.
func LoadFromDir(dir string, registry *lint.RuleRegistry) (*Config, error) {
	return Load(filepath.Join(dir, FileName), registry)
}

// Default returns the configuration used when no file exists.
func Default(registry *lint.RuleRegistry) *Config {
	return &Config{
		Lint:    lint.DefaultConfig(registry),
		Include: lint.DefaultInclude,
		Exclude: lint.DefaultExclude,
	}
}

// Parse decodes and validates a YAML document. Rules listed in the
// document are layered over the recommended defaults.
func Parse(data []byte, registry *lint.RuleRegistry) (*Config, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("invalid yaml: %w", err)
	}

	settings := f.Settings.WithDefaults()
	if _, err := semver.NewVersion(settings.Version); err != nil {
		return nil, fmt.Errorf("invalid settings.version %q: %w", settings.Version, err)
	}

	cfg := Default(registry)
	cfg.Lint.Settings = settings
	if len(f.Include) > 0 {
		cfg.Include = f.Include
	}
	if f.Exclude != nil {
		cfg.Exclude = f.Exclude
	}

	for name, entry := range f.Rules {
		if _, err := registry.Get(name); err != nil {
			return nil, err
		}
		rc, err := entry.toRuleConfig()
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", name, err)
		}
		cfg.Lint.Rules[name] = rc
	}
	return cfg, nil
}

func (r RuleEntry) toRuleConfig() (lint.RuleConfig, error) {
	sev := lint.SeverityError
	if r.Severity != "" {
		parsed, err := lint.ParseSeverity(r.Severity)
		if err != nil {
			return lint.RuleConfig{}, err
		}
		sev = parsed
	}
	return lint.RuleConfig{Severity: sev, Options: lint.Options(r.Options)}, nil
}

// ApplyRuleOverrides applies `name=severity` overrides, as given on the
// command line.
func (c *Config) ApplyRuleOverrides(overrides map[string]string, registry *lint.RuleRegistry) error {
	for name, severity := range overrides {
		if _, err := registry.Get(name); err != nil {
			return err
		}
		sev, err := lint.ParseSeverity(severity)
		if err != nil {
			return fmt.Errorf("rule %s: %w", name, err)
		}
		rc := c.Lint.Rules[name]
		rc.Severity = sev
		c.Lint.Rules[name] = rc
	}
	return nil
}
