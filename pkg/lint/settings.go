package lint

import (
	"github.com/Masterminds/semver/v3"
)

const (
	// DefaultPragma is the namespace of the base classes and createElement.
	DefaultPragma = "React"
	// DefaultCreateClass is the name of the component factory function.
	DefaultCreateClass = "createReactClass"
	// DefaultVersion assumes the newest library when no version is set.
	DefaultVersion = "999.999.999"
)

// Settings are the shared, per-run options every rule can read.
type Settings struct {
	Pragma      string `yaml:"pragma" json:"pragma"`
	CreateClass string `yaml:"createClass" json:"createClass"`
	Version     string `yaml:"version" json:"version"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Pragma:      DefaultPragma,
		CreateClass: DefaultCreateClass,
		Version:     DefaultVersion,
	}
}

// WithDefaults fills empty fields from DefaultSettings.
func (s Settings) WithDefaults() Settings {
	d := DefaultSettings()
	if s.Pragma == "" {
		s.Pragma = d.Pragma
	}
	if s.CreateClass == "" {
		s.CreateClass = d.CreateClass
	}
	if s.Version == "" {
		s.Version = d.Version
	}
	return s
}

// VersionAtLeast reports whether the configured library version is at
// least min. An unparsable configured version is treated as the newest.
func (s Settings) VersionAtLeast(min string) bool {
	configured := s.Version
	if configured == "" {
		configured = DefaultVersion
	}
	v, err := semver.NewVersion(configured)
	if err != nil {
		return true
	}
	c, err := semver.NewConstraint(">= " + min)
	if err != nil {
		return true
	}
	return c.Check(v)
}
