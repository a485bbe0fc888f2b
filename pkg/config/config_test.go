package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/proplint/pkg/lint"
	"github.com/gnana997/proplint/pkg/rules"
)

func TestParse_FullDocument(t *testing.T) {
	cfg, err := Parse([]byte(`
settings:
  pragma: Preact
  version: "16.2"
rules:
  prop-types:
    severity: warn
    options:
      ignore: [children]
  display-name: error
  no-unused-prop-types: off
include: ["src/**/*.jsx"]
exclude: ["vendor/**"]
`), rules.NewRegistry())
	require.NoError(t, err)

	assert.Equal(t, "Preact", cfg.Lint.Settings.Pragma)
	assert.Equal(t, lint.DefaultCreateClass, cfg.Lint.Settings.CreateClass)
	assert.Equal(t, "16.2", cfg.Lint.Settings.Version)

	pt := cfg.Lint.Rules["prop-types"]
	assert.Equal(t, lint.SeverityWarn, pt.Severity)
	assert.Equal(t, []string{"children"}, pt.Options.Strings("ignore"))
	assert.Equal(t, lint.SeverityError, cfg.Lint.Rules["display-name"].Severity)
	assert.Equal(t, lint.SeverityOff, cfg.Lint.Rules["no-unused-prop-types"].Severity)

	assert.Equal(t, []string{"src/**/*.jsx"}, cfg.Include)
	assert.Equal(t, []string{"vendor/**"}, cfg.Exclude)
}

func TestParse_UnknownRule(t *testing.T) {
	_, err := Parse([]byte("rules:\n  no-such-rule: error\n"), rules.NewRegistry())
	assert.True(t, errors.Is(err, lint.ErrUnknownRule))
}

func TestParse_InvalidSeverity(t *testing.T) {
	_, err := Parse([]byte("rules:\n  prop-types: loud\n"), rules.NewRegistry())
	assert.Error(t, err)
}

func TestParse_InvalidVersion(t *testing.T) {
	_, err := Parse([]byte("settings:\n  version: latest\n"), rules.NewRegistry())
	assert.Error(t, err)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFromDir(t.TempDir(), rules.NewRegistry())
	require.NoError(t, err)
	assert.Empty(t, cfg.Path)
	assert.Equal(t, lint.SeverityError, cfg.Lint.Rules["prop-types"].Severity)
	assert.Equal(t, lint.DefaultExclude, cfg.Exclude)
}

func TestLoad_ReadsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte("rules:\n  no-multi-comp: warn\n"), 0o644))

	cfg, err := Load(path, rules.NewRegistry())
	require.NoError(t, err)
	assert.Equal(t, path, cfg.Path)
	assert.Equal(t, lint.SeverityWarn, cfg.Lint.Rules["no-multi-comp"].Severity)
}

func TestApplyRuleOverrides(t *testing.T) {
	registry := rules.NewRegistry()
	cfg := Default(registry)

	require.NoError(t, cfg.ApplyRuleOverrides(map[string]string{"prop-types": "off"}, registry))
	assert.Equal(t, lint.SeverityOff, cfg.Lint.Rules["prop-types"].Severity)

	assert.Error(t, cfg.ApplyRuleOverrides(map[string]string{"missing": "warn"}, registry))
}
