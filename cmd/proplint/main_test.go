package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/proplint/pkg/lint"
	"github.com/gnana997/proplint/pkg/report"
)

const greeting = `
class Greeting extends React.Component {
  static propTypes = { name: PropTypes.string, size: PropTypes.number };
  render() { return <h1>{this.props.name}{this.props.age}</h1>; }
}
`

const clean = `
function Hello({ name }) {
  return <p>{name}</p>;
}
Hello.propTypes = { name: PropTypes.string };
`

// --- helpers ---

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	a := newApp()
	root := a.RootCmd()
	root.AddCommand(a.LintCmd(), a.RulesCmd(), a.VersionCmd())

	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

// --- lint ---

func TestLint_ReportsProblems(t *testing.T) {
	dir := writeProject(t, map[string]string{"src/Greeting.jsx": greeting})

	out, err := execute(t, "lint", "--format", "compact", dir)
	assert.ErrorIs(t, err, errProblems)
	assert.Contains(t, out, "Greeting.jsx:4:")
	assert.Contains(t, out, "'age' is missing in props validation [error] (prop-types)")
	assert.Contains(t, out, "'size' PropType is defined but prop is never used [error] (no-unused-prop-types)")
}

func TestLint_CleanProject(t *testing.T) {
	dir := writeProject(t, map[string]string{"Hello.jsx": clean})

	out, err := execute(t, "lint", "--format", "compact", dir)
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestLint_RuleOverride(t *testing.T) {
	dir := writeProject(t, map[string]string{"Greeting.jsx": greeting})

	out, err := execute(t, "lint", "--format", "compact",
		"--rule", "prop-types=off", "--rule", "no-unused-prop-types=warn", dir)
	require.NoError(t, err, "warnings alone must not fail the run")
	assert.Contains(t, out, "[warn] (no-unused-prop-types)")
	assert.NotContains(t, out, "(prop-types)")
}

func TestLint_UnknownRuleOverride(t *testing.T) {
	dir := writeProject(t, map[string]string{"Greeting.jsx": greeting})

	_, err := execute(t, "lint", "--rule", "no-such-rule=error", dir)
	assert.ErrorIs(t, err, lint.ErrUnknownRule)
}

func TestLint_ConfigFromWorkingDir(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"Greeting.jsx": greeting,
		".proplint.yaml": `
rules:
  prop-types: warn
  no-unused-prop-types: "off"
`,
	})
	t.Chdir(dir)

	out, err := execute(t, "lint", "--format", "json")
	require.NoError(t, err)

	var doc struct {
		Summary report.Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	assert.Equal(t, report.Summary{Files: 1, Warnings: 1}, doc.Summary)
}

func TestLint_ExplicitConfigMissing(t *testing.T) {
	dir := writeProject(t, map[string]string{"Greeting.jsx": greeting})

	_, err := execute(t, "lint", "--config", filepath.Join(dir, "missing.yaml"), dir)
	require.Error(t, err)
	assert.NotErrorIs(t, err, errProblems)
}

func TestLint_UnknownFormat(t *testing.T) {
	_, err := execute(t, "lint", "--format", "xml", t.TempDir())
	assert.Error(t, err)
}

// --- rules / version ---

func TestRules_ListsConfiguredSeverity(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := execute(t, "rules")
	require.NoError(t, err)
	assert.Regexp(t, `prop-types\s+error\s+`, out)
	assert.Regexp(t, `display-name\s+off\s+`, out)
	assert.Contains(t, out, "no-multi-comp")
}

func TestVersion(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "proplint "+version+"\n", out)
}
