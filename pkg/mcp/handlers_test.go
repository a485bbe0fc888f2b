package mcp

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gnana997/proplint/pkg/lint"
	"github.com/gnana997/proplint/pkg/mcplog"
	"github.com/gnana997/proplint/pkg/parser"
	"github.com/gnana997/proplint/pkg/rules"
	"github.com/gnana997/proplint/pkg/util"
)

const greeting = `
class Greeting extends React.Component {
  static propTypes = { name: PropTypes.string, size: PropTypes.number };
  render() { return <h1>{this.props.name}{this.props.age}</h1>; }
}
`

// --- helpers ---

func testServer(t *testing.T, logger *mcplog.Logger) *Server {
	t.Helper()
	pm := parser.NewParserManager(util.NopLogger())
	t.Cleanup(func() { pm.Close() })

	registry := rules.NewRegistry()
	linter, err := lint.NewLinter(pm, registry, lint.DefaultConfig(registry), util.NopLogger())
	require.NoError(t, err)
	return NewServer(linter, registry, logger)
}

func makeRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	var arguments any
	if args != nil {
		arguments = args
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      toolName,
			Arguments: arguments,
		},
	}
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return text.Text
}

type violationJSON struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
	Line    int    `json:"line"`
}

func decodeLint(t *testing.T, result *mcp.CallToolResult) []violationJSON {
	t.Helper()
	var resp struct {
		Violations []violationJSON `json:"violations"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	return resp.Violations
}

// --- lint_code ---

func TestHandleLintCode(t *testing.T) {
	s := testServer(t, nil)
	result, err := s.handleLintCode(context.Background(), makeRequest("lint_code", map[string]any{"code": greeting}))
	require.NoError(t, err)
	assert.False(t, result.IsError)

	vs := decodeLint(t, result)
	require.Len(t, vs, 2)
	assert.Equal(t, "no-unused-prop-types", vs[0].Rule)
	assert.Equal(t, "'size' PropType is defined but prop is never used", vs[0].Message)
	assert.Equal(t, "prop-types", vs[1].Rule)
	assert.Equal(t, "'age' is missing in props validation", vs[1].Message)
}

func TestHandleLintCode_RuleFilter(t *testing.T) {
	s := testServer(t, nil)
	result, err := s.handleLintCode(context.Background(), makeRequest("lint_code", map[string]any{
		"code":  greeting,
		"rules": "prop-types",
	}))
	require.NoError(t, err)

	vs := decodeLint(t, result)
	require.Len(t, vs, 1)
	assert.Equal(t, "prop-types", vs[0].Rule)
}

func TestHandleLintCode_MissingCode(t *testing.T) {
	s := testServer(t, nil)
	result, err := s.handleLintCode(context.Background(), makeRequest("lint_code", nil))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

func TestHandleLintCode_UnsupportedFilename(t *testing.T) {
	s := testServer(t, nil)
	result, err := s.handleLintCode(context.Background(), makeRequest("lint_code", map[string]any{
		"code":     "a {}",
		"filename": "style.css",
	}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "unsupported file type")
}

// --- lint_file ---

func TestHandleLintFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "Greeting.jsx")
	require.NoError(t, os.WriteFile(path, []byte(greeting), 0o644))

	s := testServer(t, nil)
	result, err := s.handleLintFile(context.Background(), makeRequest("lint_file", map[string]any{"path": path}))
	require.NoError(t, err)
	assert.False(t, result.IsError)
	assert.Len(t, decodeLint(t, result), 2)
}

func TestHandleLintFile_Missing(t *testing.T) {
	s := testServer(t, nil)
	result, err := s.handleLintFile(context.Background(), makeRequest("lint_file", map[string]any{"path": "/nope/missing.jsx"}))
	require.NoError(t, err)
	assert.True(t, result.IsError)
}

// --- list_rules ---

func TestHandleListRules(t *testing.T) {
	s := testServer(t, nil)
	result, err := s.handleListRules(context.Background(), makeRequest("list_rules", nil))
	require.NoError(t, err)

	var rs []map[string]any
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &rs))
	require.Len(t, rs, 4)
	assert.Equal(t, "display-name", rs[0]["name"])
	assert.Equal(t, "off", rs[0]["severity"])
	assert.Equal(t, "prop-types", rs[3]["name"])
	assert.Equal(t, "error", rs[3]["severity"])
}

// --- logging middleware ---

func TestLoggingMiddleware_WritesEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "calls.jsonl")
	logger, err := mcplog.NewLogger(path)
	require.NoError(t, err)

	s := testServer(t, logger)
	handler := s.loggingMiddleware()(s.handleLintCode)
	_, err = handler(context.Background(), makeRequest("lint_code", map[string]any{"code": greeting}))
	require.NoError(t, err)
	require.NoError(t, logger.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	scanner := bufio.NewScanner(f)
	require.True(t, scanner.Scan())
	var entry mcplog.Entry
	require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
	assert.Equal(t, "lint_code", entry.Tool)
	assert.Contains(t, entry.Params, "code_len")
	assert.Nil(t, entry.Error)
	assert.Greater(t, entry.ResponseBytes, 0)
}
