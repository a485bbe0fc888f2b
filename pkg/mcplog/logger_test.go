package mcplog

import (
	"bufio"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeParams_ShortValuesPassThrough(t *testing.T) {
	out := SanitizeParams(map[string]any{"filename": "App.jsx", "strict": true, "extra": nil})
	assert.Equal(t, map[string]any{"filename": "App.jsx", "strict": true, "extra": nil}, out)
}

func TestSanitizeParams_CodeIsHashed(t *testing.T) {
	code := strings.Repeat("const a = <div/>;\n", 10)
	out := SanitizeParams(map[string]any{"code": code})

	assert.NotContains(t, out, "code")
	assert.Equal(t, len(code), out["code_len"])
	assert.Len(t, out["code_hash"], 16)

	again := SanitizeParams(map[string]any{"code": code})
	assert.Equal(t, out["code_hash"], again["code_hash"])
}

func TestSanitizeParams_Nil(t *testing.T) {
	assert.Empty(t, SanitizeParams(nil))
}

func TestNewLogger_EmptyPathDisables(t *testing.T) {
	l, err := NewLogger("")
	assert.NoError(t, err)
	assert.Nil(t, l)
}

func TestLogger_WritesJSONL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "calls.jsonl")
	l, err := NewLogger(path)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, l.Write(Entry{Tool: "lint_code", DurationMs: 1}))
		}()
	}
	wg.Wait()
	require.NoError(t, l.Close())

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	lines := 0
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var e Entry
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &e))
		assert.Equal(t, "lint_code", e.Tool)
		lines++
	}
	assert.Equal(t, 20, lines)
}

func TestResponseBytes(t *testing.T) {
	assert.Equal(t, 0, ResponseBytes(nil))
	assert.Greater(t, ResponseBytes(mcp.NewToolResultText("hello")), 0)
}
