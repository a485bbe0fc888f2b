// Package mcplog writes one JSONL line per MCP tool call.
package mcplog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/zeebo/xxh3"
)

// Entry is one logged tool call.
type Entry struct {
	Ts            string         `json:"ts"`
	Tool          string         `json:"tool"`
	Params        map[string]any `json:"params"`
	DurationMs    int64          `json:"duration_ms"`
	ResponseBytes int            `json:"response_bytes"`
	Error         *string        `json:"error"`
}

// Logger appends entries to a file. It is safe for concurrent use.
type Logger struct {
	mu  sync.Mutex
	f   *os.File
	enc *json.Encoder
}

// NewLogger opens path for appending, creating parent directories.
// An empty path returns nil, nil; callers treat a nil Logger as disabled.
func NewLogger(path string) (*Logger, error) {
	if path == "" {
		return nil, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("mcplog: create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("mcplog: open log file: %w", err)
	}
	return &Logger{f: f, enc: json.NewEncoder(f)}, nil
}

// Write appends entry. Failures never affect the tool result, so callers
// usually drop the error.
func (l *Logger) Write(entry Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.enc.Encode(entry)
}

// Close closes the log file.
func (l *Logger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.f.Close()
}

// maxLoggedString is the longest string argument written verbatim.
const maxLoggedString = 64

// SanitizeParams returns a copy of args that is safe to log. Source code
// and other long strings are replaced by "<key>_len" and "<key>_hash"
// entries, so repeated submissions of the same file can still be
// correlated without storing the code.
func SanitizeParams(args map[string]any) map[string]any {
	out := make(map[string]any, len(args))
	for k, v := range args {
		s, ok := v.(string)
		if !ok || len(s) <= maxLoggedString {
			out[k] = v
			continue
		}
		out[k+"_len"] = len(s)
		out[k+"_hash"] = fmt.Sprintf("%016x", xxh3.HashString(s))
	}
	return out
}

// ResponseBytes returns the JSON size of a result's content, 0 for nil.
func ResponseBytes(result *mcp.CallToolResult) int {
	if result == nil {
		return 0
	}
	b, err := json.Marshal(result.Content)
	if err != nil {
		return 0
	}
	return len(b)
}

// Now is the clock used for entry timestamps; tests replace it.
var Now = time.Now
