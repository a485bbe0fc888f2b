package lint

import (
	"fmt"
	"sort"
	"strings"
)

// Severity of a configured rule.
type Severity int

const (
	SeverityOff Severity = iota
	SeverityWarn
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarn:
		return "warn"
	case SeverityError:
		return "error"
	default:
		return "off"
	}
}

// ParseSeverity accepts "off", "warn", "warning", "error" or 0, 1, 2.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "off", "0":
		return SeverityOff, nil
	case "warn", "warning", "1":
		return SeverityWarn, nil
	case "error", "2":
		return SeverityError, nil
	}
	return SeverityOff, fmt.Errorf("invalid severity %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Violation is a single reported problem.
type Violation struct {
	Rule      string            `json:"rule"`
	MessageID string            `json:"messageId"`
	Message   string            `json:"message"`
	Severity  Severity          `json:"severity"`
	Line      int               `json:"line"`
	Column    int               `json:"column"`
	EndLine   int               `json:"endLine,omitempty"`
	EndColumn int               `json:"endColumn,omitempty"`
	Data      map[string]string `json:"-"`
}

// FileResult holds the violations of one file.
type FileResult struct {
	FilePath   string      `json:"filePath"`
	Violations []Violation `json:"violations"`
	// SyntaxErrors is set when the parser recovered from errors; the
	// partial tree was still linted.
	SyntaxErrors bool  `json:"syntaxErrors,omitempty"`
	Err          error `json:"-"`
}

// ErrorCount returns the number of error-severity violations.
func (r *FileResult) ErrorCount() int {
	return r.count(SeverityError)
}

// WarningCount returns the number of warn-severity violations.
func (r *FileResult) WarningCount() int {
	return r.count(SeverityWarn)
}

func (r *FileResult) count(sev Severity) int {
	n := 0
	for _, v := range r.Violations {
		if v.Severity == sev {
			n++
		}
	}
	return n
}

func sortViolations(vs []Violation) {
	sort.SliceStable(vs, func(i, j int) bool {
		if vs[i].Line != vs[j].Line {
			return vs[i].Line < vs[j].Line
		}
		return vs[i].Column < vs[j].Column
	})
}
