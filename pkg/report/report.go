// Package report formats lint results for terminals and machines.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/gnana997/proplint/pkg/lint"
)

// Format selects an output format.
type Format string

const (
	FormatStylish Format = "stylish"
	FormatCompact Format = "compact"
	FormatJSON    Format = "json"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatStylish, FormatCompact, FormatJSON:
		return f, nil
	case "":
		return FormatStylish, nil
	}
	return "", fmt.Errorf("unknown format %q (want stylish, compact or json)", s)
}

// Summary totals a run.
type Summary struct {
	Files    int `json:"files"`
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Failures int `json:"failures"`
}

// Summarize counts violations and per-file failures.
func Summarize(results []lint.FileResult) Summary {
	s := Summary{Files: len(results)}
	for i := range results {
		if results[i].Err != nil {
			s.Failures++
			continue
		}
		s.Errors += results[i].ErrorCount()
		s.Warnings += results[i].WarningCount()
	}
	return s
}

// Write renders results to w in format.
func Write(w io.Writer, format Format, results []lint.FileResult) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, results)
	case FormatCompact:
		return writeCompact(w, results)
	default:
		return writeStylish(w, results)
	}
}

type jsonFile struct {
	lint.FileResult
	Error string `json:"error,omitempty"`
}

func writeJSON(w io.Writer, results []lint.FileResult) error {
	files := make([]jsonFile, 0, len(results))
	for _, r := range results {
		f := jsonFile{FileResult: r}
		if f.Violations == nil {
			f.Violations = []lint.Violation{}
		}
		if r.Err != nil {
			f.Error = r.Err.Error()
		}
		files = append(files, f)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(struct {
		Results []jsonFile `json:"results"`
		Summary Summary    `json:"summary"`
	}{files, Summarize(results)})
}

func writeCompact(w io.Writer, results []lint.FileResult) error {
	for _, r := range results {
		if r.Err != nil {
			if _, err := fmt.Fprintf(w, "%s: fatal: %v\n", r.FilePath, r.Err); err != nil {
				return err
			}
			continue
		}
		for _, v := range r.Violations {
			if _, err := fmt.Fprintf(w, "%s:%d:%d: %s [%s] (%s)\n",
				r.FilePath, v.Line, v.Column, v.Message, v.Severity, v.Rule); err != nil {
				return err
			}
		}
	}
	return nil
}

type styles struct {
	file    lipgloss.Style
	pos     lipgloss.Style
	err     lipgloss.Style
	warn    lipgloss.Style
	rule    lipgloss.Style
	summary lipgloss.Style
	ok      lipgloss.Style
}

func newStyles(w io.Writer) styles {
	r := lipgloss.NewRenderer(w)
	return styles{
		file:    r.NewStyle().Underline(true),
		pos:     r.NewStyle().Foreground(lipgloss.Color("240")),
		err:     r.NewStyle().Foreground(lipgloss.Color("red")),
		warn:    r.NewStyle().Foreground(lipgloss.Color("yellow")),
		rule:    r.NewStyle().Foreground(lipgloss.Color("240")),
		summary: r.NewStyle().Foreground(lipgloss.Color("red")).Bold(true),
		ok:      r.NewStyle().Foreground(lipgloss.Color("green")).Bold(true),
	}
}

func writeStylish(w io.Writer, results []lint.FileResult) error {
	st := newStyles(w)
	var b strings.Builder

	for _, r := range results {
		if r.Err == nil && len(r.Violations) == 0 {
			continue
		}
		b.WriteString(st.file.Render(r.FilePath))
		b.WriteByte('\n')
		if r.Err != nil {
			fmt.Fprintf(&b, "  %s  %v\n", st.err.Render("fatal"), r.Err)
		}
		for _, v := range r.Violations {
			sev := st.warn.Render(fmt.Sprintf("%-7s", "warning"))
			if v.Severity == lint.SeverityError {
				sev = st.err.Render(fmt.Sprintf("%-7s", "error"))
			}
			fmt.Fprintf(&b, "  %s  %s  %s  %s\n",
				st.pos.Render(fmt.Sprintf("%d:%d", v.Line, v.Column)),
				sev, v.Message, st.rule.Render(v.Rule))
		}
		b.WriteByte('\n')
	}

	s := Summarize(results)
	problems := s.Errors + s.Warnings
	switch {
	case problems > 0:
		b.WriteString(st.summary.Render(fmt.Sprintf("✖ %d %s (%d %s, %d %s)",
			problems, plural(problems, "problem"),
			s.Errors, plural(s.Errors, "error"),
			s.Warnings, plural(s.Warnings, "warning"))))
		b.WriteByte('\n')
	case s.Failures == 0:
		b.WriteString(st.ok.Render(fmt.Sprintf("✔ %d %s checked, no problems", s.Files, plural(s.Files, "file"))))
		b.WriteByte('\n')
	}
	if s.Failures > 0 {
		b.WriteString(st.summary.Render(fmt.Sprintf("%d %s could not be linted", s.Failures, plural(s.Failures, "file"))))
		b.WriteByte('\n')
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
