package mcp

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/gnana997/proplint/pkg/lint"
)

const defaultFilename = "input.jsx"

type lintResponse struct {
	Filename     string           `json:"filename"`
	Violations   []lint.Violation `json:"violations"`
	SyntaxErrors bool             `json:"syntax_errors,omitempty"`
}

type ruleInfo struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Severity    string            `json:"severity"`
	Messages    map[string]string `json:"messages"`
}

func (s *Server) handleLintCode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	code, err := req.RequireString("code")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	filename := req.GetString("filename", defaultFilename)

	res, err := s.linter.LintSource(filename, []byte(code))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(lintResponse{
		Filename:     filename,
		Violations:   filterRules(res.Violations, req.GetString("rules", "")),
		SyntaxErrors: res.SyntaxErrors,
	})
}

func (s *Server) handleLintFile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	res, err := s.linter.LintFile(path)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(lintResponse{
		Filename:     path,
		Violations:   nonNil(res.Violations),
		SyntaxErrors: res.SyntaxErrors,
	})
}

func (s *Server) handleListRules(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	configured := s.linter.Config().Rules
	rules := make([]ruleInfo, 0)
	for _, rule := range s.registry.Rules() {
		meta := rule.Meta()
		rules = append(rules, ruleInfo{
			Name:        meta.Name,
			Description: meta.Description,
			Severity:    configured[meta.Name].Severity.String(),
			Messages:    meta.Messages,
		})
	}
	return jsonResult(rules)
}

// filterRules keeps violations of the comma-separated rule names.
func filterRules(vs []lint.Violation, names string) []lint.Violation {
	if strings.TrimSpace(names) == "" {
		return nonNil(vs)
	}
	keep := make(map[string]bool)
	for _, n := range strings.Split(names, ",") {
		keep[strings.TrimSpace(n)] = true
	}
	out := make([]lint.Violation, 0, len(vs))
	for _, v := range vs {
		if keep[v.Rule] {
			out = append(out, v)
		}
	}
	return out
}

func nonNil(vs []lint.Violation) []lint.Violation {
	if vs == nil {
		return []lint.Violation{}
	}
	return vs
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(b)), nil
}
