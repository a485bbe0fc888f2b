// Package mcp exposes the linter as Model Context Protocol tools so
// editors and agents can check component prop usage.
package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/gnana997/proplint/pkg/lint"
	"github.com/gnana997/proplint/pkg/mcplog"
)

const serverVersion = "0.1.0-dev"

// Server is the MCP server.
type Server struct {
	mcpServer *server.MCPServer
	linter    *lint.Linter
	registry  *lint.RuleRegistry
	logger    *mcplog.Logger // nil disables call logging
}

// NewServer creates a server linting with linter. registry lists the rules
// reported by list_rules.
func NewServer(linter *lint.Linter, registry *lint.RuleRegistry, logger *mcplog.Logger) *Server {
	s := &Server{linter: linter, registry: registry, logger: logger}

	opts := []server.ServerOption{
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	}
	if logger != nil {
		opts = append(opts, server.WithToolHandlerMiddleware(s.loggingMiddleware()))
	}
	s.mcpServer = server.NewMCPServer("proplint", serverVersion, opts...)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: lintCodeTool(), Handler: s.handleLintCode},
		server.ServerTool{Tool: lintFileTool(), Handler: s.handleLintFile},
		server.ServerTool{Tool: listRulesTool(), Handler: s.handleListRules},
	)
	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

// ServeStdio serves on stdin/stdout until the client disconnects.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}
