package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

func lintCodeTool() mcp.Tool {
	return mcp.NewTool("lint_code",
		mcp.WithDescription("Lint JavaScript/TypeScript component source for props that are used without a propTypes declaration, or declared and never used."),
		mcp.WithString("code", mcp.Required(), mcp.Description("Source code to lint")),
		mcp.WithString("filename", mcp.Description("File name whose extension selects the grammar (default input.jsx)")),
		mcp.WithString("rules", mcp.Description("Comma-separated rule names to report; all enabled rules when empty")),
	)
}

func lintFileTool() mcp.Tool {
	return mcp.NewTool("lint_file",
		mcp.WithDescription("Lint a file on disk with the project configuration."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the file to lint")),
	)
}

func listRulesTool() mcp.Tool {
	return mcp.NewTool("list_rules",
		mcp.WithDescription("List available rules, their messages and configured severity."),
	)
}
