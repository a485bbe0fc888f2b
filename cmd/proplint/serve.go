package main

import (
	"github.com/spf13/cobra"

	mcpserver "github.com/gnana997/proplint/pkg/mcp"
	"github.com/gnana997/proplint/pkg/mcplog"
)

// ServeCmd returns the serve command.
func (a *app) ServeCmd() *cobra.Command {
	var (
		logFile   string
		cacheSize int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the MCP server on stdio",
		Long: `Serve the lint_code, lint_file and list_rules tools over the Model
Context Protocol on stdin/stdout.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			linter, pm, err := a.newLinter(cfg, cacheSize)
			if err != nil {
				return err
			}
			defer pm.Close()

			callLog, err := mcplog.NewLogger(logFile)
			if err != nil {
				return err
			}
			if callLog != nil {
				defer callLog.Close()
			}

			return mcpserver.NewServer(linter, a.registry, callLog).ServeStdio()
		},
	}

	cmd.Flags().StringVar(&logFile, "log-file", "", "Append a JSONL record of every tool call to this file")
	cmd.Flags().IntVar(&cacheSize, "cache", 1000, "Cache results of up to N files (0 disables)")

	return cmd
}
