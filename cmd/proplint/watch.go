package main

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/gnana997/proplint/pkg/lint"
	"github.com/gnana997/proplint/pkg/report"
)

// WatchCmd returns the watch command.
func (a *app) WatchCmd() *cobra.Command {
	var (
		format   string
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch [dir]",
		Short: "Re-lint files as they change",
		Long: `Watch a directory (default: the current directory) and re-lint every
supported file when it is written. Runs until interrupted.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) == 1 {
				root = args[0]
			}
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			// Unchanged files are served from the cache between saves.
			linter, pm, err := a.newLinter(cfg, 1000)
			if err != nil {
				return err
			}
			defer pm.Close()

			out := cmd.OutOrStdout()
			var mu sync.Mutex
			onResult := func(res *lint.FileResult, err error) {
				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					a.logger.Warn("lint failed", "error", err)
					return
				}
				if err := report.Write(out, f, []lint.FileResult{*res}); err != nil {
					a.logger.Error("failed to write report", "error", err)
				}
			}

			w, err := lint.NewWatcher(linter, lint.WatchOptions{Debounce: debounce, Exclude: cfg.Exclude}, onResult, a.logger)
			if err != nil {
				return err
			}
			defer w.Stop()
			if err := w.Start(root); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "watching %s (ctrl-c to stop)\n", root)

			<-cmd.Context().Done()
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatCompact), "Output format: stylish, compact or json")
	cmd.Flags().DurationVar(&debounce, "debounce", lint.DefaultDebounce, "Delay before re-linting a changed file")

	return cmd
}
