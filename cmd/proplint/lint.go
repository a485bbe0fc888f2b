package main

import (
	"github.com/spf13/cobra"

	"github.com/gnana997/proplint/pkg/lint"
	"github.com/gnana997/proplint/pkg/report"
	"github.com/gnana997/proplint/pkg/util"
)

// LintCmd returns the lint command.
func (a *app) LintCmd() *cobra.Command {
	var (
		format    string
		overrides map[string]string
		workers   int
		cacheSize int
	)

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint files and directories",
		Long: `Lint the given files and directories (default: the current directory).

Directories are walked using the include and exclude globs from the config
file. The command exits non-zero when any error-level problem is found or a
file cannot be linted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				args = []string{"."}
			}
			f, err := report.ParseFormat(format)
			if err != nil {
				return err
			}

			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			if err := cfg.ApplyRuleOverrides(overrides, a.registry); err != nil {
				return err
			}

			files, err := lint.DiscoverFiles(args, cfg.Include, cfg.Exclude)
			if err != nil {
				return err
			}
			a.logger.Debug("discovered files", "count", len(files))

			linter, pm, err := a.newLinter(cfg, cacheSize)
			if err != nil {
				return err
			}
			defer pm.Close()

			results, err := linter.LintFiles(cmd.Context(), files, util.GetOptimalPoolSizeWithOverride(workers))
			if err != nil {
				return err
			}
			if err := report.Write(cmd.OutOrStdout(), f, results); err != nil {
				return err
			}

			if s := report.Summarize(results); s.Errors > 0 || s.Failures > 0 {
				return errProblems
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", string(report.FormatStylish), "Output format: stylish, compact or json")
	cmd.Flags().StringToStringVar(&overrides, "rule", nil, "Override a rule severity, e.g. --rule display-name=warn")
	cmd.Flags().IntVarP(&workers, "workers", "j", 0, "Number of concurrent workers (default: based on CPU count)")
	cmd.Flags().IntVar(&cacheSize, "cache", 0, "Cache results of up to N files (0 disables)")

	return cmd
}
