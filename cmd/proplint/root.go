package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gnana997/proplint/pkg/config"
	"github.com/gnana997/proplint/pkg/lint"
	"github.com/gnana997/proplint/pkg/parser"
	"github.com/gnana997/proplint/pkg/rules"
	"github.com/gnana997/proplint/pkg/util"
)

// errProblems makes the process exit non-zero after a report that
// contains errors or files that could not be linted.
var errProblems = errors.New("problems found")

// app holds the flags shared by every command.
type app struct {
	configPath string
	logLevel   string
	logFormat  string
	logger     *slog.Logger
	registry   *lint.RuleRegistry
}

func newApp() *app {
	return &app{registry: rules.NewRegistry(), logger: slog.Default()}
}

// RootCmd creates the root command.
func (a *app) RootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proplint",
		Short: "Check React component props against their propTypes",
		Long: `proplint lints JavaScript, JSX and TypeScript sources for React
components whose props are used without being declared in propTypes, or
declared without ever being used.

Configuration is read from .proplint.yaml in the working directory unless
--config points elsewhere.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			a.logger = util.NewLogger(util.LoggerConfig{
				Level:  util.ParseLogLevel(a.logLevel),
				Format: util.LogFormat(a.logFormat),
				Output: cmd.ErrOrStderr(),
			})
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Path to the config file (default ./"+config.FileName+")")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "Log format: text or json")

	return cmd
}

// loadConfig reads the configuration. An explicit --config must exist; the
// implicit one falls back to defaults.
func (a *app) loadConfig() (*config.Config, error) {
	if a.configPath == "" {
		return config.LoadFromDir(".", a.registry)
	}
	if _, err := os.Stat(a.configPath); err != nil {
		return nil, fmt.Errorf("config file: %w", err)
	}
	return config.Load(a.configPath, a.registry)
}

// newLinter builds a linter for cfg. The returned ParserManager must be
// closed by the caller.
func (a *app) newLinter(cfg *config.Config, cacheSize int) (*lint.Linter, *parser.ParserManager, error) {
	pm := parser.NewParserManager(a.logger)
	linter, err := lint.NewLinter(pm, a.registry, cfg.Lint, a.logger)
	if err != nil {
		pm.Close()
		return nil, nil, err
	}
	if cacheSize > 0 {
		linter.SetCache(lint.NewResultCache(cacheSize))
	}
	if cfg.Path != "" {
		a.logger.Debug("loaded config", "path", cfg.Path)
	}
	return linter, pm, nil
}
