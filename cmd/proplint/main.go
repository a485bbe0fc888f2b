package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

const version = "0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := newApp()
	rootCmd := a.RootCmd()
	rootCmd.AddCommand(a.LintCmd())
	rootCmd.AddCommand(a.WatchCmd())
	rootCmd.AddCommand(a.ServeCmd())
	rootCmd.AddCommand(a.RulesCmd())
	rootCmd.AddCommand(a.VersionCmd())

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		// Problems were already reported.
		if !errors.Is(err, errProblems) {
			fmt.Fprintf(os.Stderr, "proplint: %v\n", err)
		}
		os.Exit(1)
	}
}
