package main

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/gnana997/proplint/pkg/lint"
)

// RulesCmd returns the rules command.
func (a *app) RulesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rules",
		Short: "List available rules and their configured severity",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			r := lipgloss.NewRenderer(out)
			nameStyle := r.NewStyle().Bold(true).Width(24)
			sevStyles := map[lint.Severity]lipgloss.Style{
				lint.SeverityOff:   r.NewStyle().Faint(true).Width(7),
				lint.SeverityWarn:  r.NewStyle().Foreground(lipgloss.Color("3")).Width(7),
				lint.SeverityError: r.NewStyle().Foreground(lipgloss.Color("1")).Width(7),
			}

			for _, rule := range a.registry.Rules() {
				meta := rule.Meta()
				sev := cfg.Lint.Rules[meta.Name].Severity
				fmt.Fprintf(out, "%s %s %s\n",
					nameStyle.Render(meta.Name),
					sevStyles[sev].Render(sev.String()),
					meta.Description)
			}
			return nil
		},
	}
}

// VersionCmd returns the version command.
func (a *app) VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "proplint %s\n", version)
		},
	}
}
