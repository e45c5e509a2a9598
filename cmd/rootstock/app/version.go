package app

import (
	"fmt"

	"github.com/spf13/cobra"
)

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		RunE: func(cmd *cobra.Command, _ []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "rootstock %s\n", a.version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit: %s\n", a.commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:  %s\n", a.date)
			return nil
		},
	}
}
