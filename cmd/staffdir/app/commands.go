package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umd-lib/staffdir/cmd/staffdir/cmd/export"
	"github.com/umd-lib/staffdir/cmd/staffdir/cmd/inspect"
	"github.com/umd-lib/staffdir/cmd/staffdir/cmd/mappings"
	"github.com/umd-lib/staffdir/cmd/staffdir/cmd/persons"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(export.NewCommand(a))
	rootCmd.AddCommand(persons.NewCommand(a))
	rootCmd.AddCommand(inspect.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(mappings.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.CreateVersionCommand())
}

// CreateVersionCommand creates the version command.
func (a *App) CreateVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, _ []string) {
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "staffdir %s\n", a.version)
			if a.config.Verbose {
				fmt.Fprintf(w, "  commit:   %s\n", a.commit)
				fmt.Fprintf(w, "  built:    %s\n", a.date)
				fmt.Fprintf(w, "  built by: %s\n", a.builtBy)
			}
		},
	}
}
