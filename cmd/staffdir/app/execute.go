package app

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/umd-lib/staffdir/pkg/constants"
)

// globalFlags are the persistent flags of the root command.
type globalFlags struct {
	configFile string
	verbose    bool
	quiet      bool
	noColor    bool
	logLevel   string
}

// Execute runs the staffdir CLI application with the given arguments.
func (a *App) Execute(ctx context.Context, args []string) error {
	rootCmd := a.createRootCommand()
	rootCmd.SetArgs(args)

	ctx, cancel := context.WithTimeout(ctx, constants.CommandTimeout)
	defer cancel()

	return rootCmd.ExecuteContext(ctx)
}

// createRootCommand creates the root cobra command with all subcommands.
func (a *App) createRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "staffdir",
		Short:   "Staff directory export",
		Version: a.version,
		Long: `Staffdir builds the staff directory import for the library website.

It merges per-person records from the organizational directory (LDAP) and
the staff spreadsheet, resolves every output column through the field
mapping table, computes the Title, Display Name and Location columns and
writes one row per person.

Sources are Google Sheets tabs by default. Set GOOGLE_API_KEY and
spreadsheet_id, or point sources at local CSV or YAML files.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupCommand(cmd, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "Core Commands:"})
	rootCmd.AddGroup(&cobra.Group{ID: "management", Title: "Management Commands:"})

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.configFile, "config", "", "config file (default is $HOME/.staffdir.yaml)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	pf.BoolVarP(&flags.quiet, "quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colored output")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")

	rootCmd.SetVersionTemplate("staffdir {{.Version}}\n")

	a.registerCommands(rootCmd)

	return rootCmd
}

// setupCommand is called before any command runs. It reloads the config
// when --config is given, applies the global flags and rebuilds the logger.
func (a *App) setupCommand(_ *cobra.Command, flags *globalFlags) error {
	if flags.configFile != "" {
		config, err := LoadConfig(flags.configFile)
		if err != nil {
			return err
		}
		a.mu.Lock()
		a.config = config
		a.exporter = nil
		a.mu.Unlock()
	}

	a.config.UpdateFromFlags(flags.verbose, flags.quiet, flags.noColor, flags.logLevel)

	a.logger = NewLogger(a.config)

	return nil
}

// ExitOnError prints an error and exits with status 1.
func ExitOnError(err error) {
	if err != nil {
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		os.Exit(1)
	}
}
