// Package export provides the export command.
package export

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/umd-lib/staffdir"
	"github.com/umd-lib/staffdir/pkg/constants"
	"github.com/umd-lib/staffdir/pkg/errors"
	"github.com/umd-lib/staffdir/pkg/export"
)

// AppContext defines what the export command needs from the app.
type AppContext interface {
	Exporter() (*staffdir.Exporter, error)
	Logger() *zerolog.Logger
	OutputFormat() string
	OutputPath() string
}

// Flags holds the export command flags.
type Flags struct {
	Output   string
	Format   string
	NoHeader bool
}

// NewCommand creates the export command.
func NewCommand(app AppContext) *cobra.Command {
	flags := &Flags{}

	cmd := &cobra.Command{
		Use:     "export",
		GroupID: "core",
		Short:   "Generate the staff directory export",
		Long: `Export fetches every configured person source, merges the records by
identifier, resolves each output column through the field mapping table
and writes one row per person.

Formats:
  csv     - CSV with a header row (default)
  legacy  - every value followed by a comma, no header
  table   - aligned text table
  json    - array of objects keyed by column
  yaml    - sequence of mappings keyed by column`,
		Example: `  staffdir export                         # CSV to stdout
  staffdir export -o staff.csv            # CSV to a file
  staffdir export --format legacy         # Original comma-terminated text
  staffdir export --format json | jq .    # JSON for scripting`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.Output, "output", "o", "", "write the export to a file instead of stdout")
	cmd.Flags().StringVar(&flags.Format, "format", "", "output format: csv, legacy, table, json, yaml")
	cmd.Flags().BoolVar(&flags.NoHeader, "no-header", false, "omit the CSV header row")

	return cmd
}

func run(cmd *cobra.Command, app AppContext, flags *Flags) error {
	logger := app.Logger()

	formatName := flags.Format
	if formatName == "" {
		formatName = app.OutputFormat()
	}
	format := export.FormatCSV
	if formatName != "" {
		var err error
		if format, err = export.ParseFormat(formatName); err != nil {
			return err
		}
	}

	exp, err := app.Exporter()
	if err != nil {
		return err
	}

	result, report, err := exp.Run(cmd.Context())
	if err != nil {
		return err
	}

	renderer := export.NewRenderer(format)
	if format == export.FormatCSV && flags.NoHeader {
		renderer = &export.CSVRenderer{NoHeader: true}
	}

	path := flags.Output
	if path == "" {
		path = app.OutputPath()
	}
	if path == "" || path == "-" {
		return renderer.Render(cmd.OutOrStdout(), result)
	}

	if err := writeFile(path, func(w io.Writer) error { return renderer.Render(w, result) }); err != nil {
		return err
	}

	logger.Info().
		Str("path", path).
		Str("format", string(format)).
		Int("persons", report.Persons).
		Int("rows", len(result.Rows)).
		Msg("Export written")
	return nil
}

// writeFile creates or truncates path and writes to it.
func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return errors.WrapIO("create", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.WrapIO("close", path, cerr)
		}
	}()

	return write(f)
}
