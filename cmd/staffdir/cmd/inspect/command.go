// Package inspect provides the inspect command, which explains how each
// export column was resolved for one person.
package inspect

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/umd-lib/staffdir"
	"github.com/umd-lib/staffdir/internal/cmd/output"
	"github.com/umd-lib/staffdir/pkg/export"
)

// AppContext defines what the inspect command needs from the app.
type AppContext interface {
	Exporter() (*staffdir.Exporter, error)
	Logger() *zerolog.Logger
}

// Cell is one explained column.
type Cell struct {
	Column string `json:"column" yaml:"column"`
	Value  string `json:"value" yaml:"value"`
	Origin string `json:"origin" yaml:"origin"`
	Rule   string `json:"rule,omitempty" yaml:"rule,omitempty"`
}

// NewCommand creates the inspect command.
func NewCommand(app AppContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "inspect <uid>",
		GroupID: "core",
		Short:   "Explain where each export column of a person comes from",
		Long: `Inspect resolves one person exactly as export does and shows, for every
column, the value and its origin:

  mapping  - resolved through the field mapping rule shown
  derived  - computed by a business rule (Title, Display Name, Location)
  absent   - the mapped source or field does not exist for the person`,
		Example: `  staffdir inspect jdoe
  staffdir inspect jdoe --format yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			f = output.DetectFormat(string(f))

			exp, err := app.Exporter()
			if err != nil {
				return err
			}
			ds, err := exp.Load(cmd.Context())
			if err != nil {
				return err
			}
			p, err := ds.Person(args[0])
			if err != nil {
				return err
			}

			cells := Cells(ds.Generator.Explain(p))
			app.Logger().Debug().Str("uid", p.ID()).Int("columns", len(cells)).Msg("Explained person")

			formatter := output.NewFormatter(f)
			if f == output.FormatTable {
				return formatter.Format(cmd.OutOrStdout(), table(cells))
			}
			return formatter.Format(cmd.OutOrStdout(), cells)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: table, json, yaml")
	return cmd
}

// Cells converts explained export cells for display.
func Cells(in []export.Cell) []Cell {
	out := make([]Cell, len(in))
	for i, c := range in {
		out[i] = Cell{Column: c.Column, Value: c.Value, Origin: string(c.Origin)}
		if c.Rule.DestinationField != "" {
			out[i].Rule = c.Rule.String()
		}
	}
	return out
}

func table(cells []Cell) output.Data {
	rows := make([][]string, len(cells))
	for i, c := range cells {
		rows[i] = []string{c.Column, c.Value, c.Origin, c.Rule}
	}
	return output.Data{
		Headers:         []string{"Column", "Value", "Origin", "Rule"},
		Rows:            rows,
		ColumnAlignment: []output.Align{output.AlignLeft, output.AlignLeft, output.AlignCenter, output.AlignLeft},
	}
}
