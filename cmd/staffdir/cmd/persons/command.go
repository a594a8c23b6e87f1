// Package persons provides the persons command.
package persons

import (
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/umd-lib/staffdir"
	"github.com/umd-lib/staffdir/internal/cmd/output"
	"github.com/umd-lib/staffdir/pkg/export"
	"github.com/umd-lib/staffdir/pkg/persons"
)

// AppContext defines what the persons command needs from the app.
type AppContext interface {
	Exporter() (*staffdir.Exporter, error)
	Logger() *zerolog.Logger
}

// Summary is one line of the persons listing.
type Summary struct {
	ID          string   `json:"id" yaml:"id"`
	DisplayName string   `json:"display_name" yaml:"display_name"`
	Sources     []string `json:"sources" yaml:"sources"`
}

// Detail is a person with all source fields.
type Detail struct {
	ID      string                       `json:"id" yaml:"id"`
	Sources map[string]map[string]string `json:"sources" yaml:"sources"`
}

// NewCommand creates the persons command.
func NewCommand(app AppContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "persons [uid]",
		GroupID: "core",
		Short:   "List merged persons or show one person's source records",
		Example: `  staffdir persons               # All persons and their sources
  staffdir persons jdoe          # Every source field for jdoe
  staffdir persons --format json`,
		Args: cobra.MaximumNArgs(1),
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

			formatter := output.NewFormatter(f)
			w := cmd.OutOrStdout()

			if len(args) == 0 {
				summaries := Summaries(ds.Persons)
				if f == output.FormatTable {
					return formatter.Format(w, summaryTable(summaries))
				}
				return formatter.Format(w, summaries)
			}

			p, err := ds.Person(args[0])
			if err != nil {
				return err
			}
			detail := NewDetail(p)
			if f == output.FormatTable {
				return formatter.Format(w, detailTable(detail))
			}
			return formatter.Format(w, detail)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: table, json, yaml")
	return cmd
}

// Summaries builds the listing for ps, in merge order.
func Summaries(ps []*persons.Person) []Summary {
	out := make([]Summary, 0, len(ps))
	for _, p := range ps {
		ids := p.Sources()
		names := make([]string, len(ids))
		for i, id := range ids {
			names[i] = id.String()
		}
		out = append(out, Summary{
			ID:          p.ID(),
			DisplayName: strings.TrimSpace(export.DisplayName(p)),
			Sources:     names,
		})
	}
	return out
}

// NewDetail copies every source record of p.
func NewDetail(p *persons.Person) Detail {
	d := Detail{ID: p.ID(), Sources: make(map[string]map[string]string)}
	for _, id := range p.Sources() {
		d.Sources[id.String()] = p.Fields(id)
	}
	return d
}

func summaryTable(ss []Summary) output.Data {
	rows := make([][]string, len(ss))
	for i, s := range ss {
		rows[i] = []string{s.ID, s.DisplayName, strings.Join(s.Sources, ", ")}
	}
	return output.Data{Headers: []string{"ID", "Display Name", "Sources"}, Rows: rows}
}

func detailTable(d Detail) output.Data {
	srcs := make([]string, 0, len(d.Sources))
	for s := range d.Sources {
		srcs = append(srcs, s)
	}
	sort.Strings(srcs)

	var rows [][]string
	for _, s := range srcs {
		fields := make([]string, 0, len(d.Sources[s]))
		for f := range d.Sources[s] {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			rows = append(rows, []string{s, f, d.Sources[s][f]})
		}
	}
	return output.Data{Headers: []string{"Source", "Field", "Value"}, Rows: rows}
}
