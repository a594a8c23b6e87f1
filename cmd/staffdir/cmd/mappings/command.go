// Package mappings provides the mappings command and its validate subcommand.
package mappings

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/umd-lib/staffdir"
	"github.com/umd-lib/staffdir/internal/cmd/output"
	"github.com/umd-lib/staffdir/pkg/errors"
	"github.com/umd-lib/staffdir/pkg/mapping"
)

// AppContext defines what the mappings commands need from the app.
type AppContext interface {
	Exporter() (*staffdir.Exporter, error)
	Logger() *zerolog.Logger
}

// Entry is one mapping rule with its effective status.
type Entry struct {
	Destination string `json:"destination" yaml:"destination"`
	Source      string `json:"source" yaml:"source"`
	SourceField string `json:"source_field" yaml:"source_field"`
	DisplayType string `json:"display_type" yaml:"display_type"`
	Status      string `json:"status" yaml:"status"`
}

// Rule statuses.
const (
	StatusActive   = "active"
	StatusShadowed = "shadowed"
)

// NewCommand creates the mappings command.
func NewCommand(app AppContext) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "mappings",
		GroupID: "management",
		Short:   "Show the field mapping table",
		Long: `Mappings prints the field mapping table in the order it was loaded.

A rule whose destination is targeted again further down is shadowed: the
last rule for a destination is the one the export uses.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			f, err := output.ParseFormat(format)
			if err != nil {
				return err
			}
			f = output.DetectFormat(string(f))

			t, err := load(cmd, app)
			if err != nil {
				return err
			}
			return output.NewFormatter(f).Format(cmd.OutOrStdout(), Entries(t))
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: table, json, yaml")
	cmd.AddCommand(newValidateCommand(app))
	return cmd
}

func newValidateCommand(app AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the field mapping table for incomplete or shadowed rules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := load(cmd, app)
			if err != nil {
				return err
			}

			w := cmd.OutOrStdout()
			for _, r := range t.Shadowed() {
				fmt.Fprintf(w, "warning: %s is shadowed by a later rule\n", r)
			}

			if err := t.Validate(); err != nil {
				fmt.Fprintf(w, "%v\n", err)
				return errors.NewValidationError("mappings", nil, "mapping table is invalid")
			}

			fmt.Fprintf(w, "%d rules, %d columns: ok\n", len(t), len(t.Columns()))
			return nil
		},
	}
}

func load(cmd *cobra.Command, app AppContext) (mapping.Table, error) {
	exp, err := app.Exporter()
	if err != nil {
		return nil, err
	}
	return exp.Mappings(cmd.Context())
}

// Entries lists the rules of t with their status.
func Entries(t mapping.Table) []Entry {
	shadowed := make(map[int]bool)
	last := make(map[string]int, len(t))
	for i, r := range t {
		if j, ok := last[r.DestinationField]; ok {
			shadowed[j] = true
		}
		last[r.DestinationField] = i
	}

	out := make([]Entry, len(t))
	for i, r := range t {
		status := StatusActive
		if shadowed[i] {
			status = StatusShadowed
		}
		out[i] = Entry{
			Destination: r.DestinationField,
			Source:      r.Source,
			SourceField: r.SourceField,
			DisplayType: r.DisplayType,
			Status:      status,
		}
	}
	return out
}
