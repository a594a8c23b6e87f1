// Package mapping describes how each export column is derived from a
// person's source data.
//
// A Table is an ordered list of Rules. The order of first appearance of
// each destination field is the export's column order. When more than one
// rule targets the same destination, the last one in table order is the
// one used for resolution.
package mapping

import (
	"fmt"

	"github.com/umd-lib/staffdir/pkg/errors"
	"github.com/umd-lib/staffdir/pkg/sources"
)

// Rule maps one (source, source field) pair to an export column.
type Rule struct {
	DestinationField string `yaml:"destination" toml:"destination" json:"destination"`
	Source           string `yaml:"source" toml:"source" json:"source"`
	SourceField      string `yaml:"source_field" toml:"source_field" json:"source_field"`
	DisplayType      string `yaml:"display_type,omitempty" toml:"display_type,omitempty" json:"display_type,omitempty"`
}

// SourceID returns the rule's source as a sources.ID.
func (r Rule) SourceID() sources.ID {
	return sources.ID(r.Source)
}

// String implements fmt.Stringer.
func (r Rule) String() string {
	return fmt.Sprintf("%s <- %s.%s", r.DestinationField, r.Source, r.SourceField)
}

// Table is an ordered sequence of rules.
type Table []Rule

// Columns returns the distinct destination fields in first-seen order.
func (t Table) Columns() []string {
	seen := make(map[string]bool, len(t))
	cols := make([]string, 0, len(t))
	for _, r := range t {
		if seen[r.DestinationField] {
			continue
		}
		seen[r.DestinationField] = true
		cols = append(cols, r.DestinationField)
	}
	return cols
}

// Index maps each destination field to the rule that resolves it.
//
// Rules are visited in table order and each one overwrites any earlier
// entry for the same destination, so the last rule for a destination wins.
func (t Table) Index() map[string]Rule {
	idx := make(map[string]Rule, len(t))
	for _, r := range t {
		idx[r.DestinationField] = r
	}
	return idx
}

// Shadowed returns the rules that Index discards because a later rule
// targets the same destination, in table order.
func (t Table) Shadowed() []Rule {
	last := make(map[string]int, len(t))
	for i, r := range t {
		last[r.DestinationField] = i
	}
	var out []Rule
	for i, r := range t {
		if last[r.DestinationField] != i {
			out = append(out, r)
		}
	}
	return out
}

// Validate reports rules with a blank destination, source or source field.
// All problems are returned joined; nil means the table is clean.
func (t Table) Validate() error {
	var errs []error
	for i, r := range t {
		row := fmt.Sprintf("rule %d", i+1)
		if r.DestinationField == "" {
			errs = append(errs, errors.NewValidationError(row, r, "destination field is blank"))
		}
		if r.Source == "" {
			errs = append(errs, errors.NewValidationError(row, r, "source is blank"))
		}
		if r.SourceField == "" {
			errs = append(errs, errors.NewValidationError(row, r, "source field is blank"))
		}
	}
	return errors.Join(errs...)
}
