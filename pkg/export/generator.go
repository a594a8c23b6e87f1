// Package export turns persons into rows for bulk import into the CMS.
//
// Generation is pure: a Generator resolves every column of every person
// into a Result, and a Renderer writes a Result in one of the supported
// formats. Nothing in the generator performs I/O.
package export

import (
	"slices"

	"github.com/umd-lib/staffdir/pkg/mapping"
	"github.com/umd-lib/staffdir/pkg/persons"
)

// Row maps destination column to resolved value for one person. A column
// with no value is absent from the map, which is not the same as "".
type Row map[string]string

// Result is the outcome of one export pass.
type Result struct {
	// Columns is the header: distinct destination fields in first-seen order.
	Columns []string
	// IDs holds the person identifier for each row.
	IDs []string
	// Rows holds one row per person, in input order.
	Rows []Row
}

// Values returns the rows as positional values in column order. Absent
// values become "". Derived values for columns outside the header are
// not emitted.
func (r *Result) Values() [][]string {
	out := make([][]string, len(r.Rows))
	for i, row := range r.Rows {
		vals := make([]string, len(r.Columns))
		for j, col := range r.Columns {
			vals[j] = row[col]
		}
		out[i] = vals
	}
	return out
}

// Generator resolves persons against a mapping table.
type Generator struct {
	columns    []string
	index      map[string]mapping.Rule
	transforms Transforms
	derivers   []Deriver
}

// Option configures a Generator.
type Option func(*Generator)

// WithTransforms sets the display type transforms.
func WithTransforms(t Transforms) Option {
	return func(g *Generator) {
		g.transforms = t
	}
}

// WithDerivers replaces the default derivers.
func WithDerivers(d ...Deriver) Option {
	return func(g *Generator) {
		g.derivers = d
	}
}

// NewGenerator creates a Generator for the mapping table. The column order
// and the destination index are fixed at construction.
func NewGenerator(mappings mapping.Table, opts ...Option) *Generator {
	g := &Generator{
		columns:  mappings.Columns(),
		index:    mappings.Index(),
		derivers: DefaultDerivers(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Columns returns the header.
func (g *Generator) Columns() []string {
	return slices.Clone(g.columns)
}

// Generate resolves every person. Calling it twice with the same input
// yields identical results.
func (g *Generator) Generate(ps []*persons.Person) *Result {
	res := &Result{
		Columns: g.Columns(),
		IDs:     make([]string, 0, len(ps)),
		Rows:    make([]Row, 0, len(ps)),
	}
	for _, p := range ps {
		res.IDs = append(res.IDs, p.ID())
		res.Rows = append(res.Rows, g.Row(p))
	}
	return res
}

// Row resolves one person.
//
// Each header column is looked up through its rule; a missing source value
// leaves the column out of the row, a present one is stored after the
// display type transform. Derived columns are then written unconditionally,
// including derived columns that are not in the header.
func (g *Generator) Row(p *persons.Person) Row {
	row := make(Row, len(g.columns)+len(g.derivers))
	for _, col := range g.columns {
		rule := g.index[col]
		value, ok := p.Lookup(rule.SourceID(), rule.SourceField)
		if !ok {
			continue
		}
		row[col] = g.transforms.Apply(rule.DisplayType, value)
	}
	for _, d := range g.derivers {
		row[d.Column] = d.Derive(p)
	}
	return row
}
