package export

import (
	"github.com/umd-lib/staffdir/pkg/mapping"
	"github.com/umd-lib/staffdir/pkg/persons"
)

// Origin tells where a cell's value came from.
type Origin string

const (
	// OriginMapping means the value was resolved through a mapping rule.
	OriginMapping Origin = "mapping"
	// OriginDerived means a deriver produced the value.
	OriginDerived Origin = "derived"
	// OriginAbsent means the column has no value for the person.
	OriginAbsent Origin = "absent"
)

// Cell describes the resolution of one header column for one person.
type Cell struct {
	Column string
	Value  string
	Origin Origin
	// Rule is the rule used for the column, also set when the lookup missed
	// or a deriver overrode the mapped value.
	Rule mapping.Rule
}

// Explain resolves a person like Row does and reports, for each header
// column, the value and its origin.
func (g *Generator) Explain(p *persons.Person) []Cell {
	row := g.Row(p)

	derived := make(map[string]bool, len(g.derivers))
	for _, d := range g.derivers {
		derived[d.Column] = true
	}

	cells := make([]Cell, 0, len(g.columns))
	for _, col := range g.columns {
		c := Cell{Column: col, Rule: g.index[col]}
		value, ok := row[col]
		switch {
		case derived[col]:
			c.Origin = OriginDerived
		case ok:
			c.Origin = OriginMapping
		default:
			c.Origin = OriginAbsent
		}
		c.Value = value
		cells = append(cells, c)
	}
	return cells
}
