package persons

import (
	"strings"

	"github.com/umd-lib/staffdir/pkg/sources"
	"github.com/umd-lib/staffdir/pkg/table"
)

// SourceTable is one source's records together with the record field
// holding the person identifier.
type SourceTable struct {
	ID      sources.ID
	Key     string
	Records []table.Record
}

// MergeReport summarizes a merge.
type MergeReport struct {
	// Persons is the number of persons produced.
	Persons int
	// Rows is the number of records read per source.
	Rows map[sources.ID]int
	// Skipped counts records with a blank identifier, per source.
	Skipped map[sources.ID]int
	// Duplicates lists identifiers seen more than once within one source.
	Duplicates map[sources.ID][]string
}

// Merger combines source tables into persons.
type Merger struct {
	observer Observer
}

// MergeOption configures a Merger.
type MergeOption func(*Merger)

// WithMissObserver attaches obs to every person the merger builds.
func WithMissObserver(obs Observer) MergeOption {
	return func(m *Merger) {
		m.observer = obs
	}
}

// NewMerger creates a Merger.
func NewMerger(opts ...MergeOption) *Merger {
	m := &Merger{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Merge is shorthand for NewMerger(opts...).Merge(tables).
func Merge(tables []SourceTable, opts ...MergeOption) ([]*Person, *MergeReport) {
	return NewMerger(opts...).Merge(tables)
}

// Merge builds one Person per distinct identifier across all tables.
//
// Persons come out in the order they are first observed, walking tables in
// order. Identifiers are compared after trimming surrounding whitespace;
// records with a blank identifier are skipped. When a source has more than
// one record for the same person the first one wins.
func (m *Merger) Merge(tables []SourceTable) ([]*Person, *MergeReport) {
	report := &MergeReport{
		Rows:       make(map[sources.ID]int),
		Skipped:    make(map[sources.ID]int),
		Duplicates: make(map[sources.ID][]string),
	}

	var order []string
	byID := make(map[string]map[sources.ID]Fields)

	for _, tbl := range tables {
		report.Rows[tbl.ID] += len(tbl.Records)
		for _, rec := range tbl.Records {
			id := strings.TrimSpace(rec[tbl.Key])
			if id == "" {
				report.Skipped[tbl.ID]++
				continue
			}

			srcs, seen := byID[id]
			if !seen {
				srcs = make(map[sources.ID]Fields)
				byID[id] = srcs
				order = append(order, id)
			}
			if _, dup := srcs[tbl.ID]; dup {
				report.Duplicates[tbl.ID] = append(report.Duplicates[tbl.ID], id)
				continue
			}

			fields := make(Fields, len(rec))
			for k, v := range rec {
				fields[k] = v
			}
			srcs[tbl.ID] = fields
		}
	}

	var opts []Option
	if m.observer != nil {
		opts = append(opts, WithObserver(m.observer))
	}

	persons := make([]*Person, 0, len(order))
	for _, id := range order {
		// id is non-empty and the source map non-nil, so New cannot fail.
		persons = append(persons, MustNew(id, byID[id], opts...))
	}
	report.Persons = len(persons)

	return persons, report
}
