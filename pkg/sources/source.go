// Package sources defines the boundary between staffdir and the systems
// that hold per-person data.
//
// A Source returns a raw cell grid (first row = header) in one blocking
// call. Conversion into records happens in package table, and records are
// combined into persons by package persons.
//
// Example usage:
//
//	srcs := sources.NewSources()
//	srcs.Add(staffSheet, "uid")
//	srcs.Add(ldapSheet, "uid")
//
//	for _, entry := range srcs.List() {
//	    grid, err := entry.Source.Fetch(ctx)
//	    ...
//	}
package sources

import (
	"context"
	"slices"
)

// ID represents the identifier of a data source. It is also the outer key
// of a person's source map, so it must match the Source column of the
// field mapping table.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// Well-known source IDs.
const (
	// StaffID is the staff-maintained spreadsheet.
	StaffID ID = "Staff"

	// LDAPID is the organizational directory feed.
	LDAPID ID = "LDAP"

	// FieldMappingsID is the sheet holding the field mapping table.
	FieldMappingsID ID = "Field Mappings"
)

// IDs returns the person data source IDs, in merge order.
func IDs() []ID {
	return []ID{StaffID, LDAPID}
}

// IsKnown returns true if the ID is one of the person data sources.
func (id ID) IsKnown() bool {
	return slices.Contains(IDs(), id)
}

// Source represents a data source returning a cell grid.
type Source interface {
	// ID returns the identifier of this source
	ID() ID

	// Fetch retrieves the whole grid. A source with no data returns a nil
	// grid and a nil error; a source that cannot be reached returns an error.
	Fetch(ctx context.Context) ([][]any, error)
}

// Entry pairs a source with the column that holds the person identifier.
type Entry struct {
	Source Source
	Key    string
}

// Sources is an ordered collection of person data sources.
// Order matters: persons are emitted in the order they are first observed.
type Sources struct {
	entries []Entry
}

// NewSources creates a new Sources instance.
func NewSources() *Sources {
	return &Sources{}
}

// Add appends a source. A source with an ID already present replaces it in place.
func (s *Sources) Add(src Source, key string) {
	for i, e := range s.entries {
		if e.Source.ID() == src.ID() {
			s.entries[i] = Entry{Source: src, Key: key}
			return
		}
	}
	s.entries = append(s.entries, Entry{Source: src, Key: key})
}

// Get returns a source by ID.
func (s *Sources) Get(id ID) (Entry, bool) {
	for _, e := range s.entries {
		if e.Source.ID() == id {
			return e, true
		}
	}
	return Entry{}, false
}

// Len returns the number of sources.
func (s *Sources) Len() int {
	return len(s.entries)
}

// List returns the sources in insertion order.
func (s *Sources) List() []Entry {
	return slices.Clone(s.entries)
}

// IDs returns the source IDs in insertion order.
func (s *Sources) IDs() []ID {
	ids := make([]ID, 0, len(s.entries))
	for _, e := range s.entries {
		ids = append(ids, e.Source.ID())
	}
	return ids
}

// Static is a Source backed by an in-memory grid.
type Static struct {
	SourceID ID
	Grid     [][]any
}

// ID returns the source ID.
func (s *Static) ID() ID {
	return s.SourceID
}

// Fetch returns the grid.
func (s *Static) Fetch(_ context.Context) ([][]any, error) {
	return s.Grid, nil
}
