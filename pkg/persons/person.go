// Package persons holds the per-person records the export is built from.
//
// A Person carries one map of fields per source. Lookups never fail: Get
// soft-fails to the empty string for display composition, Lookup reports
// whether the value exists so callers can fall back to another source.
// Misses are reported to an optional Observer rather than logged.
package persons

import (
	"fmt"
	"slices"

	"github.com/umd-lib/staffdir/pkg/errors"
	"github.com/umd-lib/staffdir/pkg/sources"
)

// Fields is one source's field set for a person.
type Fields map[string]string

// Person is a single individual's attributes, partitioned by source.
type Person struct {
	id       string
	sources  map[sources.ID]Fields
	observer Observer
}

// Option configures a Person.
type Option func(*Person)

// WithObserver reports lookup misses to obs.
func WithObserver(obs Observer) Option {
	return func(p *Person) {
		p.observer = obs
	}
}

// New creates a Person. The id must be non-empty and srcs must be non-nil;
// either violation is returned as a ValidationError.
func New(id string, srcs map[sources.ID]Fields, opts ...Option) (*Person, error) {
	if id == "" {
		return nil, errors.NewValidationError("id", id, "person id is empty")
	}
	if srcs == nil {
		return nil, errors.NewValidationError("sources", nil, fmt.Sprintf("sources for person %s is nil", id))
	}

	p := &Person{id: id, sources: srcs}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// MustNew is like New but panics on error. Intended for fixtures.
func MustNew(id string, srcs map[sources.ID]Fields, opts ...Option) *Person {
	p, err := New(id, srcs, opts...)
	if err != nil {
		panic(err)
	}
	return p
}

// ID returns the unique identifier of the person.
func (p *Person) ID() string {
	return p.id
}

// Sources returns the IDs of the sources this person has data from, sorted.
func (p *Person) Sources() []sources.ID {
	ids := make([]sources.ID, 0, len(p.sources))
	for id := range p.sources {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Fields returns a copy of the fields for one source, or nil if absent.
func (p *Person) Fields(source sources.ID) Fields {
	src, ok := p.sources[source]
	if !ok {
		return nil
	}
	out := make(Fields, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

// Get returns the value of field in source, or "" if either is absent.
func (p *Person) Get(source sources.ID, field string) string {
	v, _ := p.Lookup(source, field)
	return v
}

// Lookup returns the value of field in source. ok is false when the source
// is absent or the field is absent within it; ("", true) means the value
// exists and is empty.
func (p *Person) Lookup(source sources.ID, field string) (value string, ok bool) {
	src, found := p.sources[source]
	if !found {
		p.notify(source, field, SourceMissing)
		return "", false
	}
	value, ok = src[field]
	if !ok {
		p.notify(source, field, FieldMissing)
	}
	return value, ok
}

func (p *Person) notify(source sources.ID, field string, reason Reason) {
	if p.observer == nil {
		return
	}
	p.observer(Miss{PersonID: p.id, Source: source, Field: field, Reason: reason})
}

// String implements fmt.Stringer.
func (p *Person) String() string {
	return fmt.Sprintf("Person[id: %s]", p.id)
}
