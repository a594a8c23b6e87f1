package staffdir

import (
	"github.com/umd-lib/staffdir/pkg/persons"
	"github.com/umd-lib/staffdir/pkg/sources"
)

// Hook function types for pipeline events
type (
	// SourceFetchedHook is called after a source has been fetched and
	// converted, with the number of records it produced
	SourceFetchedHook func(id sources.ID, records int)

	// PersonsMergedHook is called once the source tables are merged
	PersonsMergedHook func(ps []*persons.Person, report *persons.MergeReport)
)

// hooks holds event callbacks registered on an Exporter
type hooks struct {
	onSourceFetched []SourceFetchedHook
	onPersonsMerged []PersonsMergedHook
}

// OnSourceFetched registers a callback for completed source fetches
func (e *Exporter) OnSourceFetched(fn SourceFetchedHook) {
	e.hooks.onSourceFetched = append(e.hooks.onSourceFetched, fn)
}

// OnPersonsMerged registers a callback for the merge step
func (e *Exporter) OnPersonsMerged(fn PersonsMergedHook) {
	e.hooks.onPersonsMerged = append(e.hooks.onPersonsMerged, fn)
}

func (h *hooks) sourceFetched(id sources.ID, records int) {
	for _, fn := range h.onSourceFetched {
		fn(id, records)
	}
}

func (h *hooks) personsMerged(ps []*persons.Person, report *persons.MergeReport) {
	for _, fn := range h.onPersonsMerged {
		fn(ps, report)
	}
}
