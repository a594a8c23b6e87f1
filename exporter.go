// Package staffdir builds the staff directory export.
//
// An Exporter fetches the person sources, merges them into persons by
// identifier, loads the field mapping table and resolves every person into
// an export row:
//
//	exp, err := staffdir.New(
//		staffdir.WithSource(staff, "uid"),
//		staffdir.WithSource(ldap, "uid"),
//		staffdir.WithMappingFile("mappings.yaml"),
//	)
//	result, report, err := exp.Run(ctx)
package staffdir

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/umd-lib/staffdir/pkg/errors"
	"github.com/umd-lib/staffdir/pkg/export"
	"github.com/umd-lib/staffdir/pkg/logging"
	"github.com/umd-lib/staffdir/pkg/mapping"
	"github.com/umd-lib/staffdir/pkg/persons"
	"github.com/umd-lib/staffdir/pkg/sources"
	"github.com/umd-lib/staffdir/pkg/table"
)

// Exporter runs the export pipeline.
type Exporter struct {
	config *config
	hooks  hooks
}

// Dataset is everything the pipeline has loaded before generation.
type Dataset struct {
	Persons   []*persons.Person
	Report    *persons.MergeReport
	Mappings  mapping.Table
	Generator *export.Generator
}

// Person returns the person with the given identifier.
func (d *Dataset) Person(id string) (*persons.Person, error) {
	for _, p := range d.Persons {
		if p.ID() == id {
			return p, nil
		}
	}
	return nil, errors.NewNotFoundError("person", id)
}

// New creates an Exporter with the given options.
func New(opts ...Option) (*Exporter, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	if cfg.sources.Len() == 0 {
		return nil, errors.NewConfigError("exporter", "at least one person source is required", nil)
	}
	if cfg.mappings == nil && cfg.mappingsFile == "" && cfg.mappingSource == nil {
		return nil, errors.NewConfigError("exporter", "no mapping table configured", nil)
	}
	if cfg.logger == nil {
		cfg.logger = logging.Default()
	}

	return &Exporter{config: cfg}, nil
}

// Sources returns the configured person sources in merge order.
func (e *Exporter) Sources() []sources.Entry {
	return e.config.sources.List()
}

// Run fetches, merges and generates. The result is not rendered.
func (e *Exporter) Run(ctx context.Context) (*export.Result, *persons.MergeReport, error) {
	ds, err := e.Load(ctx)
	if err != nil {
		return nil, nil, err
	}

	result := ds.Generator.Generate(ds.Persons)
	e.config.logger.Info().
		Int("rows", len(result.Rows)).
		Int("columns", len(result.Columns)).
		Msg("Export generated")

	return result, ds.Report, nil
}

// Load fetches every source, merges persons and loads the mapping table.
// Sources are fetched one after another; the first failure aborts the run.
func (e *Exporter) Load(ctx context.Context) (*Dataset, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := e.config.logger

	tables := make([]persons.SourceTable, 0, e.config.sources.Len())
	for _, entry := range e.config.sources.List() {
		records, err := e.fetch(ctx, entry.Source)
		if err != nil {
			return nil, err
		}
		tables = append(tables, persons.SourceTable{
			ID:      entry.Source.ID(),
			Key:     entry.Key,
			Records: records,
		})
	}

	ps, report := persons.Merge(tables, persons.WithMissObserver(e.observer()))
	logMergeReport(logger, report)
	e.hooks.personsMerged(ps, report)

	mappings, err := e.loadMappings(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range mappings.Shadowed() {
		logger.Warn().
			Str("destination", r.DestinationField).
			Str("rule", r.String()).
			Msg("Mapping rule shadowed by a later rule for the same destination")
	}
	if err := mappings.Validate(); err != nil {
		logger.Warn().Err(err).Msg("Mapping table has incomplete rules")
	}

	var genOpts []export.Option
	if e.config.transforms != nil {
		genOpts = append(genOpts, export.WithTransforms(e.config.transforms))
	}
	if e.config.derivers != nil {
		genOpts = append(genOpts, export.WithDerivers(e.config.derivers...))
	}

	return &Dataset{
		Persons:   ps,
		Report:    report,
		Mappings:  mappings,
		Generator: export.NewGenerator(mappings, genOpts...),
	}, nil
}

// fetch retrieves one source grid and converts it to records.
func (e *Exporter) fetch(ctx context.Context, src sources.Source) ([]table.Record, error) {
	if e.config.fetchTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.config.fetchTimeout)
		defer cancel()
	}

	logger := logging.FromContext(logging.WithSource(logging.WithLogger(ctx, e.config.logger), src.ID().String()))
	logger.Debug().Msg("Fetching source")

	grid, err := src.Fetch(ctx)
	if err != nil {
		if !errors.IsFetchFailed(err) {
			err = errors.WrapFetch(src.ID().String(), err)
		}
		return nil, err
	}

	records := table.ToRecords(grid)
	logger.Debug().Int("records", len(records)).Msg("Source fetched")
	e.hooks.sourceFetched(src.ID(), len(records))
	return records, nil
}

// Mappings loads only the mapping table, without fetching person sources.
func (e *Exporter) Mappings(ctx context.Context) (mapping.Table, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	return e.loadMappings(ctx)
}

// loadMappings reads the mapping table from the configured origin.
func (e *Exporter) loadMappings(ctx context.Context) (mapping.Table, error) {
	switch {
	case e.config.mappings != nil:
		return e.config.mappings, nil
	case e.config.mappingsFile != "":
		t, err := mapping.Load(e.config.mappingsFile)
		if err != nil {
			return nil, errors.WrapResource("load", "mappings", e.config.mappingsFile, err)
		}
		return t, nil
	default:
		records, err := e.fetch(ctx, e.config.mappingSource)
		if err != nil {
			return nil, err
		}
		t, err := mapping.FromRecords(records)
		if err != nil {
			return nil, errors.WrapResource("load", "mappings", e.config.mappingSource.ID().String(), err)
		}
		return t, nil
	}
}

// observer fans lookup misses out to the logger and any registered observers.
func (e *Exporter) observer() persons.Observer {
	observers := append([]persons.Observer{persons.LogObserver(e.config.logger)}, e.config.observers...)
	return func(m persons.Miss) {
		for _, obs := range observers {
			obs(m)
		}
	}
}

func logMergeReport(logger *zerolog.Logger, report *persons.MergeReport) {
	logger.Info().Int("persons", report.Persons).Msg("Persons merged")
	for id, n := range report.Skipped {
		logger.Warn().Str("source", id.String()).Int("records", n).Msg("Skipped records without an identifier")
	}
	for id, dups := range report.Duplicates {
		logger.Warn().Str("source", id.String()).Strs("ids", dups).Msg("Duplicate identifiers, first record kept")
	}
}
