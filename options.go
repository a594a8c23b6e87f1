package staffdir

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/umd-lib/staffdir/pkg/constants"
	"github.com/umd-lib/staffdir/pkg/errors"
	"github.com/umd-lib/staffdir/pkg/export"
	"github.com/umd-lib/staffdir/pkg/mapping"
	"github.com/umd-lib/staffdir/pkg/persons"
	"github.com/umd-lib/staffdir/pkg/sources"
)

// Option is a function that configures an Exporter
type Option func(*config) error

// config holds the Exporter configuration
type config struct {
	sources *sources.Sources

	// Exactly one mapping origin is used, checked in this order.
	mappings      mapping.Table
	mappingsFile  string
	mappingSource sources.Source

	transforms   export.Transforms
	derivers     []export.Deriver
	logger       *zerolog.Logger
	observers    []persons.Observer
	fetchTimeout time.Duration
}

func defaultConfig() *config {
	return &config{
		sources:      sources.NewSources(),
		fetchTimeout: constants.FetchTimeout,
	}
}

// WithSource adds a person data source. key names the column holding the
// person identifier; an empty key means constants.DefaultPersonKey.
func WithSource(src sources.Source, key string) Option {
	return func(c *config) error {
		if src == nil {
			return errors.NewValidationError("source", nil, "source is nil")
		}
		if key == "" {
			key = constants.DefaultPersonKey
		}
		c.sources.Add(src, key)
		return nil
	}
}

// WithMappingTable uses an in-memory mapping table
func WithMappingTable(t mapping.Table) Option {
	return func(c *config) error {
		c.mappings = t
		return nil
	}
}

// WithMappingFile loads the mapping table from a .yaml, .toml or .csv file
func WithMappingFile(path string) Option {
	return func(c *config) error {
		c.mappingsFile = path
		return nil
	}
}

// WithMappingSource reads the mapping table from a source grid whose header
// row carries the Destination Field, Source, Source Field and Display Type
// columns.
func WithMappingSource(src sources.Source) Option {
	return func(c *config) error {
		c.mappingSource = src
		return nil
	}
}

// WithTransforms sets the display type transforms
func WithTransforms(t export.Transforms) Option {
	return func(c *config) error {
		c.transforms = t
		return nil
	}
}

// WithDisplayTypes binds display types to builtin transforms by name
func WithDisplayTypes(bindings map[string]string) Option {
	return func(c *config) error {
		t, err := export.BindTransforms(bindings)
		if err != nil {
			return err
		}
		c.transforms = t
		return nil
	}
}

// WithDerivers replaces the default derived columns
func WithDerivers(d ...export.Deriver) Option {
	return func(c *config) error {
		c.derivers = d
		return nil
	}
}

// WithLogger sets the logger used for pipeline progress and lookup misses
func WithLogger(logger *zerolog.Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithMissObserver registers an additional observer for lookup misses
func WithMissObserver(obs persons.Observer) Option {
	return func(c *config) error {
		if obs != nil {
			c.observers = append(c.observers, obs)
		}
		return nil
	}
}

// WithFetchTimeout bounds each source fetch. Zero disables the bound.
func WithFetchTimeout(d time.Duration) Option {
	return func(c *config) error {
		if d < 0 {
			return errors.NewValidationError("fetch_timeout", d, "must not be negative")
		}
		c.fetchTimeout = d
		return nil
	}
}
