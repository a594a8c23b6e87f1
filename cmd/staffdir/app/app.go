// Package app provides the application context and dependency management
// for the staffdir CLI. It centralizes configuration, logging and the
// lazily built exporter that commands share.
package app

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/umd-lib/staffdir"
	"github.com/umd-lib/staffdir/internal/appcontext"
	"github.com/umd-lib/staffdir/internal/sources/local"
	"github.com/umd-lib/staffdir/internal/sources/sheets"
	"github.com/umd-lib/staffdir/pkg/errors"
	"github.com/umd-lib/staffdir/pkg/sources"
)

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// App represents the staffdir application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Exporter instance (lazy-initialized)
	mu       sync.Mutex
	exporter *staffdir.Exporter
}

// New creates a new App instance with the given version information.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig("")
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	app.logger = NewLogger(config)

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured default output format.
func (a *App) OutputFormat() string {
	return a.config.Format
}

// OutputPath returns the configured export destination.
func (a *App) OutputPath() string {
	return a.config.Output
}

// Exporter returns the exporter, building it from configuration on first use.
func (a *App) Exporter() (*staffdir.Exporter, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.exporter != nil {
		return a.exporter, nil
	}

	exp, err := staffdir.New(a.exporterOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "exporter", "", err)
	}
	a.exporter = exp
	return exp, nil
}

// exporterOptions constructs exporter options from the app configuration.
func (a *App) exporterOptions() []staffdir.Option {
	c := a.config

	opts := []staffdir.Option{
		staffdir.WithLogger(a.logger),
		staffdir.WithFetchTimeout(c.FetchTimeout),
	}

	for _, sc := range c.Sources {
		opts = append(opts, staffdir.WithSource(a.source(sources.ID(sc.ID), sc.Sheet, sc.File), sc.Key))
	}

	if c.MappingsFile != "" {
		opts = append(opts, staffdir.WithMappingFile(c.MappingsFile))
	} else {
		opts = append(opts, staffdir.WithMappingSource(a.source(sources.FieldMappingsID, c.MappingsSheet, "")))
	}

	if len(c.DisplayTypes) > 0 {
		opts = append(opts, staffdir.WithDisplayTypes(c.DisplayTypes))
	}

	return opts
}

// source builds a file source when file is set, otherwise a sheet source.
func (a *App) source(id sources.ID, sheet, file string) sources.Source {
	if file != "" {
		return local.New(id, file)
	}

	c := a.config
	opts := []sheets.Option{sheets.WithBaseURL(c.SheetsBaseURL)}
	switch {
	case c.GoogleAccessToken != "":
		opts = append(opts, sheets.WithAccessToken(c.GoogleAccessToken))
	case c.GoogleAPIKey != "":
		opts = append(opts, sheets.WithAPIKey(c.GoogleAPIKey))
	}
	return sheets.New(id, c.SpreadsheetID, sheet, opts...)
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithExporter sets a custom exporter (useful for testing).
func WithExporter(exp *staffdir.Exporter) Option {
	return func(a *App) error {
		a.exporter = exp
		return nil
	}
}
