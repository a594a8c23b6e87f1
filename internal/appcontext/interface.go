// Package appcontext provides the shared application context interface
// used by all commands.
package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/umd-lib/staffdir"
)

// Interface defines what commands need from the application. The App
// struct from cmd/staffdir/app implements it; tests use Mock.
type Interface interface {
	// Exporter returns the exporter built from configuration, creating it
	// lazily if needed.
	Exporter() (*staffdir.Exporter, error)

	// Logger returns the configured logger instance.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured default output format.
	OutputFormat() string

	// OutputPath returns the configured export destination; empty means stdout.
	OutputPath() string

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
