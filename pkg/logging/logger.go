// Package logging provides structured logging for staffdir using zerolog.
// Console output is used when the log destination is a terminal, JSON
// otherwise.
//
// The merge and export engines never log through this package directly;
// they take a logger or an observer by injection. The CLI configures the
// default logger once with Configure and passes it down.
//
// Example usage:
//
//	logging.Configure(&logging.Config{Level: "debug", Format: "console"})
//	logging.Default().Info().Str("source", "Staff").Int("rows", 212).Msg("Fetched source")
//
//	ctx := logging.WithPerson(context.Background(), "jdoe")
//	logging.FromContext(ctx).Debug().Msg("Resolving columns")
package logging

import (
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger starts out configured from the environment.
var defaultLogger = NewLoggerFromConfig(DefaultConfig())

// Default returns the default global logger. The pointer stays valid
// across SetDefault and Configure calls.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the default global logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
