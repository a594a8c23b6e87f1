package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/umd-lib/staffdir/pkg/constants"
)

// Config holds logger configuration options
type Config struct {
	// Level is the minimum level: trace, debug, info, warn, error or off
	Level string

	// Format is json, console or auto (console on a terminal)
	Format string

	// Output is stderr, stdout, discard or a file path
	Output string

	// TimeFormat applies to console output: kitchen, rfc3339 or stamp
	TimeFormat string

	// NoColor disables color in console output
	NoColor bool

	// AddCaller includes file:line in every entry
	AddCaller bool
}

// DefaultConfig returns the configuration taken from LOG_LEVEL,
// LOG_FORMAT, LOG_OUTPUT and NO_COLOR, with info to stderr otherwise.
func DefaultConfig() *Config {
	return &Config{
		Level:      envOr("LOG_LEVEL", "info"),
		Format:     envOr("LOG_FORMAT", "auto"),
		Output:     envOr("LOG_OUTPUT", "stderr"),
		TimeFormat: "kitchen",
		NoColor:    os.Getenv("NO_COLOR") != "",
	}
}

// NewLoggerFromConfig creates a logger and sets the zerolog global level
// to match. A nil cfg means DefaultConfig.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	ctx := zerolog.New(newWriter(cfg)).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		ctx = ctx.Caller()
	}
	return ctx.Logger()
}

// Configure replaces the default logger with one built from cfg and
// returns it.
func Configure(cfg *Config) *zerolog.Logger {
	SetDefault(NewLoggerFromConfig(cfg))
	return Default()
}

// newWriter opens the configured destination and wraps it for console
// output when requested or when auto-detecting a terminal.
func newWriter(cfg *Config) io.Writer {
	var out io.Writer
	switch strings.ToLower(cfg.Output) {
	case "", "stderr":
		out = os.Stderr
	case "stdout":
		out = os.Stdout
	case "discard", "none":
		out = io.Discard
	default:
		f, err := os.OpenFile(cfg.Output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
		if err != nil {
			out = os.Stderr
		} else {
			out = f
		}
	}

	console := false
	switch strings.ToLower(cfg.Format) {
	case "console", "pretty":
		console = true
	case "", "auto":
		f, ok := out.(*os.File)
		console = ok && isTerminal(f)
	}
	if !console {
		return out
	}

	return zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: timeFormat(cfg.TimeFormat),
		NoColor:    cfg.NoColor,
	}
}

// parseLevel maps a level name to a zerolog level, defaulting to info.
func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "warning":
		return zerolog.WarnLevel
	case "off", "none", "disabled":
		return zerolog.Disabled
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

func timeFormat(name string) string {
	switch strings.ToLower(name) {
	case "rfc3339":
		return time.RFC3339
	case "stamp":
		return time.Stamp
	default:
		return time.Kitchen
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
