package appcontext

import (
	"github.com/rs/zerolog"

	"github.com/umd-lib/staffdir"
	"github.com/umd-lib/staffdir/pkg/logging"
)

// Mock provides a mock implementation of Interface for testing.
// If a function field is nil, the method returns a default value.
type Mock struct {
	ExporterFunc     func() (*staffdir.Exporter, error)
	LoggerFunc       func() *zerolog.Logger
	OutputFormatFunc func() string
	OutputPathFunc   func() string
	VersionFunc      func() string
	CommitFunc       func() string
	DateFunc         func() string
	BuiltByFunc      func() string
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)

// Exporter returns an exporter using the mock function or nil.
func (m *Mock) Exporter() (*staffdir.Exporter, error) {
	if m.ExporterFunc != nil {
		return m.ExporterFunc()
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	return logging.NewNopLogger()
}

// OutputFormat returns the output format using the mock function or "".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return ""
}

// OutputPath returns the output path using the mock function or "".
func (m *Mock) OutputPath() string {
	if m.OutputPathFunc != nil {
		return m.OutputPathFunc()
	}
	return ""
}

// Version returns the version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns the commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns the date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns the builder using the mock function or "unknown".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "unknown"
}
