// Package constants provides shared constants used throughout the staffdir codebase.
// This includes timeouts, file permissions and the well-known names of the
// sheets and fields the export is built from.
package constants

import "time"

// Timeout constants define various timeout durations used in the application
const (
	// DefaultHTTPTimeout is the standard timeout for HTTP requests to the Sheets API
	DefaultHTTPTimeout = 30 * time.Second

	// FetchTimeout bounds the retrieval of a single source table
	FetchTimeout = 2 * time.Minute

	// CommandTimeout is the default timeout for CLI commands
	CommandTimeout = 10 * time.Minute
)

// File permission constants define standard Unix file permissions
const (
	// DirPermissions is the default permission for created directories (rwxr-xr-x)
	DirPermissions = 0755

	// FilePermissions is the default permission for created files (rw-r--r--)
	FilePermissions = 0644
)

// Google Sheets defaults
const (
	// SheetsBaseURL is the base URL of the Google Sheets REST API
	SheetsBaseURL = "https://sheets.googleapis.com"

	// SheetsAPIKeyEnv is the environment variable holding the Sheets API key
	SheetsAPIKeyEnv = "GOOGLE_API_KEY"

	// SheetsTokenEnv is the environment variable holding an OAuth access token
	SheetsTokenEnv = "GOOGLE_ACCESS_TOKEN"
)

// Mapping table column headers
const (
	DestinationFieldHeader = "Destination Field"
	SourceHeader           = "Source"
	SourceFieldHeader      = "Source Field"
	DisplayTypeHeader      = "Display Type"
)

// Default values
const (
	// DefaultPersonKey is the column holding the person identifier in every source sheet
	DefaultPersonKey = "uid"

	// DefaultMappingsSheet is the sheet holding the field mapping table
	DefaultMappingsSheet = "Field Mappings"

	// DefaultConfigName is the base name of the config file searched in $HOME and .
	DefaultConfigName = ".staffdir"
)
