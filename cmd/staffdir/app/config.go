package app

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/umd-lib/staffdir/pkg/constants"
	"github.com/umd-lib/staffdir/pkg/errors"
	"github.com/umd-lib/staffdir/pkg/sources"
)

// SourceConfig selects where one person source is read from. A source
// with a file is read from disk; otherwise the named sheet of the
// configured spreadsheet is fetched.
type SourceConfig struct {
	ID    string `mapstructure:"id"`
	Sheet string `mapstructure:"sheet"`
	File  string `mapstructure:"file"`
	Key   string `mapstructure:"key"`
}

// Config holds the application configuration loaded from various sources
// including config files, environment variables, and .env files.
type Config struct {
	// Global flags
	Verbose bool
	Quiet   bool
	NoColor bool

	// Config file
	ConfigFile string

	// Export defaults
	Output string
	Format string

	// Google Sheets
	SpreadsheetID     string
	GoogleAPIKey      string
	GoogleAccessToken string
	SheetsBaseURL     string
	FetchTimeout      time.Duration

	// Sources and mappings
	Sources       []SourceConfig
	MappingsSheet string
	MappingsFile  string
	DisplayTypes  map[string]string

	// Logging configuration
	LogLevel  string
	LogFormat string
	LogOutput string
}

// DefaultSources are used when the configuration names none: the Staff
// and LDAP sheets of the spreadsheet, keyed by uid.
func DefaultSources() []SourceConfig {
	return []SourceConfig{
		{ID: string(sources.StaffID), Sheet: string(sources.StaffID), Key: constants.DefaultPersonKey},
		{ID: string(sources.LDAPID), Sheet: string(sources.LDAPID), Key: constants.DefaultPersonKey},
	}
}

// LoadConfig loads configuration from all sources in order of precedence:
// 1. Command-line flags (applied later by UpdateFromFlags)
// 2. Environment variables
// 3. .env files
// 4. Config file (configFile, or .staffdir.yaml in $HOME or the working directory)
// 5. Defaults
func LoadConfig(configFile string) (*Config, error) {
	// Load .env files first (before Viper env binding)
	loadEnvFiles()

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	setDefaults(v)

	if err := v.BindEnv("google_api_key", constants.SheetsAPIKeyEnv); err != nil {
		return nil, errors.NewConfigError("env", "binding "+constants.SheetsAPIKeyEnv, err)
	}
	if err := v.BindEnv("google_access_token", constants.SheetsTokenEnv); err != nil {
		return nil, errors.NewConfigError("env", "binding "+constants.SheetsTokenEnv, err)
	}

	if configFile != "" {
		v.SetConfigFile(configFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewConfigError("config file", configFile, err)
		}
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.AddConfigPath(".")
		v.SetConfigType("yaml")
		v.SetConfigName(constants.DefaultConfigName)
		// A missing default config file is fine, a broken one is not
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, errors.NewConfigError("config file", constants.DefaultConfigName, err)
			}
		}
	}

	config := &Config{
		Verbose: v.GetBool("verbose"),
		Quiet:   v.GetBool("quiet"),
		NoColor: v.GetBool("no_color"),

		ConfigFile: v.ConfigFileUsed(),

		Output: v.GetString("output"),
		Format: v.GetString("format"),

		SpreadsheetID:     v.GetString("spreadsheet_id"),
		GoogleAPIKey:      v.GetString("google_api_key"),
		GoogleAccessToken: v.GetString("google_access_token"),
		SheetsBaseURL:     v.GetString("sheets_base_url"),
		FetchTimeout:      v.GetDuration("fetch_timeout"),

		MappingsSheet: v.GetString("mappings_sheet"),
		MappingsFile:  v.GetString("mappings_file"),
		DisplayTypes:  v.GetStringMapString("display_types"),

		LogLevel:  v.GetString("log_level"),
		LogFormat: v.GetString("log_format"),
		LogOutput: v.GetString("log_output"),
	}

	if err := v.UnmarshalKey("sources", &config.Sources); err != nil {
		return nil, errors.NewConfigError("sources", "invalid sources list", err)
	}
	if len(config.Sources) == 0 {
		config.Sources = DefaultSources()
	}
	for i := range config.Sources {
		if err := config.Sources[i].normalize(); err != nil {
			return nil, err
		}
	}

	return config, nil
}

// setDefaults registers default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("sheets_base_url", constants.SheetsBaseURL)
	v.SetDefault("mappings_sheet", constants.DefaultMappingsSheet)
	v.SetDefault("fetch_timeout", constants.FetchTimeout)
	v.SetDefault("log_format", "auto")
	v.SetDefault("log_output", "stderr")
}

// normalize fills the sheet and key defaults and rejects an entry without an ID.
func (s *SourceConfig) normalize() error {
	s.ID = strings.TrimSpace(s.ID)
	if s.ID == "" {
		return errors.NewValidationError("sources.id", s, "source id is required")
	}
	if s.Sheet == "" {
		s.Sheet = s.ID
	}
	if s.Key == "" {
		s.Key = constants.DefaultPersonKey
	}
	return nil
}

// UpdateFromFlags updates config values from parsed command flags.
// This should be called after cobra parses flags to ensure flag
// values take precedence over config file and env vars.
func (c *Config) UpdateFromFlags(verbose, quiet, noColor bool, logLevel string) {
	c.Verbose = c.Verbose || verbose
	c.Quiet = c.Quiet || quiet
	c.NoColor = c.NoColor || noColor
	if logLevel != "" {
		c.LogLevel = logLevel
	}
}

// loadEnvFiles loads environment variables from .env files.
// .env.local overrides .env
func loadEnvFiles() {
	for _, envFile := range []string{".env.local", ".env"} {
		// godotenv.Load never overrides variables that are already set,
		// so the first file to define a key wins.
		_ = godotenv.Load(envFile)
	}
}
