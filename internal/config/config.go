package config

import (
	"os"
	"strings"

	"watchlist/internal"
	"watchlist/internal/errors"
	"watchlist/internal/migration"
)

// Config represents the complete application configuration
type Config struct {
	Log      LogConfig
	Sheets   SheetConfig
	Database DatabaseConfig
}

// LogConfig holds logging settings. LevelName is the raw LOG_LEVEL or flag
// value; Validate resolves it into Level.
type LogConfig struct {
	LevelName string
	Level     internal.LogLevel
}

// SheetConfig holds spreadsheet settings
type SheetConfig struct {
	InputSheet  string // empty selects the first sheet
	OutputSheet string
}

// DatabaseConfig holds the optional database sink settings
type DatabaseConfig struct {
	URL   string // empty disables the database sink
	Table string
}

// Enabled reports whether records should also go to the database
func (d DatabaseConfig) Enabled() bool {
	return d.URL != ""
}

// Load reads configuration from environment variables. Values are not
// validated here; callers apply flag overrides first and then call Validate.
func Load() *Config {
	return &Config{
		Log: LogConfig{LevelName: getEnvOrDefault("LOG_LEVEL", "")},
		Sheets: SheetConfig{
			InputSheet:  getEnvOrDefault("INPUT_SHEET", ""),
			OutputSheet: getEnvOrDefault("OUTPUT_SHEET", "Data"),
		},
		Database: DatabaseConfig{
			URL:   getEnvOrDefault("DATABASE_URL", ""),
			Table: getEnvOrDefault("DB_TABLE", migration.DefaultTable),
		},
	}
}

// Validate checks the final values, after any flag overrides, and resolves
// the log level
func (c *Config) Validate() error {
	c.Log.Level = internal.LogLevelInfo
	if strings.TrimSpace(c.Log.LevelName) != "" {
		level, err := internal.ParseLogLevel(c.Log.LevelName)
		if err != nil {
			return errors.ConfigInvalid(err.Error())
		}
		c.Log.Level = level
	}
	if strings.TrimSpace(c.Sheets.OutputSheet) == "" {
		return errors.ConfigInvalid("output sheet name is required")
	}
	// Excel limits sheet names to 31 characters
	if len([]rune(c.Sheets.OutputSheet)) > 31 {
		return errors.ConfigInvalid("output sheet name must be at most 31 characters")
	}
	if c.Database.Enabled() && strings.TrimSpace(c.Database.Table) == "" {
		return errors.ConfigInvalid("DB_TABLE is required when DATABASE_URL is set")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
