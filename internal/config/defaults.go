package config

import (
	"os"
	"strconv"
	"strings"
)

// Default values applied when nebulis.yaml omits a field.
const (
	DefaultSchemaExtension = "surql"
	DefaultLogLevel        = "info"
)

// Environment variables that override file values.
const (
	EnvLogLevel = "NEBULIS_LOG_LEVEL"
	EnvNoColor  = "NEBULIS_NO_COLOR"
)

// ValidLogLevels lists the accepted log.level values.
var ValidLogLevels = []string{"debug", "info", "warn", "error"}

// NewDefaultConfig returns a Config with every default applied.
func NewDefaultConfig() *Config {
	return &Config{
		Schema: SchemaConfig{Extension: DefaultSchemaExtension},
		Log:    LogConfig{Level: DefaultLogLevel},
	}
}

// applyDefaults fills fields a partial file left empty.
func applyDefaults(cfg *Config) {
	if cfg.Schema.Extension == "" {
		cfg.Schema.Extension = DefaultSchemaExtension
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
}

// applyEnvOverrides applies NEBULIS_* variables over file values.
// An unparsable NEBULIS_NO_COLOR is treated as set.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = strings.ToLower(strings.TrimSpace(v))
	}
	if v, ok := os.LookupEnv(EnvNoColor); ok {
		b, err := strconv.ParseBool(v)
		cfg.UI.NoColor = err != nil || b
	}
}
