// Package config resolves neotrack settings from flags, NEO_* environment
// variables and an optional config file.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Setting keys. Environment variables use the NEO_ prefix, e.g. NEO_CADFILE.
const (
	KeyNEOFile     = "neofile"
	KeyCADFile     = "cadfile"
	KeyLogLevel    = "log_level"
	KeyMetricsFile = "metrics_file"
)

// Config holds the resolved settings for one run.
type Config struct {
	NEOFile     string
	CADFile     string
	LogLevel    slog.Level
	MetricsFile string
}

// New returns a viper instance with defaults and environment binding applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault(KeyNEOFile, "data/neos.csv")
	v.SetDefault(KeyCADFile, "data/cad.json")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyMetricsFile, "")

	v.SetEnvPrefix("NEO")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// ReadFile merges the config file at path into v. An empty path is a no-op.
func ReadFile(v *viper.Viper, path string) error {
	if path == "" {
		return nil
	}
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("reading config file: %w", err)
	}
	return nil
}

// Load resolves settings from v. An unknown log level falls back to info
// with a warning.
func Load(v *viper.Viper, logger *slog.Logger) Config {
	cfg := Config{
		NEOFile:     v.GetString(KeyNEOFile),
		CADFile:     v.GetString(KeyCADFile),
		LogLevel:    slog.LevelInfo,
		MetricsFile: v.GetString(KeyMetricsFile),
	}

	if s := v.GetString(KeyLogLevel); s != "" {
		var lvl slog.Level
		if err := lvl.UnmarshalText([]byte(s)); err != nil {
			logger.Warn("invalid log level, using default", "value", s, "default", "info")
		} else {
			cfg.LogLevel = lvl
		}
	}

	return cfg
}
