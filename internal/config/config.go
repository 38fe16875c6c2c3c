// Package config loads splitbook settings from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/mmynk/splitbook/internal/display"
)

// Config holds the server settings.
type Config struct {
	// Addr is the Connect RPC listen address.
	Addr string `env:"ADDR" envDefault:":8080"`

	// MetricsAddr is the Prometheus listen address. Empty disables it.
	MetricsAddr string `env:"METRICS_ADDR" envDefault:":9090"`

	// JournalPath is the SQLite journal file. Empty keeps the ledger in memory only.
	JournalPath string `env:"JOURNAL_PATH"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// DisplayLang is the BCP 47 tag used to format amounts.
	DisplayLang string `env:"DISPLAY_LANG" envDefault:"en"`

	// ShutdownTimeout bounds graceful shutdown of the listeners.
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads a local .env file when present, then parses the environment.
func Load() (*Config, error) {
	// Missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks that the configuration values are usable.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return errors.New("ADDR is required")
	}
	if c.Addr == c.MetricsAddr {
		return fmt.Errorf("ADDR and METRICS_ADDR must differ, both are %q", c.Addr)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := display.ParseLanguage(c.DisplayLang); err != nil {
		return err
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %s", c.ShutdownTimeout)
	}
	return nil
}

// ParseLevel converts a LOG_LEVEL value into a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}
