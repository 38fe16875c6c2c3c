package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ADDR", "METRICS_ADDR", "JOURNAL_PATH", "LOG_LEVEL", "DISPLAY_LANG", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}
	// t.Setenv restores values; empty strings fall back to envDefault.
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, ":9090", cfg.MetricsAddr)
	assert.Equal(t, "", cfg.JournalPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "en", cfg.DisplayLang)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("ADDR", ":7000")
	t.Setenv("METRICS_ADDR", "")
	t.Setenv("JOURNAL_PATH", "/tmp/journal.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("DISPLAY_LANG", "de")
	t.Setenv("SHUTDOWN_TIMEOUT", "2s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Addr)
	assert.Equal(t, "/tmp/journal.db", cfg.JournalPath)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
}

func TestLoad_BadDuration(t *testing.T) {
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Addr:            ":8080",
			MetricsAddr:     ":9090",
			LogLevel:        "info",
			DisplayLang:     "en",
			ShutdownTimeout: time.Second,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing addr", func(c *Config) { c.Addr = "" }},
		{"same addr", func(c *Config) { c.MetricsAddr = c.Addr }},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }},
		{"bad language", func(c *Config) { c.DisplayLang = "??" }},
		{"zero timeout", func(c *Config) { c.ShutdownTimeout = 0 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("WARN")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)

	level, err = ParseLevel("")
	require.NoError(t, err)
	assert.Equal(t, slog.LevelInfo, level)
}
