// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package config

import (
	"fmt"
	"time"
)

// Config is the complete server configuration, assembled from defaults,
// an optional YAML file and environment variables.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Database   DatabaseConfig   `koanf:"database"`
	Steam      SteamConfig      `koanf:"steam"`
	Search     SearchConfig     `koanf:"search"`
	Enrichment EnrichmentConfig `koanf:"enrichment"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Host    string        `koanf:"host"`
	Port    int           `koanf:"port"`
	Timeout time.Duration `koanf:"timeout"`
}

// DatabaseConfig holds DuckDB settings.
type DatabaseConfig struct {
	// Path is the database file path. ":memory:" opens an in-memory
	// database, which is what the tests use.
	Path      string `koanf:"path"`
	MaxMemory string `koanf:"max_memory"`
	Threads   int    `koanf:"threads"` // 0 = runtime.NumCPU()
}

// SteamConfig holds Steam Web API and SteamSpy settings.
type SteamConfig struct {
	// APIKey authenticates Steam Web API calls. Empty disables library
	// sync and the friends-online boost; recommendations still work from
	// previously synced data.
	APIKey string `koanf:"api_key"`

	APIBaseURL      string        `koanf:"api_base_url"`
	SteamSpyBaseURL string        `koanf:"steamspy_base_url"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`

	// SteamSpyRatePerSec throttles SteamSpy calls. SteamSpy asks for at
	// most one request per second.
	SteamSpyRatePerSec float64 `koanf:"steamspy_rate_per_sec"`
}

// SearchConfig holds search index settings.
type SearchConfig struct {
	// SnapshotPath is where the index snapshot is persisted across
	// restarts. Empty disables persistence.
	SnapshotPath string `koanf:"snapshot_path"`

	DefaultTopK int `koanf:"default_top_k"`
	MaxTopK     int `koanf:"max_top_k"`
}

// EnrichmentConfig holds catalog enrichment worker settings.
type EnrichmentConfig struct {
	Enabled bool `koanf:"enabled"`

	// QueueBufferSize bounds the in-process work queue.
	QueueBufferSize int `koanf:"queue_buffer_size"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"` // "json" or "console"
	Caller bool   `koanf:"caller"`
}

// Validate checks the configuration for values that would fail at runtime.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be in [1, 65535], got %d", c.Server.Port)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("server.timeout must be positive, got %s", c.Server.Timeout)
	}
	if c.Database.Path == "" {
		return fmt.Errorf("database.path must not be empty")
	}
	if c.Steam.RequestTimeout <= 0 {
		return fmt.Errorf("steam.request_timeout must be positive, got %s", c.Steam.RequestTimeout)
	}
	if c.Steam.SteamSpyRatePerSec <= 0 {
		return fmt.Errorf("steam.steamspy_rate_per_sec must be positive, got %v", c.Steam.SteamSpyRatePerSec)
	}
	if c.Search.DefaultTopK < 1 || c.Search.DefaultTopK > c.Search.MaxTopK {
		return fmt.Errorf("search.default_top_k must be in [1, %d], got %d", c.Search.MaxTopK, c.Search.DefaultTopK)
	}
	if c.Search.MaxTopK < 1 {
		return fmt.Errorf("search.max_top_k must be positive, got %d", c.Search.MaxTopK)
	}
	if c.Enrichment.QueueBufferSize < 1 {
		return fmt.Errorf("enrichment.queue_buffer_size must be positive, got %d", c.Enrichment.QueueBufferSize)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("logging.format must be json or console, got %q", c.Logging.Format)
	}
	return nil
}
