// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists where config files are searched, in order. The
// first file found wins.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/playpick/config.yaml",
	"/etc/playpick/config.yml",
}

// ConfigPathEnvVar overrides the config file path.
const ConfigPathEnvVar = "PLAYPICK_CONFIG_PATH"

// envPrefix namespaces all configuration environment variables.
const envPrefix = "PLAYPICK_"

// defaultConfig returns the built-in defaults, applied first and overridden
// by the config file and environment variables.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:    "0.0.0.0",
			Port:    8080,
			Timeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Path:      "/data/playpick.duckdb",
			MaxMemory: "1GB",
			Threads:   0, // 0 = runtime.NumCPU()
		},
		Steam: SteamConfig{
			APIKey:             "",
			APIBaseURL:         "https://api.steampowered.com",
			SteamSpyBaseURL:    "https://steamspy.com/api.php",
			RequestTimeout:     15 * time.Second,
			SteamSpyRatePerSec: 1.0,
		},
		Search: SearchConfig{
			SnapshotPath: "/data/search-index.bin",
			DefaultTopK:  10,
			MaxTopK:      50,
		},
		Enrichment: EnrichmentConfig{
			Enabled:         true,
			QueueBufferSize: 1024,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Load assembles the configuration from three layers, later layers winning:
//  1. built-in defaults
//  2. optional YAML config file
//  3. PLAYPICK_* environment variables
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// PLAYPICK_SERVER_PORT -> server.port, PLAYPICK_STEAM_API_KEY ->
	// steam.api_key, and so on via the explicit mapping table.
	if err := k.Load(env.Provider(envPrefix, ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile returns the first existing config file path, or "".
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

// envTransformFunc maps a PLAYPICK_* environment variable name to its koanf
// config path. Unmapped variables are skipped so unrelated environment
// variables cannot pollute the config.
func envTransformFunc(key string) string {
	key = strings.ToLower(strings.TrimPrefix(key, envPrefix))

	envMappings := map[string]string{
		"http_host":    "server.host",
		"http_port":    "server.port",
		"http_timeout": "server.timeout",

		"duckdb_path":       "database.path",
		"duckdb_max_memory": "database.max_memory",
		"duckdb_threads":    "database.threads",

		"steam_api_key":         "steam.api_key",
		"steam_api_base_url":    "steam.api_base_url",
		"steamspy_base_url":     "steam.steamspy_base_url",
		"steam_request_timeout": "steam.request_timeout",
		"steamspy_rate_per_sec": "steam.steamspy_rate_per_sec",

		"search_snapshot_path": "search.snapshot_path",
		"search_default_top_k": "search.default_top_k",
		"search_max_top_k":     "search.max_top_k",

		"enrichment_enabled":      "enrichment.enabled",
		"enrichment_queue_buffer": "enrichment.queue_buffer_size",

		"log_level":  "logging.level",
		"log_format": "logging.format",
		"log_caller": "logging.caller",
	}

	if mapped, ok := envMappings[key]; ok {
		return mapped
	}
	return ""
}
