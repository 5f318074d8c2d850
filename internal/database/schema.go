// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package database

import (
	"context"
	"fmt"
	"time"
)

// schemaContext returns a context with timeout for schema operations.
func schemaContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 60*time.Second)
}

// createTables creates all tables and indexes. Every statement is
// idempotent, so startup on an existing database is a no-op.
func (db *DB) createTables() error {
	ctx, cancel := schemaContext()
	defer cancel()

	queries := []string{
		// Game catalog, populated by the enrichment worker. document is
		// the pre-built search text (name + genres + tags).
		`CREATE TABLE IF NOT EXISTS catalog (
			appid BIGINT PRIMARY KEY,
			name TEXT NOT NULL,
			release_date TEXT,
			price DOUBLE,
			developers TEXT,
			publishers TEXT,
			genres TEXT,
			tags TEXT,
			header_image TEXT,
			website TEXT,
			windows BOOLEAN NOT NULL DEFAULT true,
			mac BOOLEAN NOT NULL DEFAULT false,
			linux BOOLEAN NOT NULL DEFAULT false,
			metacritic_score INTEGER,
			positive INTEGER,
			negative INTEGER,
			avg_session_minutes INTEGER NOT NULL DEFAULT 60,
			multiplayer_mode TEXT NOT NULL DEFAULT 'solo',
			difficulty TEXT NOT NULL DEFAULT 'medium',
			document TEXT NOT NULL DEFAULT '',
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// Per-(steam user, game) playtime rows from library sync.
		`CREATE TABLE IF NOT EXISTS library_stats (
			steamid TEXT NOT NULL,
			appid BIGINT NOT NULL,
			playtime_forever INTEGER NOT NULL DEFAULT 0,
			playtime_2weeks INTEGER NOT NULL DEFAULT 0,
			last_played BIGINT,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (steamid, appid)
		)`,

		// Account to Steam identity binding.
		`CREATE TABLE IF NOT EXISTS steam_profiles (
			user_id BIGINT PRIMARY KEY,
			steamid TEXT NOT NULL,
			persona TEXT,
			avatar TEXT,
			last_sync_ts BIGINT NOT NULL DEFAULT 0
		)`,

		// Learned preference state. genre_weights is a JSON object of
		// normalized genre -> weight.
		`CREATE TABLE IF NOT EXISTS user_preferences (
			user_id BIGINT PRIMARY KEY,
			genre_weights TEXT NOT NULL DEFAULT '{}',
			comfort_bias DOUBLE NOT NULL DEFAULT 0,
			updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,

		// Append-only feedback log.
		`CREATE TABLE IF NOT EXISTS feedback_events (
			user_id BIGINT NOT NULL,
			appid BIGINT NOT NULL,
			action TEXT NOT NULL,
			ts BIGINT NOT NULL,
			context_snapshot TEXT
		)`,

		// Append-only recommendation context log for offline analysis.
		`CREATE TABLE IF NOT EXISTS context_log (
			user_id BIGINT NOT NULL,
			time_available_min INTEGER NOT NULL,
			energy_level TEXT NOT NULL,
			platform TEXT NOT NULL,
			social_mode TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,

		`CREATE INDEX IF NOT EXISTS idx_library_steamid ON library_stats(steamid)`,
		`CREATE INDEX IF NOT EXISTS idx_feedback_user ON feedback_events(user_id, ts)`,
		`CREATE INDEX IF NOT EXISTS idx_context_log_user ON context_log(user_id, created_at)`,
	}

	for _, query := range queries {
		if _, err := db.conn.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("failed to execute query: %s: %w", query, err)
		}
	}

	return nil
}
