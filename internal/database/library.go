// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/playpick/playpick/internal/models"
)

// ListBySteamID returns every library row for the Steam identity, ordered
// by app id.
func (db *DB) ListBySteamID(ctx context.Context, steamID string) ([]models.LibraryStat, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT steamid, appid, playtime_forever, playtime_2weeks, COALESCE(last_played, 0)
		 FROM library_stats WHERE steamid = ? ORDER BY appid`, steamID)
	if err != nil {
		return nil, fmt.Errorf("failed to query library for %s: %w", steamID, err)
	}
	defer closeQuietly(rows)

	var stats []models.LibraryStat
	for rows.Next() {
		var s models.LibraryStat
		if err := rows.Scan(&s.SteamID, &s.AppID, &s.PlaytimeForever, &s.Playtime2Weeks, &s.LastPlayedUnix); err != nil {
			return nil, fmt.Errorf("failed to scan library row: %w", err)
		}
		stats = append(stats, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate library rows: %w", err)
	}

	return stats, nil
}

// UpsertLibraryStats replaces the playtime rows for one Steam identity in a
// single transaction. Rows for games no longer in the synced library are
// kept; playtime history stays useful even after a game is removed.
func (db *DB) UpsertLibraryStats(ctx context.Context, stats []models.LibraryStat) error {
	if len(stats) == 0 {
		return nil
	}

	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin library upsert: %w", err)
	}
	defer rollbackQuietly(tx)

	query := `INSERT INTO library_stats (steamid, appid, playtime_forever, playtime_2weeks, last_played, updated_at)
		VALUES (?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (steamid, appid) DO UPDATE SET
			playtime_forever = EXCLUDED.playtime_forever,
			playtime_2weeks = EXCLUDED.playtime_2weeks,
			last_played = EXCLUDED.last_played,
			updated_at = now()`

	for i := range stats {
		s := &stats[i]
		if _, err := tx.ExecContext(ctx, query, s.SteamID, s.AppID, s.PlaytimeForever, s.Playtime2Weeks, s.LastPlayedUnix); err != nil {
			return fmt.Errorf("failed to upsert library row (%s, %d): %w", s.SteamID, s.AppID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit library upsert: %w", err)
	}
	return nil
}

// rollbackQuietly rolls back a transaction, ignoring the error a rollback
// after commit always returns.
func rollbackQuietly(tx *sql.Tx) {
	_ = tx.Rollback()
}
