// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package database

import (
	"context"
	"fmt"

	"github.com/playpick/playpick/internal/models"
)

// AppendContext records one recommendation request context.
func (db *DB) AppendContext(ctx context.Context, entry models.ContextLogEntry) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO context_log (user_id, time_available_min, energy_level, platform, social_mode, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		entry.UserID, entry.TimeAvailableMin, entry.EnergyLevel, entry.Platform, entry.SocialMode, entry.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to append context log entry: %w", err)
	}
	return nil
}

// ListContextLog returns the most recent context log rows for a user,
// newest first.
func (db *DB) ListContextLog(ctx context.Context, userID int64, limit int) ([]models.ContextLogEntry, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT user_id, time_available_min, energy_level, platform, social_mode, created_at
		 FROM context_log WHERE user_id = ? ORDER BY created_at DESC LIMIT ?`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query context log for user %d: %w", userID, err)
	}
	defer closeQuietly(rows)

	var entries []models.ContextLogEntry
	for rows.Next() {
		var e models.ContextLogEntry
		if err := rows.Scan(&e.UserID, &e.TimeAvailableMin, &e.EnergyLevel, &e.Platform, &e.SocialMode, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan context log entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate context log entries: %w", err)
	}

	return entries, nil
}
