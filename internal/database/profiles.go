// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/playpick/playpick/internal/models"
)

// GetProfile returns the user's linked Steam profile, or (nil, nil) when
// the user has not linked one.
func (db *DB) GetProfile(ctx context.Context, userID int64) (*models.SteamProfile, error) {
	var p models.SteamProfile
	err := db.conn.QueryRowContext(ctx,
		`SELECT user_id, steamid, COALESCE(persona, ''), COALESCE(avatar, ''), last_sync_ts
		 FROM steam_profiles WHERE user_id = ?`, userID).
		Scan(&p.UserID, &p.SteamID, &p.Persona, &p.Avatar, &p.LastSyncTS)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query steam profile for user %d: %w", userID, err)
	}
	return &p, nil
}

// UpsertProfile creates or replaces the user's Steam binding.
func (db *DB) UpsertProfile(ctx context.Context, profile *models.SteamProfile) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO steam_profiles (user_id, steamid, persona, avatar, last_sync_ts)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
			steamid = EXCLUDED.steamid,
			persona = EXCLUDED.persona,
			avatar = EXCLUDED.avatar,
			last_sync_ts = EXCLUDED.last_sync_ts`,
		profile.UserID, profile.SteamID, profile.Persona, profile.Avatar, profile.LastSyncTS)
	if err != nil {
		return fmt.Errorf("failed to upsert steam profile for user %d: %w", profile.UserID, err)
	}
	return nil
}

// TouchProfileSync records a completed library sync.
func (db *DB) TouchProfileSync(ctx context.Context, userID, syncTS int64) error {
	_, err := db.conn.ExecContext(ctx,
		`UPDATE steam_profiles SET last_sync_ts = ? WHERE user_id = ?`, syncTS, userID)
	if err != nil {
		return fmt.Errorf("failed to update sync timestamp for user %d: %w", userID, err)
	}
	return nil
}
