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
	"time"

	json "github.com/goccy/go-json"

	"github.com/playpick/playpick/internal/models"
)

// GetPreference returns the user's preference state, or (nil, nil) when no
// row exists yet.
func (db *DB) GetPreference(ctx context.Context, userID int64) (*models.UserPreference, error) {
	pref, err := getPreferenceTx(ctx, db.conn, userID)
	if err != nil {
		return nil, err
	}
	return pref, nil
}

// querier abstracts *sql.DB and *sql.Tx for the preference read.
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func getPreferenceTx(ctx context.Context, q querier, userID int64) (*models.UserPreference, error) {
	var (
		p          models.UserPreference
		weightsRaw string
	)
	err := q.QueryRowContext(ctx,
		`SELECT user_id, genre_weights, comfort_bias, updated_at
		 FROM user_preferences WHERE user_id = ?`, userID).
		Scan(&p.UserID, &weightsRaw, &p.ComfortBias, &p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query preferences for user %d: %w", userID, err)
	}

	if err := json.Unmarshal([]byte(weightsRaw), &p.GenreWeights); err != nil {
		return nil, fmt.Errorf("failed to decode genre weights for user %d: %w", userID, err)
	}
	return &p, nil
}

// ApplyFeedback appends one feedback event and updates the user's
// preference row in a single transaction. update receives the current
// preference state (a zero-valued one with the user id set when none
// exists) and returns the state to persist. A failure anywhere rolls the
// whole call back.
func (db *DB) ApplyFeedback(ctx context.Context, event models.FeedbackEvent, update func(pref models.UserPreference) models.UserPreference) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin feedback transaction: %w", err)
	}
	defer rollbackQuietly(tx)

	_, err = tx.ExecContext(ctx,
		`INSERT INTO feedback_events (user_id, appid, action, ts, context_snapshot)
		 VALUES (?, ?, ?, ?, ?)`,
		event.UserID, event.AppID, string(event.Action), event.Timestamp, event.ContextSnapshot)
	if err != nil {
		return fmt.Errorf("failed to append feedback event: %w", err)
	}

	current, err := getPreferenceTx(ctx, tx, event.UserID)
	if err != nil {
		return err
	}
	if current == nil {
		current = &models.UserPreference{UserID: event.UserID}
	}

	updated := update(*current)
	if updated.UpdatedAt.IsZero() {
		updated.UpdatedAt = time.Now().UTC()
	}
	if updated.GenreWeights == nil {
		updated.GenreWeights = map[string]float64{}
	}

	weightsRaw, err := json.Marshal(updated.GenreWeights)
	if err != nil {
		return fmt.Errorf("failed to encode genre weights for user %d: %w", event.UserID, err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO user_preferences (user_id, genre_weights, comfort_bias, updated_at)
		 VALUES (?, ?, ?, ?)
		 ON CONFLICT (user_id) DO UPDATE SET
			genre_weights = EXCLUDED.genre_weights,
			comfort_bias = EXCLUDED.comfort_bias,
			updated_at = EXCLUDED.updated_at`,
		updated.UserID, string(weightsRaw), updated.ComfortBias, updated.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to persist preferences for user %d: %w", event.UserID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit feedback transaction: %w", err)
	}
	return nil
}

// CountFeedbackEvents returns the number of feedback rows for a user.
func (db *DB) CountFeedbackEvents(ctx context.Context, userID int64) (int, error) {
	var n int
	err := db.conn.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM feedback_events WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count feedback events for user %d: %w", userID, err)
	}
	return n, nil
}
