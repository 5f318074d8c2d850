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
	"strings"

	"github.com/playpick/playpick/internal/models"
)

// catalogColumns is the column list shared by the catalog read queries,
// matching scanCatalogEntry.
const catalogColumns = `appid, name, COALESCE(release_date, ''), COALESCE(price, 0),
	COALESCE(developers, ''), COALESCE(publishers, ''), COALESCE(genres, ''), COALESCE(tags, ''),
	COALESCE(header_image, ''), COALESCE(website, ''), windows, mac, linux,
	COALESCE(metacritic_score, 0), COALESCE(positive, 0), COALESCE(negative, 0),
	avg_session_minutes, multiplayer_mode, difficulty, document`

func scanCatalogEntry(row interface{ Scan(...any) error }) (models.CatalogEntry, error) {
	var e models.CatalogEntry
	err := row.Scan(
		&e.AppID, &e.Name, &e.ReleaseDate, &e.Price,
		&e.Developers, &e.Publishers, &e.Genres, &e.Tags,
		&e.HeaderImage, &e.Website, &e.Windows, &e.Mac, &e.Linux,
		&e.MetacriticScore, &e.PositiveReviews, &e.NegativeReviews,
		&e.AvgSessionMinutes, &e.MultiplayerMode, &e.Difficulty, &e.Document,
	)
	return e, err
}

// GetCatalogEntry returns one catalog row, or (nil, nil) when absent.
func (db *DB) GetCatalogEntry(ctx context.Context, appID int64) (*models.CatalogEntry, error) {
	query := `SELECT ` + catalogColumns + ` FROM catalog WHERE appid = ?`
	entry, err := scanCatalogEntry(db.conn.QueryRowContext(ctx, query, appID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog entry %d: %w", appID, err)
	}
	return &entry, nil
}

// GetBulk returns catalog entries for the given app ids, keyed by app id.
// Missing ids are absent from the map.
func (db *DB) GetBulk(ctx context.Context, appIDs []int64) (map[int64]models.CatalogEntry, error) {
	result := make(map[int64]models.CatalogEntry, len(appIDs))
	if len(appIDs) == 0 {
		return result, nil
	}

	placeholders := strings.Repeat("?,", len(appIDs))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(appIDs))
	for i, id := range appIDs {
		args[i] = id
	}

	query := `SELECT ` + catalogColumns + ` FROM catalog WHERE appid IN (` + placeholders + `)`
	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query catalog entries: %w", err)
	}
	defer closeQuietly(rows)

	for rows.Next() {
		entry, scanErr := scanCatalogEntry(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("failed to scan catalog entry: %w", scanErr)
		}
		result[entry.AppID] = entry
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate catalog entries: %w", err)
	}

	return result, nil
}

// EnumerateDocuments returns every (app id, document) pair ordered by app
// id. The stable ordering makes index builds reproducible.
func (db *DB) EnumerateDocuments(ctx context.Context) ([]int64, []string, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT appid, document FROM catalog WHERE document <> '' ORDER BY appid`)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to enumerate catalog documents: %w", err)
	}
	defer closeQuietly(rows)

	var (
		appIDs    []int64
		documents []string
	)
	for rows.Next() {
		var (
			appID int64
			doc   string
		)
		if err := rows.Scan(&appID, &doc); err != nil {
			return nil, nil, fmt.Errorf("failed to scan catalog document: %w", err)
		}
		appIDs = append(appIDs, appID)
		documents = append(documents, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("failed to iterate catalog documents: %w", err)
	}

	return appIDs, documents, nil
}

// UpsertCatalogEntry inserts or replaces one catalog row. The enrichment
// worker is the only writer.
func (db *DB) UpsertCatalogEntry(ctx context.Context, entry *models.CatalogEntry) error {
	query := `INSERT INTO catalog (
		appid, name, release_date, price, developers, publishers, genres, tags,
		header_image, website, windows, mac, linux,
		metacritic_score, positive, negative,
		avg_session_minutes, multiplayer_mode, difficulty, document, updated_at
	) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, CURRENT_TIMESTAMP)
	ON CONFLICT (appid) DO UPDATE SET
		name = EXCLUDED.name,
		release_date = EXCLUDED.release_date,
		price = EXCLUDED.price,
		developers = EXCLUDED.developers,
		publishers = EXCLUDED.publishers,
		genres = EXCLUDED.genres,
		tags = EXCLUDED.tags,
		header_image = EXCLUDED.header_image,
		website = EXCLUDED.website,
		windows = EXCLUDED.windows,
		mac = EXCLUDED.mac,
		linux = EXCLUDED.linux,
		metacritic_score = EXCLUDED.metacritic_score,
		positive = EXCLUDED.positive,
		negative = EXCLUDED.negative,
		avg_session_minutes = EXCLUDED.avg_session_minutes,
		multiplayer_mode = EXCLUDED.multiplayer_mode,
		difficulty = EXCLUDED.difficulty,
		document = EXCLUDED.document,
		updated_at = now()`

	_, err := db.conn.ExecContext(ctx, query,
		entry.AppID, entry.Name, entry.ReleaseDate, entry.Price,
		entry.Developers, entry.Publishers, entry.Genres, entry.Tags,
		entry.HeaderImage, entry.Website, entry.Windows, entry.Mac, entry.Linux,
		entry.MetacriticScore, entry.PositiveReviews, entry.NegativeReviews,
		entry.AvgSessionMinutes, entry.MultiplayerMode, entry.Difficulty, entry.Document,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert catalog entry %d: %w", entry.AppID, err)
	}
	return nil
}

// MissingFromCatalog returns the subset of ownedAppIDs with no catalog row
// yet, preserving input order. Used to enqueue enrichment work after a
// library sync.
func (db *DB) MissingFromCatalog(ctx context.Context, ownedAppIDs []int64) ([]int64, error) {
	if len(ownedAppIDs) == 0 {
		return nil, nil
	}

	known, err := db.GetBulk(ctx, ownedAppIDs)
	if err != nil {
		return nil, err
	}

	var missing []int64
	for _, id := range ownedAppIDs {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}
