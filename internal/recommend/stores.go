// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package recommend

import (
	"context"

	"github.com/playpick/playpick/internal/models"
)

// Store interfaces for the recommendation core's data dependencies. The
// database package implements them; defining them here keeps this package
// free of persistence concerns and avoids import cycles.

// ProfileStore resolves a user's linked Steam identity.
type ProfileStore interface {
	// GetProfile returns the user's profile, or (nil, nil) when the user
	// has not linked one.
	GetProfile(ctx context.Context, userID int64) (*models.SteamProfile, error)
}

// LibraryStore reads a user's synced game library.
type LibraryStore interface {
	// ListBySteamID returns every library row for the Steam identity.
	ListBySteamID(ctx context.Context, steamID string) ([]models.LibraryStat, error)
}

// CatalogStore reads game catalog metadata.
type CatalogStore interface {
	// GetBulk returns catalog entries for the given app ids, keyed by app
	// id. Missing ids are simply absent from the map.
	GetBulk(ctx context.Context, appIDs []int64) (map[int64]models.CatalogEntry, error)
}

// PreferenceStore reads persisted per-user preference state.
type PreferenceStore interface {
	// GetPreference returns the user's preference state, or (nil, nil)
	// when none exists yet.
	GetPreference(ctx context.Context, userID int64) (*models.UserPreference, error)
}

// FeedbackStore applies a feedback event atomically: it appends the
// immutable event record and updates the user's preference row in a single
// transaction, so concurrent feedback from the same user never loses
// updates and a failure leaves no half-applied mutation.
type FeedbackStore interface {
	// ApplyFeedback appends event and runs update against the user's
	// current preference state (zero-valued with the user id set when the
	// user has none), persisting the returned state.
	ApplyFeedback(ctx context.Context, event models.FeedbackEvent, update func(pref models.UserPreference) models.UserPreference) error
}

// ContextLog records the context of each recommendation request.
type ContextLog interface {
	AppendContext(ctx context.Context, entry models.ContextLogEntry) error
}

// FriendCounter reports how many of a user's friends are currently online.
// Implemented by the Steam client; failures degrade to zero friends rather
// than failing the request.
type FriendCounter interface {
	FriendsOnline(ctx context.Context, steamID string) (int, error)
}
