// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package api

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/playpick/playpick/internal/config"
	"github.com/playpick/playpick/internal/models"
	"github.com/playpick/playpick/internal/recommend"
	"github.com/playpick/playpick/internal/search"
	"github.com/playpick/playpick/internal/steam"
)

// Store is the slice of the database layer the handlers use. Implemented by
// *database.DB.
type Store interface {
	Ping(ctx context.Context) error
	GetCatalogEntry(ctx context.Context, appID int64) (*models.CatalogEntry, error)
	GetBulk(ctx context.Context, appIDs []int64) (map[int64]models.CatalogEntry, error)
	MissingFromCatalog(ctx context.Context, ownedAppIDs []int64) ([]int64, error)
	GetProfile(ctx context.Context, userID int64) (*models.SteamProfile, error)
	UpsertProfile(ctx context.Context, profile *models.SteamProfile) error
	TouchProfileSync(ctx context.Context, userID, syncTS int64) error
	UpsertLibraryStats(ctx context.Context, stats []models.LibraryStat) error
}

// Recommender produces ranked recommendations. Implemented by
// *recommend.Engine.
type Recommender interface {
	Recommend(ctx context.Context, userID int64, req recommend.Request) (*recommend.Result, error)
}

// FeedbackRecorder applies one feedback event to the user's learned
// preferences. Implemented by *recommend.Learner.
type FeedbackRecorder interface {
	OnFeedback(ctx context.Context, userID, appID int64, action models.FeedbackAction, genres, contextSnapshot string) error
}

// LibraryFetcher reads a user's owned games from the Steam Web API.
// Implemented by *steam.Client.
type LibraryFetcher interface {
	GetOwnedGames(ctx context.Context, steamID string) ([]steam.OwnedGame, error)
	GetPlayerSummary(ctx context.Context, steamID string) (*steam.PlayerSummary, error)
}

// BatchEnqueuer hands missing games to the enrichment queue. Implemented by
// *enrichment.Queue.
type BatchEnqueuer interface {
	EnqueueBatch(appIDs []int64) (string, error)
}

// Handler bundles the handler dependencies. Optional collaborators
// (steam, enqueuer) may be nil; the endpoints needing them respond 503.
type Handler struct {
	db       Store
	index    *search.Manager
	docs     search.DocumentSource
	engine   Recommender
	learner  FeedbackRecorder
	steam    LibraryFetcher
	enqueuer BatchEnqueuer
	search   config.SearchConfig
	logger   zerolog.Logger
}

// NewHandler creates the API handler set.
func NewHandler(
	db Store,
	index *search.Manager,
	docs search.DocumentSource,
	engine Recommender,
	learner FeedbackRecorder,
	steamClient LibraryFetcher,
	enqueuer BatchEnqueuer,
	searchCfg config.SearchConfig,
	logger zerolog.Logger,
) *Handler {
	return &Handler{
		db:       db,
		index:    index,
		docs:     docs,
		engine:   engine,
		learner:  learner,
		steam:    steamClient,
		enqueuer: enqueuer,
		search:   searchCfg,
		logger:   logger.With().Str("component", "api").Logger(),
	}
}
