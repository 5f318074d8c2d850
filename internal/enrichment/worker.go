// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package enrichment

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/rs/zerolog"

	"github.com/playpick/playpick/internal/metrics"
	"github.com/playpick/playpick/internal/models"
	"github.com/playpick/playpick/internal/steam"
)

// DetailsFetcher fetches catalog metadata for one game. Implemented by the
// SteamSpy client.
type DetailsFetcher interface {
	AppDetails(ctx context.Context, appID int64) (*steam.AppDetails, error)
}

// CatalogWriter persists enriched catalog rows. Implemented by the database
// layer.
type CatalogWriter interface {
	UpsertCatalogEntry(ctx context.Context, entry *models.CatalogEntry) error
}

// Worker consumes enrichment tasks, fetches SteamSpy metadata, infers the
// derived fields and writes catalog rows. Per-task failures are logged and
// skipped; the batch still completes and triggers an index rebuild for the
// rows that did land.
type Worker struct {
	queue   *Queue
	fetcher DetailsFetcher
	catalog CatalogWriter
	logger  zerolog.Logger

	batches map[string]*batchProgress
}

type batchProgress struct {
	size     int
	enriched int
	failed   int
}

// NewWorker wires an enrichment worker.
func NewWorker(queue *Queue, fetcher DetailsFetcher, catalog CatalogWriter, logger zerolog.Logger) *Worker {
	return &Worker{
		queue:   queue,
		fetcher: fetcher,
		catalog: catalog,
		logger:  logger.With().Str("component", "enrichment-worker").Logger(),
		batches: make(map[string]*batchProgress),
	}
}

// Run consumes tasks until the context is canceled. It is meant to run on
// its own goroutine; only one worker should run per queue so the SteamSpy
// rate limit shapes the whole task stream.
func (w *Worker) Run(ctx context.Context) error {
	messages, err := w.queue.SubscribeTasks(ctx)
	if err != nil {
		return err
	}

	w.logger.Info().Msg("enrichment worker started")
	for {
		select {
		case <-ctx.Done():
			w.logger.Info().Msg("enrichment worker stopped")
			return ctx.Err()
		case msg, ok := <-messages:
			if !ok {
				w.logger.Info().Msg("enrichment task stream closed")
				return nil
			}
			w.handle(ctx, msg)
			msg.Ack()
		}
	}
}

// handle processes one task message and updates batch accounting.
func (w *Worker) handle(ctx context.Context, msg *message.Message) {
	metrics.EnrichmentQueueDepth.Dec()

	task, err := decodeTask(msg)
	if err != nil {
		w.logger.Error().Err(err).Str("message_id", msg.UUID).Msg("dropping undecodable enrichment task")
		metrics.EnrichmentTasksTotal.WithLabelValues("failure").Inc()
		return
	}

	if err := w.enrich(ctx, task.AppID); err != nil {
		w.logger.Warn().Err(err).Int64("appid", task.AppID).Msg("enrichment failed, skipping game")
		metrics.EnrichmentTasksTotal.WithLabelValues("failure").Inc()
		w.account(msg, false)
		return
	}

	metrics.EnrichmentTasksTotal.WithLabelValues("success").Inc()
	w.account(msg, true)
}

// enrich fetches, derives and stores the catalog row for one game.
func (w *Worker) enrich(ctx context.Context, appID int64) error {
	details, err := w.fetcher.AppDetails(ctx, appID)
	if err != nil {
		return err
	}

	entry := &models.CatalogEntry{
		AppID:             appID,
		Name:              details.Name,
		Price:             priceDollars(details.Price),
		Developers:        details.Developer,
		Publishers:        details.Publisher,
		Genres:            details.Genre,
		Tags:              tagList(details),
		PositiveReviews:   details.Positive,
		NegativeReviews:   details.Negative,
		AvgSessionMinutes: sessionMinutes(details),
		MultiplayerMode:   inferMultiplayerMode(details),
		Difficulty:        inferDifficulty(details),
		Document:          buildDocument(details),
		// SteamSpy has no platform data; every Steam game ships a
		// Windows build, the rest stays unknown until a better source.
		Windows: true,
	}

	if err := w.catalog.UpsertCatalogEntry(ctx, entry); err != nil {
		return err
	}

	w.logger.Debug().
		Int64("appid", appID).
		Str("difficulty", entry.Difficulty).
		Str("multiplayer_mode", entry.MultiplayerMode).
		Msg("catalog entry enriched")
	return nil
}

// account tracks batch completion and publishes the rebuild trigger when
// the last task of a batch lands.
func (w *Worker) account(msg *message.Message, succeeded bool) {
	batchID := msg.Metadata.Get(metaBatchID)
	if batchID == "" {
		return
	}
	size, err := strconv.Atoi(msg.Metadata.Get(metaBatchSize))
	if err != nil || size <= 0 {
		return
	}

	progress, ok := w.batches[batchID]
	if !ok {
		progress = &batchProgress{size: size}
		w.batches[batchID] = progress
	}
	if succeeded {
		progress.enriched++
	} else {
		progress.failed++
	}

	if progress.enriched+progress.failed < progress.size {
		return
	}
	delete(w.batches, batchID)

	trigger := RebuildTrigger{
		BatchID:     batchID,
		Enriched:    progress.enriched,
		Failed:      progress.failed,
		CompletedAt: time.Now().UTC(),
	}
	if err := w.queue.publishRebuild(trigger); err != nil {
		w.logger.Error().Err(err).Str("batch_id", batchID).Msg("failed to publish rebuild trigger")
		return
	}
	w.logger.Info().
		Str("batch_id", batchID).
		Int("enriched", progress.enriched).
		Int("failed", progress.failed).
		Msg("enrichment batch completed")
}

// priceDollars converts SteamSpy's cents-as-string price to dollars.
func priceDollars(raw string) float64 {
	cents, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return cents / 100
}

// tagList flattens the tag map to the comma-separated form the catalog
// stores, ordered by descending vote count.
func tagList(details *steam.AppDetails) string {
	return strings.Join(sortedTags(details), ", ")
}
