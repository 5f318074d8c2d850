// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

// Package main is the entry point for the PlayPick server.
//
// PlayPick helps Steam players decide what to play next. It keeps a local
// game catalog in DuckDB, serves TF-IDF search with per-result term
// explanations over that catalog, and scores recommendations against the
// user's synced library, current context (time, energy, platform, social
// mode) and learned genre preferences.
//
// The server initializes components in the following order:
//
//  1. Configuration: Koanf v2 layered defaults, config.yaml, PLAYPICK_ env vars
//  2. Database: DuckDB with the schema created idempotently at open
//  3. Search index: restore the persisted snapshot, else build from catalog
//  4. Steam clients: Web API (library sync) and SteamSpy (enrichment)
//  5. Enrichment pipeline: watermill queue, worker and rebuild listener
//  6. HTTP server: Chi REST API plus /metrics
//
// Shutdown on SIGINT/SIGTERM is graceful: the listener stops accepting,
// in-flight requests get 10 seconds to finish, then the enrichment workers
// and the database are closed.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/playpick/playpick/internal/api"
	"github.com/playpick/playpick/internal/config"
	"github.com/playpick/playpick/internal/database"
	"github.com/playpick/playpick/internal/enrichment"
	"github.com/playpick/playpick/internal/logging"
	"github.com/playpick/playpick/internal/recommend"
	"github.com/playpick/playpick/internal/search"
	"github.com/playpick/playpick/internal/steam"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		logging.Error().Err(err).Msg("server exited with error")
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})
	logger := logging.Logger()
	logger.Info().Str("db_path", cfg.Database.Path).Int("port", cfg.Server.Port).Msg("starting playpick")

	db, err := database.New(&cfg.Database)
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logging.Error().Err(err).Msg("failed to close database")
		}
	}()

	indexMgr := search.NewManager(cfg.Search.SnapshotPath, logger)
	if err := indexMgr.LoadSnapshot(); err != nil {
		// A corrupt snapshot is never silently repaired; refuse to start.
		return fmt.Errorf("restore index snapshot: %w", err)
	}

	// Workers and background listeners stop when this context is canceled.
	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	if indexMgr.Current().DocCount() == 0 {
		// Fresh deployments have no snapshot; an empty catalog builds an
		// empty index, which is fine.
		if err := indexMgr.Rebuild(workerCtx, db); err != nil {
			logging.Error().Err(err).Msg("initial index build failed, continuing with empty index")
		}
	}

	var steamClient *steam.Client
	var friends recommend.FriendCounter
	var libraryFetcher api.LibraryFetcher
	if cfg.Steam.APIKey != "" {
		steamClient = steam.NewClient(&cfg.Steam, logger)
		friends = steamClient
		libraryFetcher = steamClient
	} else {
		logger.Warn().Msg("no steam api key configured, library sync disabled")
	}

	engine := recommend.NewEngine(db, db, db, db, db, friends, logger)
	learner := recommend.NewLearner(db, logger)

	var queue *enrichment.Queue
	var enqueuer api.BatchEnqueuer
	if cfg.Enrichment.Enabled {
		queue = enrichment.NewQueue(cfg.Enrichment.QueueBufferSize, logger)
		defer func() {
			if err := queue.Close(); err != nil {
				logging.Error().Err(err).Msg("failed to close enrichment queue")
			}
		}()
		enqueuer = queue

		spyClient := steam.NewSpyClient(&cfg.Steam, logger)
		worker := enrichment.NewWorker(queue, spyClient, db, logger)
		listener := enrichment.NewRebuildListener(queue, func(ctx context.Context) error {
			return indexMgr.Rebuild(ctx, db)
		}, logger)

		go func() {
			if err := worker.Run(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
				logging.Error().Err(err).Msg("enrichment worker stopped")
			}
		}()
		go func() {
			if err := listener.Run(workerCtx); err != nil && !errors.Is(err, context.Canceled) {
				logging.Error().Err(err).Msg("rebuild listener stopped")
			}
		}()
	}

	handler := api.NewHandler(db, indexMgr, db, engine, learner, libraryFetcher, enqueuer, cfg.Search, logger)

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      api.Router(handler),
		ReadTimeout:  cfg.Server.Timeout,
		WriteTimeout: cfg.Server.Timeout,
		IdleTimeout:  2 * cfg.Server.Timeout,
	}

	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.Info().Str("signal", sig.String()).Msg("received shutdown signal")
	case err := <-serverErr:
		return fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logging.Error().Err(err).Msg("http shutdown did not complete cleanly")
	}

	cancelWorkers()
	logger.Info().Msg("playpick stopped")
	return nil
}
