// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package search

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"
)

// DocumentSource enumerates the full catalog for index building. Implemented
// by the database layer; defined here to avoid a dependency cycle.
type DocumentSource interface {
	// EnumerateDocuments returns every (app id, document text) pair in a
	// stable order. The ordering determines internal doc ids and the
	// first-seen vocabulary tie-break, so it must be deterministic.
	EnumerateDocuments(ctx context.Context) (appIDs []int64, documents []string, err error)
}

// Manager owns the active index snapshot.
//
// The snapshot is held behind an atomic pointer: any number of searches may
// read it concurrently without locking, and Rebuild swaps in a fresh index
// wholesale. In-flight searches keep using the snapshot they started with.
// Only one rebuild runs at a time.
type Manager struct {
	current atomic.Pointer[Index]
	logger  zerolog.Logger

	// snapshotPath is where rebuilt snapshots persist; empty disables
	// persistence.
	snapshotPath string

	rebuildMu     sync.Mutex
	lastRebuildAt atomic.Int64
}

// NewManager creates a manager with an empty initial index.
func NewManager(snapshotPath string, logger zerolog.Logger) *Manager {
	m := &Manager{
		logger:       logger.With().Str("component", "search").Logger(),
		snapshotPath: snapshotPath,
	}

	empty, _ := Build(nil, nil)
	m.current.Store(empty)

	return m
}

// Current returns the active snapshot. Never nil.
func (m *Manager) Current() *Index {
	return m.current.Load()
}

// Swap atomically replaces the active snapshot.
func (m *Manager) Swap(idx *Index) {
	m.current.Store(idx)
}

// LastRebuildAt reports when the last successful rebuild completed, or the
// zero time if none has run.
func (m *Manager) LastRebuildAt() time.Time {
	ns := m.lastRebuildAt.Load()
	if ns == 0 {
		return time.Time{}
	}
	return time.Unix(0, ns)
}

// LoadSnapshot restores the persisted snapshot, if one exists, and installs
// it as the active index. A missing snapshot file is not an error; a corrupt
// one is.
func (m *Manager) LoadSnapshot() error {
	if m.snapshotPath == "" {
		return nil
	}

	idx, meta, err := Load(m.snapshotPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			m.logger.Info().Str("path", m.snapshotPath).Msg("no index snapshot on disk, starting empty")
			return nil
		}
		return fmt.Errorf("load index snapshot: %w", err)
	}

	m.Swap(idx)
	m.logger.Info().
		Int("documents", meta.DocCount).
		Int("vocabulary", meta.VocabSize).
		Time("built_at", meta.BuiltAt).
		Msg("restored index snapshot")

	return nil
}

// Rebuild constructs a fresh index from the full catalog and swaps it in.
// The previous snapshot remains visible to readers until the swap; the swap
// is all-or-nothing, so a failed rebuild leaves the active index untouched.
func (m *Manager) Rebuild(ctx context.Context, source DocumentSource) error {
	m.rebuildMu.Lock()
	defer m.rebuildMu.Unlock()

	start := time.Now()

	appIDs, documents, err := source.EnumerateDocuments(ctx)
	if err != nil {
		return fmt.Errorf("enumerate catalog documents: %w", err)
	}

	idx, err := Build(documents, appIDs)
	if err != nil {
		return fmt.Errorf("build index: %w", err)
	}

	m.Swap(idx)
	m.lastRebuildAt.Store(time.Now().UnixNano())

	m.logger.Info().
		Int("documents", idx.DocCount()).
		Int("vocabulary", idx.VocabSize()).
		Int64("duration_ms", time.Since(start).Milliseconds()).
		Msg("index rebuilt")

	if m.snapshotPath != "" {
		if err := idx.Save(m.snapshotPath); err != nil {
			// The in-memory swap already succeeded; persistence failure
			// only affects the next restart.
			m.logger.Error().Err(err).Str("path", m.snapshotPath).Msg("failed to persist index snapshot")
		}
	}

	return nil
}
