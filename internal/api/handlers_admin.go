// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package api

import (
	"net/http"
	"time"

	"github.com/playpick/playpick/internal/metrics"
	"github.com/playpick/playpick/internal/models"
)

// ReindexResponse reports the index state after a manual rebuild.
type ReindexResponse struct {
	Documents  int       `json:"documents"`
	Vocabulary int       `json:"vocabulary"`
	RebuiltAt  time.Time `json:"rebuilt_at"`
}

// Reindex handles POST /api/v1/admin/reindex: a synchronous full rebuild
// from the catalog. Searches keep hitting the previous snapshot until the
// swap.
func (h *Handler) Reindex(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	err := h.index.Rebuild(r.Context(), h.docs)
	idx := h.index.Current()
	metrics.RecordIndexRebuild(idx.DocCount(), idx.VocabSize(), time.Since(start), err)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Index rebuild failed", err)
		return
	}

	respondSuccess(w, http.StatusOK, &ReindexResponse{
		Documents:  idx.DocCount(),
		Vocabulary: idx.VocabSize(),
		RebuiltAt:  h.index.LastRebuildAt(),
	}, start)
}

// HealthResponse is the GET /api/v1/health payload.
type HealthResponse struct {
	Status string      `json:"status"`
	Index  IndexHealth `json:"index"`
}

// IndexHealth reports the active search index snapshot.
type IndexHealth struct {
	Documents     int        `json:"documents"`
	Vocabulary    int        `json:"vocabulary"`
	LastRebuiltAt *time.Time `json:"last_rebuilt_at,omitempty"`
}

// Health handles GET /api/v1/health. Database reachability decides the
// overall status; the index stats ride along for observability.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	idx := h.index.Current()
	health := HealthResponse{
		Status: "ok",
		Index: IndexHealth{
			Documents:  idx.DocCount(),
			Vocabulary: idx.VocabSize(),
		},
	}
	if t := h.index.LastRebuildAt(); !t.IsZero() {
		health.Index.LastRebuiltAt = &t
	}

	if err := h.db.Ping(r.Context()); err != nil {
		health.Status = "degraded"
		h.logger.Error().Err(err).Msg("health check: database unreachable")
		respondSuccess(w, http.StatusServiceUnavailable, &health, start)
		return
	}

	respondSuccess(w, http.StatusOK, &health, start)
}
