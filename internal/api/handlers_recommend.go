// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/playpick/playpick/internal/metrics"
	"github.com/playpick/playpick/internal/models"
	"github.com/playpick/playpick/internal/recommend"
	"github.com/playpick/playpick/internal/validation"
)

// Recommend handles POST /api/v1/recommend.
func (h *Handler) Recommend(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := requestUserID(r)
	if err != nil {
		metrics.RecommendationsTotal.WithLabelValues("invalid").Inc()
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	// An empty body is a valid request; the engine fills in the default
	// context (45 minutes, low energy, windows, any company).
	var req recommend.Request
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			metrics.RecommendationsTotal.WithLabelValues("invalid").Inc()
			respondError(w, http.StatusBadRequest, models.ErrCodeInvalidInput, "Malformed request body", err)
			return
		}
	}

	result, err := h.engine.Recommend(r.Context(), userID, req)
	if err != nil {
		switch {
		case errors.Is(err, recommend.ErrInvalidInput):
			metrics.RecommendationsTotal.WithLabelValues("invalid").Inc()
			respondError(w, http.StatusBadRequest, models.ErrCodeInvalidInput, err.Error(), nil)
		case errors.Is(err, recommend.ErrNotBound):
			metrics.RecommendationsTotal.WithLabelValues("not_bound").Inc()
			respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "No linked Steam profile; link one and sync first", nil)
		case errors.Is(err, recommend.ErrNoLibrary):
			metrics.RecommendationsTotal.WithLabelValues("no_library").Inc()
			respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "Library is empty; run a sync first", nil)
		default:
			metrics.RecommendationsTotal.WithLabelValues("error").Inc()
			respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Recommendation failed", err)
		}
		return
	}

	metrics.RecommendationsTotal.WithLabelValues("success").Inc()
	respondSuccess(w, http.StatusOK, result, start)
}

// FeedbackRequest is the POST /api/v1/recommend/feedback payload.
type FeedbackRequest struct {
	GameID int64  `json:"game_id" validate:"required,gt=0"`
	Action string `json:"action" validate:"required,feedback_action"`

	// Genres optionally names the game's genres as the client saw them.
	// When absent, the catalog row's genres are used instead.
	Genres          string `json:"genres,omitempty"`
	ContextSnapshot string `json:"context_snapshot,omitempty"`
}

// Feedback handles POST /api/v1/recommend/feedback. The event and the
// preference update are applied atomically by the learner; a response of
// 200 means both landed.
func (h *Handler) Feedback(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	var req FeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidInput, "Malformed request body", err)
		return
	}

	if verr := validation.ValidateStruct(&req); verr != nil {
		apiErr := verr.ToAPIError()
		respondJSON(w, http.StatusBadRequest, &models.APIResponse{
			Status:   "error",
			Metadata: models.Metadata{Timestamp: time.Now()},
			Error: &models.APIError{
				Code:    apiErr.Code,
				Message: apiErr.Message,
				Details: apiErr.Details,
			},
		})
		return
	}

	// Genre weights update from the caller-supplied genres, falling back
	// to the game's catalog row. A game not yet enriched and sent without
	// genres still records the event, just without genre deltas.
	genres := req.Genres
	if genres == "" {
		entry, err := h.db.GetCatalogEntry(r.Context(), req.GameID)
		if err != nil {
			respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to load game metadata", err)
			return
		}
		if entry != nil {
			genres = entry.Genres
		}
	}

	action := models.FeedbackAction(req.Action)
	if err := h.learner.OnFeedback(r.Context(), userID, req.GameID, action, genres, req.ContextSnapshot); err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to apply feedback", err)
		return
	}

	metrics.FeedbackEventsTotal.WithLabelValues(req.Action).Inc()
	respondSuccess(w, http.StatusOK, map[string]interface{}{
		"game_id": req.GameID,
		"action":  req.Action,
	}, start)
}
