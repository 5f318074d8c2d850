// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package recommend

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/playpick/playpick/internal/models"
)

// Feedback deltas per action.
const (
	acceptDelta = 0.15
	rejectDelta = -0.10
	clickDelta  = 0.02

	acceptBiasDelta = 0.05
	rejectBiasDelta = -0.03
)

// Clamp bounds for learned state.
const (
	genreWeightMin = -3.0
	genreWeightMax = 5.0
	comfortBiasMin = -1.0
	comfortBiasMax = 2.0
)

// Learner updates per-user preference state from feedback events.
//
// It is an unbounded-horizon additive learner: genre weights accumulate
// independently per feedback event within the clamp bounds, with no decay
// and no cross-genre normalization.
type Learner struct {
	store  FeedbackStore
	logger zerolog.Logger
}

// NewLearner creates a preference learner backed by the given store.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewLearner(store FeedbackStore, logger zerolog.Logger) *Learner {
	return &Learner{
		store:  store,
		logger: logger.With().Str("component", "learner").Logger(),
	}
}

// OnFeedback records one feedback event and applies the preference update.
//
// The event record is appended first; the preference mutation rides the
// same transaction, so the call is all-or-nothing. A user with no
// preference row gets one created lazily with empty weights and zero bias.
func (l *Learner) OnFeedback(ctx context.Context, userID, appID int64, action models.FeedbackAction, genres, contextSnapshot string) error {
	if !action.Valid() {
		return fmt.Errorf("unknown feedback action %q", action)
	}
	if appID <= 0 {
		return fmt.Errorf("feedback requires a positive app id, got %d", appID)
	}

	event := models.FeedbackEvent{
		UserID:          userID,
		AppID:           appID,
		Action:          action,
		Timestamp:       time.Now().Unix(),
		ContextSnapshot: contextSnapshot,
	}

	err := l.store.ApplyFeedback(ctx, event, func(pref models.UserPreference) models.UserPreference {
		return applyAction(pref, action, genres)
	})
	if err != nil {
		return fmt.Errorf("apply feedback: %w", err)
	}

	l.logger.Debug().
		Int64("user_id", userID).
		Int64("appid", appID).
		Str("action", string(action)).
		Msg("feedback applied")

	return nil
}

// applyAction returns the preference state after one feedback action.
func applyAction(pref models.UserPreference, action models.FeedbackAction, genres string) models.UserPreference {
	var delta float64
	switch action {
	case models.FeedbackAccept:
		delta = acceptDelta
		pref.ComfortBias = Clamp(pref.ComfortBias+acceptBiasDelta, comfortBiasMin, comfortBiasMax)
	case models.FeedbackReject:
		delta = rejectDelta
		pref.ComfortBias = Clamp(pref.ComfortBias+rejectBiasDelta, comfortBiasMin, comfortBiasMax)
	case models.FeedbackClick:
		delta = clickDelta
	}

	if pref.GenreWeights == nil {
		pref.GenreWeights = make(map[string]float64)
	}
	for _, g := range NormalizeGenres(genres) {
		pref.GenreWeights[g] = round3(Clamp(pref.GenreWeights[g]+delta, genreWeightMin, genreWeightMax))
	}

	pref.UpdatedAt = time.Now().UTC()
	return pref
}

// round3 rounds to three decimal places, keeping stored weights tidy after
// repeated accumulation.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
