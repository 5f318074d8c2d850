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

// SyncRequest is the POST /api/v1/steam/sync payload. SteamID is only
// needed on the first sync; afterwards the stored binding is used.
type SyncRequest struct {
	SteamID string `json:"steamid,omitempty"`
}

// SyncResponse summarizes one library sync.
type SyncResponse struct {
	SteamID         string `json:"steamid"`
	GamesSynced     int    `json:"games_synced"`
	MissingEnqueued int    `json:"missing_enqueued"`
	BatchID         string `json:"batch_id,omitempty"`
	Note            string `json:"note,omitempty"`
}

// SteamSync handles POST /api/v1/steam/sync: fetches the user's owned
// games, upserts library stats and queues catalog enrichment for games the
// catalog has never seen.
func (h *Handler) SteamSync(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	userID, err := requestUserID(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidInput, err.Error(), nil)
		return
	}

	if h.steam == nil {
		respondError(w, http.StatusServiceUnavailable, models.ErrCodeUpstreamUnavailable, "Steam integration is not configured", nil)
		return
	}

	var req SyncRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			respondError(w, http.StatusBadRequest, models.ErrCodeInvalidInput, "Malformed request body", err)
			return
		}
	}

	steamID, ok := h.resolveSteamID(w, r, userID, req.SteamID)
	if !ok {
		return
	}

	owned, err := h.steam.GetOwnedGames(r.Context(), steamID)
	if err != nil {
		respondError(w, http.StatusBadGateway, models.ErrCodeUpstreamUnavailable, "Steam Web API request failed", err)
		return
	}

	resp := SyncResponse{SteamID: steamID}

	if len(owned) == 0 {
		// Steam returns an empty set for private profiles; nothing to
		// write, but the sync itself succeeded.
		resp.Note = "no games returned; the profile may be private or the library empty"
	} else {
		stats := make([]models.LibraryStat, len(owned))
		appIDs := make([]int64, len(owned))
		for i, game := range owned {
			stats[i] = models.LibraryStat{
				SteamID:         steamID,
				AppID:           game.AppID,
				PlaytimeForever: game.PlaytimeForever,
				Playtime2Weeks:  game.Playtime2Weeks,
				LastPlayedUnix:  game.RTimeLastPlayed,
			}
			appIDs[i] = game.AppID
		}

		if err := h.db.UpsertLibraryStats(r.Context(), stats); err != nil {
			respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to store library stats", err)
			return
		}
		resp.GamesSynced = len(stats)
		metrics.SyncGamesTotal.Add(float64(len(stats)))

		missing, err := h.db.MissingFromCatalog(r.Context(), appIDs)
		if err != nil {
			respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to check catalog coverage", err)
			return
		}
		if len(missing) > 0 && h.enqueuer != nil {
			batchID, err := h.enqueuer.EnqueueBatch(missing)
			if err != nil {
				// The library rows are already stored; enrichment retries
				// on the next sync.
				h.logger.Error().Err(err).Int("missing", len(missing)).Msg("failed to enqueue enrichment batch")
			} else {
				resp.MissingEnqueued = len(missing)
				resp.BatchID = batchID
			}
		}
	}

	if err := h.db.TouchProfileSync(r.Context(), userID, time.Now().Unix()); err != nil {
		h.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to record sync timestamp")
	}

	metrics.SyncDuration.Observe(time.Since(start).Seconds())
	h.logger.Info().
		Int64("user_id", userID).
		Int("games", resp.GamesSynced).
		Int("missing", resp.MissingEnqueued).
		Msg("library sync completed")

	respondSuccess(w, http.StatusOK, &resp, start)
}

// resolveSteamID returns the Steam id to sync: an explicit id in the
// request binds (or rebinds) the profile, otherwise the stored binding is
// used. When ok is false the error response has already been written.
func (h *Handler) resolveSteamID(w http.ResponseWriter, r *http.Request, userID int64, requested string) (steamID string, ok bool) {
	if requested != "" {
		profile := &models.SteamProfile{UserID: userID, SteamID: requested}
		// Persona and avatar are display sugar; a summary failure does not
		// block the sync.
		if summary, err := h.steam.GetPlayerSummary(r.Context(), requested); err == nil && summary != nil {
			profile.Persona = summary.PersonaName
			profile.Avatar = summary.Avatar
		}
		if err := h.db.UpsertProfile(r.Context(), profile); err != nil {
			respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to store profile binding", err)
			return "", false
		}
		return requested, true
	}

	profile, err := h.db.GetProfile(r.Context(), userID)
	if err != nil {
		respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to load profile binding", err)
		return "", false
	}
	if profile == nil {
		respondError(w, http.StatusNotFound, models.ErrCodeNotFound, "No linked Steam profile; pass steamid to bind one", nil)
		return "", false
	}
	return profile.SteamID, true
}
