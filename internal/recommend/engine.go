// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package recommend

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/playpick/playpick/internal/models"
)

// Sentinel errors the API layer maps to stable error codes.
var (
	// ErrInvalidInput marks a request with out-of-vocabulary enum values.
	ErrInvalidInput = errors.New("invalid recommendation input")

	// ErrNotBound means the user has not linked a Steam profile.
	ErrNotBound = errors.New("no linked steam profile")

	// ErrNoLibrary means the linked profile has no synced library rows.
	ErrNoLibrary = errors.New("library is empty")
)

// maxAlternatives caps the list returned alongside the top pick.
const maxAlternatives = 7

// Request is the inbound recommendation request after JSON decoding.
type Request struct {
	TimeAvailableMin int    `json:"time_available_min"`
	EnergyLevel      string `json:"energy_level"`
	Platform         string `json:"platform"`
	SocialMode       string `json:"social_mode"`
	PreferInstalled  bool   `json:"prefer_installed"`

	// ShuffleSeed, when non-zero, applies a small deterministic jitter so
	// repeated identical requests can surface different near-ties.
	ShuffleSeed int64 `json:"shuffle_seed,omitempty"`
}

// Candidate is one scored recommendation.
type Candidate struct {
	AppID           int64    `json:"appid"`
	Name            string   `json:"name"`
	Score           float64  `json:"score"`
	Reasons         []string `json:"reasons"`
	PlaytimeForever int      `json:"playtime_forever"`
	HeaderImage     string   `json:"header_image,omitempty"`
}

// Result is the full recommendation response payload.
type Result struct {
	Context         Context     `json:"context"`
	TopPick         *Candidate  `json:"top_pick"`
	Alternatives    []Candidate `json:"alternatives"`
	TotalCandidates int         `json:"total_candidates"`
}

// Engine generates recommendations for a user in a given context. It joins
// the user's library with catalog metadata, filters by platform support,
// scores each candidate and ranks the results.
type Engine struct {
	profiles ProfileStore
	library  LibraryStore
	catalog  CatalogStore
	prefs    PreferenceStore
	contexts ContextLog
	friends  FriendCounter
	logger   zerolog.Logger
}

// NewEngine wires a recommendation engine from its store dependencies.
// contexts and friends may be nil; context logging and the friends-online
// boost are then skipped.
func NewEngine(profiles ProfileStore, library LibraryStore, catalog CatalogStore, prefs PreferenceStore, contexts ContextLog, friends FriendCounter, logger zerolog.Logger) *Engine {
	return &Engine{
		profiles: profiles,
		library:  library,
		catalog:  catalog,
		prefs:    prefs,
		contexts: contexts,
		friends:  friends,
		logger:   logger.With().Str("component", "recommend").Logger(),
	}
}

// Recommend produces the ranked recommendation set for one user.
//
// Failures resolving the friends-online count or appending the context log
// degrade gracefully; only store errors on the critical read path fail the
// request.
func (e *Engine) Recommend(ctx context.Context, userID int64, req Request) (*Result, error) {
	req = normalizeRequest(req)
	if err := validateRequest(req); err != nil {
		return nil, err
	}

	profile, err := e.profiles.GetProfile(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	if profile == nil {
		return nil, ErrNotBound
	}

	stats, err := e.library.ListBySteamID(ctx, profile.SteamID)
	if err != nil {
		return nil, fmt.Errorf("load library: %w", err)
	}
	if len(stats) == 0 {
		return nil, ErrNoLibrary
	}

	rctx := Context{
		TimeAvailableMin: ClampTimeAvailable(req.TimeAvailableMin),
		EnergyLevel:      req.EnergyLevel,
		Platform:         req.Platform,
		SocialMode:       req.SocialMode,
		PreferInstalled:  req.PreferInstalled,
	}

	// Fetched for every request so the context echo carries the count even
	// when scoring never reads it (solo and any modes).
	if e.friends != nil {
		n, ferr := e.friends.FriendsOnline(ctx, profile.SteamID)
		if ferr != nil {
			e.logger.Warn().Err(ferr).Str("steamid", profile.SteamID).Msg("friends-online lookup failed, assuming none")
		} else {
			rctx.FriendsOnline = n
		}
	}

	genreWeights, comfortBias, err := e.loadPreferences(ctx, userID)
	if err != nil {
		return nil, err
	}

	appIDs := make([]int64, len(stats))
	for i, s := range stats {
		appIDs[i] = s.AppID
	}
	entries, err := e.catalog.GetBulk(ctx, appIDs)
	if err != nil {
		return nil, fmt.Errorf("load catalog entries: %w", err)
	}

	candidates := e.scoreAll(stats, entries, &rctx, genreWeights, comfortBias, req.ShuffleSeed)

	result := &Result{
		Context:         rctx,
		Alternatives:    []Candidate{},
		TotalCandidates: len(candidates),
	}
	if len(candidates) > 0 {
		result.TopPick = &candidates[0]
		rest := candidates[1:]
		if len(rest) > maxAlternatives {
			rest = rest[:maxAlternatives]
		}
		result.Alternatives = rest
	}

	e.appendContextLog(ctx, userID, &rctx)

	e.logger.Debug().
		Int64("user_id", userID).
		Int("candidates", result.TotalCandidates).
		Msg("recommendation generated")

	return result, nil
}

// normalizeRequest lowercases the enum fields and substitutes the defaults
// for absent ones, so an empty request means low energy on windows with any
// company. Out-of-vocabulary values are left for validateRequest to reject.
func normalizeRequest(req Request) Request {
	req.EnergyLevel = strings.ToLower(strings.TrimSpace(req.EnergyLevel))
	if req.EnergyLevel == "" {
		req.EnergyLevel = EnergyLow
	}
	req.Platform = strings.ToLower(strings.TrimSpace(req.Platform))
	if req.Platform == "" {
		req.Platform = PlatformWindows
	}
	req.SocialMode = strings.ToLower(strings.TrimSpace(req.SocialMode))
	if req.SocialMode == "" {
		req.SocialMode = SocialAny
	}
	return req
}

// validateRequest checks the enum fields against their vocabularies.
func validateRequest(req Request) error {
	if !ValidEnergyLevel(req.EnergyLevel) {
		return fmt.Errorf("%w: energy_level must be low or high, got %q", ErrInvalidInput, req.EnergyLevel)
	}
	if !ValidPlatform(req.Platform) {
		return fmt.Errorf("%w: platform must be windows, mac or linux, got %q", ErrInvalidInput, req.Platform)
	}
	if !ValidSocialMode(req.SocialMode) {
		return fmt.Errorf("%w: social_mode must be solo, social or any, got %q", ErrInvalidInput, req.SocialMode)
	}
	return nil
}

// loadPreferences returns the user's learned state, or neutral defaults when
// no preference row exists yet.
func (e *Engine) loadPreferences(ctx context.Context, userID int64) (map[string]float64, float64, error) {
	pref, err := e.prefs.GetPreference(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("load preferences: %w", err)
	}
	if pref == nil {
		return map[string]float64{}, 0, nil
	}
	return pref.GenreWeights, pref.ComfortBias, nil
}

// scoreAll scores every platform-compatible candidate and returns them
// ranked by score descending, app id ascending on ties.
func (e *Engine) scoreAll(stats []models.LibraryStat, entries map[int64]models.CatalogEntry, rctx *Context, genreWeights map[string]float64, comfortBias float64, seed int64) []Candidate {
	candidates := make([]Candidate, 0, len(stats))
	for i := range stats {
		stat := &stats[i]
		entry, ok := entries[stat.AppID]
		if !ok {
			continue
		}
		if !entry.SupportsPlatform(rctx.Platform) {
			continue
		}

		score, reasons := ScoreCandidate(stat, &entry, rctx, genreWeights, comfortBias)
		if seed != 0 {
			score += shuffleJitter(stat.AppID, seed)
		}

		candidates = append(candidates, Candidate{
			AppID:           stat.AppID,
			Name:            entry.Name,
			Score:           score,
			Reasons:         reasons,
			PlaytimeForever: stat.PlaytimeForever,
			HeaderImage:     entry.HeaderImage,
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].AppID < candidates[j].AppID
	})

	return candidates
}

// shuffleJitter is a tiny deterministic perturbation keyed on (appid, seed),
// at most 0.42 points, so a client can ask for a reshuffled near-tie order
// without changing meaningful rankings.
func shuffleJitter(appID, seed int64) float64 {
	return float64((appID+seed)%7) * 0.07
}

// appendContextLog records the request context for offline analysis. Log
// failures are non-fatal.
func (e *Engine) appendContextLog(ctx context.Context, userID int64, rctx *Context) {
	if e.contexts == nil {
		return
	}
	entry := models.ContextLogEntry{
		UserID:           userID,
		TimeAvailableMin: rctx.TimeAvailableMin,
		EnergyLevel:      rctx.EnergyLevel,
		Platform:         rctx.Platform,
		SocialMode:       rctx.SocialMode,
		CreatedAt:        time.Now().UTC(),
	}
	if err := e.contexts.AppendContext(ctx, entry); err != nil {
		e.logger.Warn().Err(err).Int64("user_id", userID).Msg("context log append failed")
	}
}
