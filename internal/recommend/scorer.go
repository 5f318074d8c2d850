// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package recommend

import (
	"fmt"
	"math"
	"strings"

	"github.com/playpick/playpick/internal/models"
)

// maxReasons caps the per-candidate explanation length. Reasons keep
// feature evaluation order; they are not re-sorted by magnitude.
const maxReasons = 3

// Playtime thresholds for the comfort and novelty features, in minutes.
const (
	comfortPlaytimeMin = 500
	noveltyPlaytimeMax = 30
)

// NormalizeGenres splits a raw genre string into normalized tokens.
//
// The first of the separators "," ";" "|" found in the string is the only
// one split on; separators do not cascade. Tokens are trimmed and
// lowercased, empties dropped. A separator-free string normalizes to a
// single token.
func NormalizeGenres(raw string) []string {
	if raw == "" {
		return nil
	}

	var parts []string
	for _, sep := range []string{",", ";", "|"} {
		if strings.Contains(raw, sep) {
			parts = strings.Split(raw, sep)
			break
		}
	}
	if parts == nil {
		parts = []string{raw}
	}

	genres := make([]string, 0, len(parts))
	for _, p := range parts {
		if g := strings.ToLower(strings.TrimSpace(p)); g != "" {
			genres = append(genres, g)
		}
	}

	return genres
}

// Clamp bounds v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ScoreCandidate computes the additive fit score for one candidate along
// with up to three reasons, collected in feature order.
//
// The features, in fixed evaluation order:
//
//	time fit      max(0, 1-|target-avail|/max(avail,30)) * 35
//	energy fit    low energy + easy: +20; low + hard: -10; high + hard: +18
//	social fit    social + multiplayer: 10+min(10, friends*2); social
//	              mismatch: -4; solo + singleplayer: +8
//	genre fit     clamp(best genre weight, 0, 4) * 6 when positive
//	comfort bias  bias * 8 when total playtime > 500 min
//	novelty       +6 for backlog items (< 30 min played)
//	recency       min(5, log2(1 + twoWeeks/30)) when recently played
func ScoreCandidate(stat *models.LibraryStat, entry *models.CatalogEntry, rctx *Context, genreWeights map[string]float64, comfortBias float64) (float64, []string) {
	var score float64
	reasons := make([]string, 0, maxReasons)

	// Time fit: prefer session length close to the available budget.
	target := entry.AvgSessionMinutes
	if target == 0 {
		target = defaultTimeAvailable
	}
	diff := math.Abs(float64(rctx.TimeAvailableMin - target))
	timeFit := math.Max(0, 1.0-diff/math.Max(float64(rctx.TimeAvailableMin), 30))
	score += timeFit * 35
	if timeFit > 0.7 {
		reasons = append(reasons, fmt.Sprintf("session length fits your %d minutes", target))
	}

	// Energy fit: low energy prefers lower difficulty.
	difficulty := strings.ToLower(entry.Difficulty)
	if difficulty == "" {
		difficulty = "medium"
	}
	if rctx.EnergyLevel == EnergyLow {
		switch difficulty {
		case "low", "easy":
			score += 20
			reasons = append(reasons, "low mental load")
		case "high", "hard":
			score -= 10
		}
	} else if difficulty == "high" || difficulty == "hard" {
		score += 18
		reasons = append(reasons, "worth your full attention")
	}

	// Social fit plus friends-online boost.
	mode := strings.ToLower(entry.MultiplayerMode)
	if mode == "" {
		mode = "solo"
	}
	switch {
	case rctx.SocialMode == SocialSocial:
		if isMultiplayerMode(mode) {
			score += 10 + math.Min(10, float64(rctx.FriendsOnline)*2)
			reasons = append(reasons, "friends are online to join")
		} else {
			score -= 4
		}
	case rctx.SocialMode == SocialSolo && (mode == "solo" || mode == "singleplayer"):
		score += 8
	}

	// Genre preference fit: best learned weight across the candidate's
	// normalized genres, only when positive.
	var genreFit float64
	for _, g := range NormalizeGenres(entry.Genres) {
		if w := genreWeights[g]; w > genreFit {
			genreFit = w
		}
	}
	if genreFit > 0 {
		score += Clamp(genreFit, 0, 4) * 6
		reasons = append(reasons, "matches your genre preferences")
	}

	// Comfort loop bias from historical behavior.
	if stat.PlaytimeForever > comfortPlaytimeMin {
		score += comfortBias * 8
		if comfortBias > 0.7 {
			reasons = append(reasons, "one of your comfort games")
		}
	}

	// Novelty bonus for backlog items.
	if stat.PlaytimeForever < noveltyPlaytimeMax {
		score += 6
	}

	// Recent activity tiny boost.
	if stat.Playtime2Weeks > 0 {
		score += math.Min(5, math.Log2(1+float64(stat.Playtime2Weeks)/30))
	}

	if len(reasons) > maxReasons {
		reasons = reasons[:maxReasons]
	}

	return score, reasons
}

// isMultiplayerMode reports whether the catalog multiplayer mode counts as
// playable-with-others for social fit.
func isMultiplayerMode(mode string) bool {
	switch mode {
	case "coop", "pvp", "mmo", "multiplayer":
		return true
	default:
		return false
	}
}
