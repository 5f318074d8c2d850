// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package models

import "time"

// CatalogEntry is read-only metadata for one game in the catalog.
//
// Genres and Tags are raw comma/semicolon/pipe separated strings as imported
// from upstream sources; normalization happens in the recommendation core.
// Document is the pre-built text blob (name + genres + tags) the search
// index is built from.
type CatalogEntry struct {
	AppID             int64   `json:"appid"`
	Name              string  `json:"name"`
	ReleaseDate       string  `json:"release_date,omitempty"`
	Price             float64 `json:"price,omitempty"`
	Developers        string  `json:"developers,omitempty"`
	Publishers        string  `json:"publishers,omitempty"`
	Genres            string  `json:"genres,omitempty"`
	Tags              string  `json:"tags,omitempty"`
	HeaderImage       string  `json:"header_image,omitempty"`
	Website           string  `json:"website,omitempty"`
	Windows           bool    `json:"windows"`
	Mac               bool    `json:"mac"`
	Linux             bool    `json:"linux"`
	MetacriticScore   int     `json:"metacritic_score,omitempty"`
	PositiveReviews   int     `json:"positive,omitempty"`
	NegativeReviews   int     `json:"negative,omitempty"`
	AvgSessionMinutes int     `json:"avg_session_minutes,omitempty"`
	MultiplayerMode   string  `json:"multiplayer_mode,omitempty"` // solo/coop/pvp/mmo
	Difficulty        string  `json:"difficulty,omitempty"`       // low/medium/high
	Document          string  `json:"-"`
}

// SupportsPlatform reports whether the entry declares support for the given
// platform ("windows", "mac" or "linux"). Unknown platforms are unsupported.
func (c *CatalogEntry) SupportsPlatform(platform string) bool {
	switch platform {
	case "windows":
		return c.Windows
	case "mac":
		return c.Mac
	case "linux":
		return c.Linux
	default:
		return false
	}
}

// LibraryStat is one per-(user, game) playtime record from the synced
// library. Playtimes are minutes, matching the Steam Web API.
type LibraryStat struct {
	SteamID         string `json:"steamid"`
	AppID           int64  `json:"appid"`
	PlaytimeForever int    `json:"playtime_forever"`
	Playtime2Weeks  int    `json:"playtime_2weeks"`
	LastPlayedUnix  int64  `json:"last_played,omitempty"`
}

// SteamProfile links an account to an external Steam identity.
type SteamProfile struct {
	UserID     int64  `json:"user_id"`
	SteamID    string `json:"steamid"`
	Persona    string `json:"persona,omitempty"`
	Avatar     string `json:"avatar,omitempty"`
	LastSyncTS int64  `json:"last_sync_ts,omitempty"`
}

// UserPreference is the persistent per-user preference state maintained by
// the preference learner. GenreWeights keys are normalized (lowercased)
// genre tokens; each weight is clamped to [-3, 5]. ComfortBias is clamped
// to [-1, 2].
type UserPreference struct {
	UserID       int64              `json:"user_id"`
	GenreWeights map[string]float64 `json:"genre_weights"`
	ComfortBias  float64            `json:"comfort_bias"`
	UpdatedAt    time.Time          `json:"updated_at"`
}

// FeedbackAction is a user's reaction to a recommendation.
type FeedbackAction string

// Valid feedback actions.
const (
	FeedbackAccept FeedbackAction = "accept"
	FeedbackReject FeedbackAction = "reject"
	FeedbackClick  FeedbackAction = "click"
)

// Valid reports whether the action is one of the known values.
func (a FeedbackAction) Valid() bool {
	switch a {
	case FeedbackAccept, FeedbackReject, FeedbackClick:
		return true
	default:
		return false
	}
}

// FeedbackEvent is one append-only feedback log record.
type FeedbackEvent struct {
	UserID          int64          `json:"user_id"`
	AppID           int64          `json:"appid"`
	Action          FeedbackAction `json:"action"`
	Timestamp       int64          `json:"ts"`
	ContextSnapshot string         `json:"context_snapshot,omitempty"`
}

// ContextLogEntry records the recommendation context of one request, for
// offline analysis of how users ask for recommendations.
type ContextLogEntry struct {
	UserID           int64     `json:"user_id"`
	TimeAvailableMin int       `json:"time_available_min"`
	EnergyLevel      string    `json:"energy_level"`
	Platform         string    `json:"platform"`
	SocialMode       string    `json:"social_mode"`
	CreatedAt        time.Time `json:"created_at"`
}
