// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package enrichment

import (
	"sort"
	"strings"

	"github.com/playpick/playpick/internal/steam"
)

// Session length fallback when SteamSpy has no playtime data, in minutes.
const defaultSessionMinutes = 60

// Tag vocabularies for difficulty and multiplayer inference. Markers match
// whole lowercased SteamSpy tag names; broader tags like "Hardcore" or
// "MMORPG" are not markers, and the genre string is not consulted.
var (
	hardTags = []string{"souls-like", "difficult", "hard", "roguelike", "permadeath"}
	easyTags = []string{"casual", "relaxing", "cozy", "visual novel", "walking simulator"}

	coopTags = []string{"co-op", "online co-op", "local co-op"}
	pvpTags  = []string{"multiplayer", "pvp", "competitive", "e-sports"}
	mmoTags  = []string{"mmo", "massively multiplayer"}
)

// inferDifficulty classifies a game as low/medium/high mental load from its
// SteamSpy tags. Hard markers win over easy markers.
func inferDifficulty(details *steam.AppDetails) string {
	tags := lowerTagSet(details)

	switch {
	case hasAnyTag(tags, hardTags):
		return "high"
	case hasAnyTag(tags, easyTags):
		return "low"
	default:
		return "medium"
	}
}

// inferMultiplayerMode classifies how a game is played with others:
// coop, pvp, mmo or solo. Co-op wins over the pvp group, which wins
// over the mmo group.
func inferMultiplayerMode(details *steam.AppDetails) string {
	tags := lowerTagSet(details)

	switch {
	case hasAnyTag(tags, coopTags):
		return "coop"
	case hasAnyTag(tags, pvpTags):
		return "pvp"
	case hasAnyTag(tags, mmoTags):
		return "mmo"
	default:
		return "solo"
	}
}

// lowerTagSet returns the game's tag names lowercased, for marker lookups.
func lowerTagSet(details *steam.AppDetails) map[string]bool {
	tags := make(map[string]bool, len(details.Tags))
	for tag := range details.Tags {
		tags[strings.ToLower(tag)] = true
	}
	return tags
}

func hasAnyTag(tags map[string]bool, markers []string) bool {
	for _, marker := range markers {
		if tags[marker] {
			return true
		}
	}
	return false
}

// sortedTags returns the tag names ordered by descending vote count, name
// ascending on ties, so the strongest signals come first.
func sortedTags(details *steam.AppDetails) []string {
	tags := make([]string, 0, len(details.Tags))
	for tag := range details.Tags {
		tags = append(tags, tag)
	}
	sort.Slice(tags, func(i, j int) bool {
		if details.Tags[tags[i]] != details.Tags[tags[j]] {
			return details.Tags[tags[i]] > details.Tags[tags[j]]
		}
		return tags[i] < tags[j]
	})
	return tags
}

// buildDocument assembles the search index text for a game: name, genres
// and tags joined by newlines.
func buildDocument(details *steam.AppDetails) string {
	parts := []string{details.Name, details.Genre}
	parts = append(parts, sortedTags(details)...)
	return strings.Join(parts, "\n")
}

// sessionMinutes derives the expected session length from SteamSpy's
// average playtime, falling back to an hour when unknown.
func sessionMinutes(details *steam.AppDetails) int {
	if details.AverageForever <= 0 {
		return defaultSessionMinutes
	}
	return details.AverageForever
}
