// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package enrichment

import (
	"reflect"
	"testing"

	"github.com/playpick/playpick/internal/steam"
)

func TestInferDifficulty(t *testing.T) {
	tests := []struct {
		name  string
		tags  map[string]int
		genre string
		want  string
	}{
		{"souls like tag", map[string]int{"Souls-like": 120}, "Action", "high"},
		{"difficult tag", map[string]int{"Difficult": 80}, "Action", "high"},
		{"roguelike tag", map[string]int{"Roguelike": 40}, "", "high"},
		{"permadeath tag", map[string]int{"Permadeath": 10}, "", "high"},
		{"casual tag", map[string]int{"Casual": 200}, "Simulation", "low"},
		{"cozy tag", map[string]int{"Cozy": 50}, "", "low"},
		{"visual novel tag", map[string]int{"Visual Novel": 60}, "", "low"},
		{"walking simulator", map[string]int{"Walking Simulator": 30}, "", "low"},
		{"hard wins over easy", map[string]int{"Relaxing": 90, "Roguelike": 40}, "", "high"},
		{"hardcore is not a hard marker", map[string]int{"Hardcore": 300, "Sports": 100}, "", "medium"},
		{"difficulty spike is not a marker", map[string]int{"Difficulty Spike": 40}, "", "medium"},
		{"genre is not consulted", nil, "Roguelike", "medium"},
		{"no markers", map[string]int{"Open World": 300}, "Adventure", "medium"},
		{"empty details", nil, "", "medium"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			details := &steam.AppDetails{Tags: tc.tags, Genre: tc.genre}
			if got := inferDifficulty(details); got != tc.want {
				t.Errorf("inferDifficulty() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestInferMultiplayerMode(t *testing.T) {
	tests := []struct {
		name  string
		tags  map[string]int
		genre string
		want  string
	}{
		{"co-op tag", map[string]int{"Co-op": 150}, "Action", "coop"},
		{"online co-op", map[string]int{"Online Co-Op": 90}, "", "coop"},
		{"local co-op", map[string]int{"Local Co-Op": 40}, "", "coop"},
		{"mmo tag", map[string]int{"MMO": 400}, "", "mmo"},
		{"massively multiplayer tag", map[string]int{"Massively Multiplayer": 250}, "", "mmo"},
		{"pvp tag", map[string]int{"PvP": 200}, "", "pvp"},
		{"competitive tag", map[string]int{"Competitive": 120}, "", "pvp"},
		{"esports tag", map[string]int{"e-sports": 60}, "", "pvp"},
		{"plain multiplayer", map[string]int{"Multiplayer": 500}, "", "pvp"},
		{"co-op wins over multiplayer", map[string]int{"Co-op": 150, "Multiplayer": 500}, "", "coop"},
		{"multiplayer wins over mmo", map[string]int{"Multiplayer": 500, "MMO": 100}, "", "pvp"},
		{"mmorpg is not a marker", map[string]int{"MMORPG": 400}, "", "solo"},
		{"genre is not consulted", nil, "Massively Multiplayer", "solo"},
		{"no markers", map[string]int{"Singleplayer": 800}, "RPG", "solo"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			details := &steam.AppDetails{Tags: tc.tags, Genre: tc.genre}
			if got := inferMultiplayerMode(details); got != tc.want {
				t.Errorf("inferMultiplayerMode() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSortedTagsOrdersByVotes(t *testing.T) {
	details := &steam.AppDetails{
		Tags: map[string]int{
			"Indie":    50,
			"Farming":  200,
			"Relaxing": 200,
			"Pixel":    120,
		},
	}

	got := sortedTags(details)
	want := []string{"Farming", "Relaxing", "Pixel", "Indie"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("sortedTags() = %v, want %v", got, want)
	}
}

func TestBuildDocument(t *testing.T) {
	details := &steam.AppDetails{
		Name:  "Cozy Farm",
		Genre: "Simulation, Indie",
		Tags:  map[string]int{"Farming": 200, "Relaxing": 90},
	}

	got := buildDocument(details)
	want := "Cozy Farm\nSimulation, Indie\nFarming\nRelaxing"
	if got != want {
		t.Errorf("buildDocument() = %q, want %q", got, want)
	}
}

func TestSessionMinutes(t *testing.T) {
	tests := []struct {
		name    string
		average int
		want    int
	}{
		{"known playtime", 95, 95},
		{"zero falls back", 0, defaultSessionMinutes},
		{"negative falls back", -5, defaultSessionMinutes},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			details := &steam.AppDetails{AverageForever: tc.average}
			if got := sessionMinutes(details); got != tc.want {
				t.Errorf("sessionMinutes() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestPriceDollars(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{"1999", 19.99},
		{"0", 0},
		{"", 0},
		{"free", 0},
	}

	for _, tc := range tests {
		if got := priceDollars(tc.raw); got != tc.want {
			t.Errorf("priceDollars(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}
