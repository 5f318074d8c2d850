// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package search

import (
	"reflect"
	"testing"
)

func buildTestIndex(t *testing.T) *Index {
	t.Helper()

	idx, err := Build(
		[]string{
			"Stardew Valley farming sim cozy",
			"Dark Souls punishing boss rush",
		},
		[]int64{100, 200},
	)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}
	return idx
}

func TestSearch_RanksRelevantDocumentFirst(t *testing.T) {
	idx := buildTestIndex(t)

	hits := idx.Search("cozy farming", 10)
	if len(hits) == 0 {
		t.Fatal("expected at least one hit")
	}

	if hits[0].AppID != 100 {
		t.Errorf("top hit appid = %d, want 100", hits[0].AppID)
	}
	if hits[0].Score <= 0 {
		t.Errorf("top hit score = %f, want > 0", hits[0].Score)
	}
	for _, h := range hits[1:] {
		if h.AppID == 200 && h.Score >= hits[0].Score {
			t.Errorf("id 200 scored %f, should rank below id 100 at %f", h.Score, hits[0].Score)
		}
	}
}

func TestSearch_EmptyQueryAndUnknownTerms(t *testing.T) {
	idx := buildTestIndex(t)

	tests := []struct {
		name  string
		query string
	}{
		{"empty query", ""},
		{"whitespace query", "   "},
		{"only stopwords", "the of and"},
		{"unknown vocabulary", "zzgobbledygook qqxyzzy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if hits := idx.Search(tt.query, 10); len(hits) != 0 {
				t.Errorf("Search(%q) returned %d hits, want 0", tt.query, len(hits))
			}
		})
	}
}

func TestSearch_ScoreBounds(t *testing.T) {
	idx := buildTestIndex(t)

	const epsilon = 1e-9
	for _, query := range []string{"cozy", "farming sim", "boss rush souls", "stardew valley farming sim cozy"} {
		for _, h := range idx.Search(query, 10) {
			if h.Score < 0 || h.Score > 1+epsilon {
				t.Errorf("Search(%q): score %f outside [0, 1+eps]", query, h.Score)
			}
		}
	}
}

func TestSearch_SelfQueryScoresNearOne(t *testing.T) {
	idx := buildTestIndex(t)

	hits := idx.Search("Stardew Valley farming sim cozy", 1)
	if len(hits) != 1 {
		t.Fatalf("got %d hits, want 1", len(hits))
	}
	if hits[0].Score < 0.99 {
		t.Errorf("self-query cosine = %f, want ~1.0", hits[0].Score)
	}
}

func TestSearch_TopKTruncation(t *testing.T) {
	docs := make([]string, 10)
	ids := make([]int64, 10)
	for i := range docs {
		docs[i] = "shared roguelike dungeon"
		ids[i] = int64(i + 1)
	}
	idx, err := Build(docs, ids)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	hits := idx.Search("roguelike", 3)
	if len(hits) != 3 {
		t.Fatalf("got %d hits, want 3", len(hits))
	}

	// Identical scores break ties by ascending doc id.
	for i := 0; i < len(hits); i++ {
		if hits[i].DocID != i {
			t.Errorf("hit %d has doc id %d, want %d (ascending tie-break)", i, hits[i].DocID, i)
		}
	}
}

func TestSearch_Deterministic(t *testing.T) {
	idx := buildTestIndex(t)

	first := idx.Search("cozy farming boss", 10)
	for i := 0; i < 20; i++ {
		got := idx.Search("cozy farming boss", 10)
		if !reflect.DeepEqual(got, first) {
			t.Fatalf("search not deterministic on run %d:\n got %+v\nwant %+v", i, got, first)
		}
	}
}

func TestSearch_WhyTerms(t *testing.T) {
	idx := buildTestIndex(t)

	hits := idx.Search("cozy farming sim valley", 10)
	if len(hits) == 0 {
		t.Fatal("expected hits")
	}

	top := hits[0]
	if len(top.Why) == 0 || len(top.Why) > 3 {
		t.Fatalf("why terms = %d, want 1..3", len(top.Why))
	}

	for i := 1; i < len(top.Why); i++ {
		if top.Why[i].Contribution > top.Why[i-1].Contribution {
			t.Errorf("why terms not sorted descending at position %d", i)
		}
	}

	for _, w := range top.Why {
		if idx.Term(w.TermID) == "" {
			t.Errorf("why term id %d does not resolve to display text", w.TermID)
		}
		if w.Contribution <= 0 {
			t.Errorf("why term %q contribution = %f, want > 0", idx.Term(w.TermID), w.Contribution)
		}
	}
}

func TestSearch_QueryTermFrequencyMatters(t *testing.T) {
	idx, err := Build(
		[]string{"cozy cozy cozy farming", "cozy boss"},
		[]int64{1, 2},
	)
	if err != nil {
		t.Fatalf("Build returned error: %v", err)
	}

	single := idx.Search("cozy", 10)
	repeated := idx.Search("cozy cozy", 10)

	if len(single) != len(repeated) {
		t.Fatalf("hit counts differ: %d vs %d", len(single), len(repeated))
	}
	// Cosine normalization cancels a uniform query scaling, so ordering
	// must be identical.
	for i := range single {
		if single[i].AppID != repeated[i].AppID {
			t.Errorf("ordering changed under repeated query term at position %d", i)
		}
	}
}
