// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/playpick/playpick/internal/models"
)

// seedIndex rebuilds the manager's snapshot from the fake document source.
func seedIndex(t *testing.T, d *testDeps) {
	t.Helper()
	if err := d.index.Rebuild(context.Background(), d.docs); err != nil {
		t.Fatalf("seed index: %v", err)
	}
}

func TestSearchRejectsEmptyQuery(t *testing.T) {
	d := newTestDeps()
	h := d.handler()

	for _, query := range []string{"", "   ", "\t\n"} {
		rec, env := doRequest(t, h, http.MethodPost, "/api/v1/search", "", SearchRequest{Query: query})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %q: status = %d, want 400", query, rec.Code)
		}
		if env.Error == nil || env.Error.Code != models.ErrCodeInvalidInput {
			t.Errorf("query %q: error = %+v, want code %s", query, env.Error, models.ErrCodeInvalidInput)
		}
	}
}

func TestSearchJoinsCatalogAndResolvesTerms(t *testing.T) {
	d := newTestDeps()
	d.docs.appIDs = []int64{100, 200}
	d.docs.docs = []string{
		"Cozy Farm\nSimulation\nfarming relaxing",
		"Soul Crusher\nAction\ndifficult souls-like",
	}
	d.store.catalog = map[int64]models.CatalogEntry{
		100: {AppID: 100, Name: "Cozy Farm", Genres: "Simulation", HeaderImage: "http://img/100.jpg"},
		200: {AppID: 200, Name: "Soul Crusher", Genres: "Action"},
	}
	h := d.handler()
	seedIndex(t, d)

	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/search", "", SearchRequest{Query: "cozy farming"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %q)", rec.Code, rec.Body.String())
	}

	var resp SearchResponse
	decodeData(t, env, &resp)

	if len(resp.Results) != 1 {
		t.Fatalf("results = %d, want 1", len(resp.Results))
	}
	hit := resp.Results[0]
	if hit.AppID != 100 || hit.Name != "Cozy Farm" || hit.Genres != "Simulation" {
		t.Errorf("unexpected hit: %+v", hit)
	}
	if hit.HeaderImage != "http://img/100.jpg" {
		t.Errorf("HeaderImage = %q", hit.HeaderImage)
	}
	if len(hit.Why) == 0 {
		t.Fatal("hit has no term explanations")
	}
	for _, why := range hit.Why {
		if why.Term == "" {
			t.Errorf("term id not resolved to text: %+v", why)
		}
		if why.Contribution <= 0 {
			t.Errorf("non-positive contribution: %+v", why)
		}
	}

	want := []string{"cozy", "farming"}
	if len(resp.Tokens) != len(want) {
		t.Fatalf("tokens = %v, want %v", resp.Tokens, want)
	}
	for i, tok := range want {
		if resp.Tokens[i] != tok {
			t.Errorf("token[%d] = %q, want %q", i, resp.Tokens[i], tok)
		}
	}
}

func TestSearchNoMatchesIsEmptySuccess(t *testing.T) {
	d := newTestDeps()
	d.docs.appIDs = []int64{100}
	d.docs.docs = []string{"Cozy Farm\nSimulation"}
	h := d.handler()
	seedIndex(t, d)

	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/search", "", SearchRequest{Query: "zzzz qqqq"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if env.Status != "success" {
		t.Errorf("status = %q, want success", env.Status)
	}

	var resp SearchResponse
	decodeData(t, env, &resp)
	if len(resp.Results) != 0 {
		t.Errorf("results = %d, want 0", len(resp.Results))
	}
}

func TestSearchTopKClamp(t *testing.T) {
	d := newTestDeps()
	appIDs := make([]int64, 60)
	docs := make([]string, 60)
	for i := range docs {
		appIDs[i] = int64(i + 1)
		docs[i] = "shared adventure quest"
	}
	d.docs.appIDs = appIDs
	d.docs.docs = docs
	h := d.handler()
	seedIndex(t, d)

	tests := []struct {
		name string
		topK int
		want int
	}{
		{"default applies", 0, 10},
		{"negative clamps to one", -3, 1},
		{"above max clamps to max", 500, 50},
		{"explicit within range", 25, 25},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec, env := doRequest(t, h, http.MethodPost, "/api/v1/search", "", SearchRequest{Query: "adventure", TopK: tc.topK})
			if rec.Code != http.StatusOK {
				t.Fatalf("status = %d, want 200", rec.Code)
			}
			var resp SearchResponse
			decodeData(t, env, &resp)
			if len(resp.Results) != tc.want {
				t.Errorf("results = %d, want %d", len(resp.Results), tc.want)
			}
		})
	}
}

func TestSearchMalformedBody(t *testing.T) {
	d := newTestDeps()
	h := d.handler()

	rec, env := doRequest(t, h, http.MethodPost, "/api/v1/search", "", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if env.Error == nil || env.Error.Code != models.ErrCodeInvalidInput {
		t.Errorf("error = %+v, want code %s", env.Error, models.ErrCodeInvalidInput)
	}
}
