// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package api

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/playpick/playpick/internal/config"
	"github.com/playpick/playpick/internal/models"
	"github.com/playpick/playpick/internal/recommend"
	"github.com/playpick/playpick/internal/search"
	"github.com/playpick/playpick/internal/steam"
)

type fakeStore struct {
	pingErr error

	catalog  map[int64]models.CatalogEntry
	profiles map[int64]*models.SteamProfile

	upsertedStats   []models.LibraryStat
	upsertedProfile *models.SteamProfile
	touchedUser     int64

	upsertStatsErr error
	profileErr     error
}

func (s *fakeStore) Ping(context.Context) error { return s.pingErr }

func (s *fakeStore) GetCatalogEntry(_ context.Context, appID int64) (*models.CatalogEntry, error) {
	if entry, ok := s.catalog[appID]; ok {
		return &entry, nil
	}
	return nil, nil
}

func (s *fakeStore) GetBulk(_ context.Context, appIDs []int64) (map[int64]models.CatalogEntry, error) {
	out := make(map[int64]models.CatalogEntry)
	for _, id := range appIDs {
		if entry, ok := s.catalog[id]; ok {
			out[id] = entry
		}
	}
	return out, nil
}

func (s *fakeStore) MissingFromCatalog(_ context.Context, ownedAppIDs []int64) ([]int64, error) {
	var missing []int64
	for _, id := range ownedAppIDs {
		if _, ok := s.catalog[id]; !ok {
			missing = append(missing, id)
		}
	}
	return missing, nil
}

func (s *fakeStore) GetProfile(_ context.Context, userID int64) (*models.SteamProfile, error) {
	if s.profileErr != nil {
		return nil, s.profileErr
	}
	return s.profiles[userID], nil
}

func (s *fakeStore) UpsertProfile(_ context.Context, profile *models.SteamProfile) error {
	s.upsertedProfile = profile
	return nil
}

func (s *fakeStore) TouchProfileSync(_ context.Context, userID, _ int64) error {
	s.touchedUser = userID
	return nil
}

func (s *fakeStore) UpsertLibraryStats(_ context.Context, stats []models.LibraryStat) error {
	if s.upsertStatsErr != nil {
		return s.upsertStatsErr
	}
	s.upsertedStats = stats
	return nil
}

type fakeEngine struct {
	result *recommend.Result
	err    error
}

func (e *fakeEngine) Recommend(context.Context, int64, recommend.Request) (*recommend.Result, error) {
	return e.result, e.err
}

type fakeLearner struct {
	userID  int64
	appID   int64
	action  models.FeedbackAction
	genres  string
	err     error
	applied int
}

func (l *fakeLearner) OnFeedback(_ context.Context, userID, appID int64, action models.FeedbackAction, genres, _ string) error {
	if l.err != nil {
		return l.err
	}
	l.userID = userID
	l.appID = appID
	l.action = action
	l.genres = genres
	l.applied++
	return nil
}

type fakeSteam struct {
	owned    []steam.OwnedGame
	ownedErr error
	summary  *steam.PlayerSummary
}

func (c *fakeSteam) GetOwnedGames(context.Context, string) ([]steam.OwnedGame, error) {
	return c.owned, c.ownedErr
}

func (c *fakeSteam) GetPlayerSummary(context.Context, string) (*steam.PlayerSummary, error) {
	return c.summary, nil
}

type fakeEnqueuer struct {
	enqueued []int64
	err      error
}

func (q *fakeEnqueuer) EnqueueBatch(appIDs []int64) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	q.enqueued = appIDs
	return "batch-test", nil
}

type fakeDocSource struct {
	appIDs []int64
	docs   []string
}

func (s *fakeDocSource) EnumerateDocuments(context.Context) ([]int64, []string, error) {
	return s.appIDs, s.docs, nil
}

type testDeps struct {
	store    *fakeStore
	index    *search.Manager
	docs     *fakeDocSource
	engine   *fakeEngine
	learner  *fakeLearner
	steam    *fakeSteam
	enqueuer *fakeEnqueuer
}

func newTestDeps() *testDeps {
	return &testDeps{
		store:    &fakeStore{catalog: map[int64]models.CatalogEntry{}, profiles: map[int64]*models.SteamProfile{}},
		index:    search.NewManager("", zerolog.Nop()),
		docs:     &fakeDocSource{},
		engine:   &fakeEngine{},
		learner:  &fakeLearner{},
		steam:    &fakeSteam{},
		enqueuer: &fakeEnqueuer{},
	}
}

func (d *testDeps) handler() http.Handler {
	h := NewHandler(
		d.store,
		d.index,
		d.docs,
		d.engine,
		d.learner,
		d.steam,
		d.enqueuer,
		config.SearchConfig{SnapshotPath: "", DefaultTopK: 10, MaxTopK: 50},
		zerolog.Nop(),
	)
	return Router(h)
}

type envelope struct {
	Status string           `json:"status"`
	Data   json.RawMessage  `json:"data"`
	Error  *models.APIError `json:"error"`
}

// doRequest runs one request through the full router and decodes the
// response envelope.
func doRequest(t *testing.T, h http.Handler, method, path, userID string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode request body: %v", err)
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set(userIDHeader, userID)
	}

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode response envelope: %v (body %q)", err, rec.Body.String())
	}
	return rec, env
}

func decodeData(t *testing.T, env envelope, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(env.Data, dst); err != nil {
		t.Fatalf("decode response data: %v", err)
	}
}
