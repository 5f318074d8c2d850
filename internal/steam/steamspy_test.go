// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package steam

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/playpick/playpick/internal/logging"
)

func TestSpyAppDetails(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("request") != "appdetails" {
			t.Errorf("request param = %s", r.URL.Query().Get("request"))
		}
		if r.URL.Query().Get("appid") != "413150" {
			t.Errorf("appid param = %s", r.URL.Query().Get("appid"))
		}
		_, _ = w.Write([]byte(`{
			"appid": 413150,
			"name": "Stardew Valley",
			"developer": "ConcernedApe",
			"positive": 500000,
			"negative": 5000,
			"average_forever": 3120,
			"genre": "Indie, RPG, Simulation",
			"tags": {"Farming Sim": 4000, "Relaxing": 3500, "Co-op": 2000}
		}`))
	}))
	defer srv.Close()

	client := NewSpyClient(testSteamConfig(srv.URL), logging.NewTestLogger(io.Discard))
	details, err := client.AppDetails(context.Background(), 413150)
	if err != nil {
		t.Fatalf("AppDetails: %v", err)
	}
	if details.Name != "Stardew Valley" || details.AverageForever != 3120 {
		t.Errorf("details = %+v", details)
	}
	if details.Tags["Relaxing"] != 3500 {
		t.Errorf("tags = %v", details.Tags)
	}
}

func TestSpyAppDetailsFillsAppID(t *testing.T) {
	// Some SteamSpy responses omit appid; the client backfills it.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"name": "Mystery Game"}`))
	}))
	defer srv.Close()

	client := NewSpyClient(testSteamConfig(srv.URL), logging.NewTestLogger(io.Discard))
	details, err := client.AppDetails(context.Background(), 7)
	if err != nil {
		t.Fatalf("AppDetails: %v", err)
	}
	if details.AppID != 7 {
		t.Errorf("appid = %d, want backfilled 7", details.AppID)
	}
}

func TestSpyRateLimiterSpacesRequests(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"appid": 1, "name": "g"}`))
	}))
	defer srv.Close()

	cfg := testSteamConfig(srv.URL)
	cfg.SteamSpyRatePerSec = 20 // 50ms spacing keeps the test fast
	client := NewSpyClient(cfg, logging.NewTestLogger(io.Discard))

	start := time.Now()
	for i := 0; i < 3; i++ {
		if _, err := client.AppDetails(context.Background(), 1); err != nil {
			t.Fatalf("AppDetails %d: %v", i, err)
		}
	}
	elapsed := time.Since(start)

	if calls.Load() != 3 {
		t.Errorf("calls = %d, want 3", calls.Load())
	}
	// Three calls at 20 req/s need at least two 50ms waits.
	if elapsed < 100*time.Millisecond {
		t.Errorf("elapsed = %s, want >= 100ms of rate limiting", elapsed)
	}
}

func TestSpyBreakerOpensOnRepeatedFailure(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewSpyClient(testSteamConfig(srv.URL), logging.NewTestLogger(io.Discard))

	// Enough failures to trip the breaker (>= 5 requests at 100% failure).
	for i := 0; i < 6; i++ {
		if _, err := client.AppDetails(context.Background(), 1); err == nil {
			t.Fatalf("call %d unexpectedly succeeded", i)
		}
	}

	upstream := calls.Load()
	// With the breaker open, further calls fail fast without reaching the
	// server.
	if _, err := client.AppDetails(context.Background(), 1); err == nil {
		t.Fatal("call with open breaker succeeded")
	}
	if calls.Load() != upstream {
		t.Errorf("open breaker still reached upstream (%d -> %d calls)", upstream, calls.Load())
	}
}
