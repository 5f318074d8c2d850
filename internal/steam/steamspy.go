// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package steam

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/playpick/playpick/internal/config"
)

// AppDetails is the SteamSpy appdetails payload for one game. Tags arrive
// as a tag -> vote-count object.
type AppDetails struct {
	AppID          int64          `json:"appid"`
	Name           string         `json:"name"`
	Developer      string         `json:"developer"`
	Publisher      string         `json:"publisher"`
	Positive       int            `json:"positive"`
	Negative       int            `json:"negative"`
	AverageForever int            `json:"average_forever"` // minutes
	Average2Weeks  int            `json:"average_2weeks"`
	Price          string         `json:"price"` // cents, as a string
	Genre          string         `json:"genre"` // comma separated
	Tags           map[string]int `json:"tags"`
}

// SpyClient talks to SteamSpy with a rate limiter and a circuit breaker.
// SteamSpy allows one request per second; the limiter enforces that across
// all callers, and the breaker stops hammering the service when it is down.
type SpyClient struct {
	baseURL string
	http    *http.Client
	limiter *rate.Limiter
	cb      *gobreaker.CircuitBreaker[*AppDetails]
	logger  zerolog.Logger
}

// NewSpyClient creates a SteamSpy client from configuration.
func NewSpyClient(cfg *config.SteamConfig, logger zerolog.Logger) *SpyClient {
	componentLogger := logger.With().Str("component", "steamspy").Logger()

	cb := gobreaker.NewCircuitBreaker[*AppDetails](gobreaker.Settings{
		Name:        "steamspy-api",
		MaxRequests: 1,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return failureRatio >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			componentLogger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker state transition")
		},
	})

	return &SpyClient{
		baseURL: cfg.SteamSpyBaseURL,
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.SteamSpyRatePerSec), 1),
		cb:      cb,
		logger:  componentLogger,
	}
}

// AppDetails fetches SteamSpy's appdetails for one game. The call blocks on
// the rate limiter first, so a batch of calls naturally spreads out to the
// allowed rate.
func (c *SpyClient) AppDetails(ctx context.Context, appID int64) (*AppDetails, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	details, err := c.cb.Execute(func() (*AppDetails, error) {
		return c.fetchAppDetails(ctx, appID)
	})
	if err != nil {
		return nil, fmt.Errorf("steamspy appdetails %d: %w", appID, err)
	}
	return details, nil
}

func (c *SpyClient) fetchAppDetails(ctx context.Context, appID int64) (*AppDetails, error) {
	params := url.Values{
		"request": {"appdetails"},
		"appid":   {strconv.FormatInt(appID, 10)},
	}
	reqURL := c.baseURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	var details AppDetails
	if err := json.NewDecoder(resp.Body).Decode(&details); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if details.AppID == 0 {
		details.AppID = appID
	}
	return &details, nil
}
