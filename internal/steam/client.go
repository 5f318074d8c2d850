// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package steam

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/playpick/playpick/internal/config"
)

// ErrNoAPIKey is returned when an operation needs the Steam Web API but no
// key is configured.
var ErrNoAPIKey = errors.New("steam api key not configured")

// OwnedGame is one row from IPlayerService/GetOwnedGames.
type OwnedGame struct {
	AppID           int64  `json:"appid"`
	Name            string `json:"name"`
	PlaytimeForever int    `json:"playtime_forever"`
	Playtime2Weeks  int    `json:"playtime_2weeks"`
	RTimeLastPlayed int64  `json:"rtime_last_played"`
}

// PlayerSummary is one row from ISteamUser/GetPlayerSummaries.
type PlayerSummary struct {
	SteamID      string `json:"steamid"`
	PersonaName  string `json:"personaname"`
	Avatar       string `json:"avatarfull"`
	PersonaState int    `json:"personastate"` // 0 = offline
}

// Client talks to the Steam Web API. A private profile yields empty results
// rather than an error, matching the API's own behavior.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
	logger  zerolog.Logger
}

// NewClient creates a Steam Web API client from configuration.
func NewClient(cfg *config.SteamConfig, logger zerolog.Logger) *Client {
	return &Client{
		apiKey:  cfg.APIKey,
		baseURL: strings.TrimSuffix(cfg.APIBaseURL, "/"),
		http:    &http.Client{Timeout: cfg.RequestTimeout},
		logger:  logger.With().Str("component", "steam").Logger(),
	}
}

// GetOwnedGames returns the user's game library with playtimes. An empty
// slice with no error means the profile is private or the library is empty.
func (c *Client) GetOwnedGames(ctx context.Context, steamID string) ([]OwnedGame, error) {
	var payload struct {
		Response struct {
			GameCount int         `json:"game_count"`
			Games     []OwnedGame `json:"games"`
		} `json:"response"`
	}

	params := url.Values{
		"steamid":                   {steamID},
		"include_appinfo":           {"1"},
		"include_played_free_games": {"1"},
	}
	if err := c.get(ctx, "/IPlayerService/GetOwnedGames/v1/", params, &payload); err != nil {
		return nil, fmt.Errorf("get owned games for %s: %w", steamID, err)
	}

	return payload.Response.Games, nil
}

// GetPlayerSummary returns the public profile for one Steam identity, or
// (nil, nil) when the identity is unknown.
func (c *Client) GetPlayerSummary(ctx context.Context, steamID string) (*PlayerSummary, error) {
	summaries, err := c.getPlayerSummaries(ctx, []string{steamID})
	if err != nil {
		return nil, fmt.Errorf("get player summary for %s: %w", steamID, err)
	}
	if len(summaries) == 0 {
		return nil, nil
	}
	return &summaries[0], nil
}

// FriendsOnline returns how many of the user's friends are currently
// online. A private friend list counts as zero friends online.
func (c *Client) FriendsOnline(ctx context.Context, steamID string) (int, error) {
	var payload struct {
		FriendsList struct {
			Friends []struct {
				SteamID string `json:"steamid"`
			} `json:"friends"`
		} `json:"friendslist"`
	}

	params := url.Values{
		"steamid":      {steamID},
		"relationship": {"friend"},
	}
	if err := c.get(ctx, "/ISteamUser/GetFriendList/v1/", params, &payload); err != nil {
		return 0, fmt.Errorf("get friend list for %s: %w", steamID, err)
	}

	friends := payload.FriendsList.Friends
	if len(friends) == 0 {
		return 0, nil
	}

	// GetPlayerSummaries accepts at most 100 ids per call.
	online := 0
	for start := 0; start < len(friends); start += 100 {
		end := min(start+100, len(friends))
		ids := make([]string, 0, end-start)
		for _, f := range friends[start:end] {
			ids = append(ids, f.SteamID)
		}

		summaries, err := c.getPlayerSummaries(ctx, ids)
		if err != nil {
			return 0, fmt.Errorf("get friend summaries for %s: %w", steamID, err)
		}
		for _, s := range summaries {
			if s.PersonaState > 0 {
				online++
			}
		}
	}

	return online, nil
}

func (c *Client) getPlayerSummaries(ctx context.Context, steamIDs []string) ([]PlayerSummary, error) {
	var payload struct {
		Response struct {
			Players []PlayerSummary `json:"players"`
		} `json:"response"`
	}

	params := url.Values{"steamids": {strings.Join(steamIDs, ",")}}
	if err := c.get(ctx, "/ISteamUser/GetPlayerSummaries/v2/", params, &payload); err != nil {
		return nil, err
	}
	return payload.Response.Players, nil
}

// get performs one authenticated Web API request and decodes the JSON body
// into out.
func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	if c.apiKey == "" {
		return ErrNoAPIKey
	}
	params.Set("key", c.apiKey)

	reqURL := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, path)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
