// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/playpick/playpick/internal/metrics"
	"github.com/playpick/playpick/internal/models"
	"github.com/playpick/playpick/internal/search"
)

// SearchRequest is the POST /api/v1/search payload.
type SearchRequest struct {
	Query string `json:"query"`
	TopK  int    `json:"topk,omitempty"`
}

// WhyTerm is one query term's contribution to a result, resolved to its
// display text.
type WhyTerm struct {
	Term         string  `json:"term"`
	Contribution float64 `json:"contribution"`
}

// SearchResult is one ranked hit joined with catalog metadata.
type SearchResult struct {
	AppID       int64     `json:"appid"`
	Name        string    `json:"name"`
	Score       float64   `json:"score"`
	Genres      string    `json:"genres,omitempty"`
	HeaderImage string    `json:"header_image,omitempty"`
	Why         []WhyTerm `json:"why"`
}

// SearchResponse is the POST /api/v1/search response payload.
type SearchResponse struct {
	Query   string         `json:"query"`
	Tokens  []string       `json:"tokens"`
	Results []SearchResult `json:"results"`
}

// Search handles POST /api/v1/search. An empty query is rejected; a query
// with no vocabulary matches returns an empty result set, which is not an
// error.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req SearchRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidInput, "Malformed request body", err)
		return
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		respondError(w, http.StatusBadRequest, models.ErrCodeInvalidInput, "Query must not be empty", nil)
		return
	}

	topK := req.TopK
	if topK == 0 {
		topK = h.search.DefaultTopK
	}
	if topK < 1 {
		topK = 1
	}
	if topK > h.search.MaxTopK {
		topK = h.search.MaxTopK
	}

	idx := h.index.Current()
	hits := idx.Search(query, topK)
	metrics.RecordSearchQuery(time.Since(start))

	results := make([]SearchResult, 0, len(hits))
	if len(hits) > 0 {
		appIDs := make([]int64, len(hits))
		for i, hit := range hits {
			appIDs[i] = hit.AppID
		}
		entries, err := h.db.GetBulk(r.Context(), appIDs)
		if err != nil {
			respondError(w, http.StatusInternalServerError, models.ErrCodeInternal, "Failed to load result metadata", err)
			return
		}

		for _, hit := range hits {
			result := SearchResult{
				AppID: hit.AppID,
				Score: hit.Score,
				Why:   make([]WhyTerm, 0, len(hit.Why)),
			}
			for _, why := range hit.Why {
				result.Why = append(result.Why, WhyTerm{
					Term:         idx.Term(why.TermID),
					Contribution: why.Contribution,
				})
			}
			if entry, ok := entries[hit.AppID]; ok {
				result.Name = entry.Name
				result.Genres = entry.Genres
				result.HeaderImage = entry.HeaderImage
			}
			results = append(results, result)
		}
	}

	respondSuccess(w, http.StatusOK, &SearchResponse{
		Query:   query,
		Tokens:  tokensOf(query),
		Results: results,
	}, start)
}

// tokensOf echoes the analyzed query tokens, never null in JSON.
func tokensOf(query string) []string {
	tokens := search.Tokenize(query)
	if tokens == nil {
		return []string{}
	}
	return tokens
}
