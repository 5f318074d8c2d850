// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router builds the HTTP routing tree for a handler set.
func Router(h *Handler) http.Handler {
	r := chi.NewRouter()

	r.Use(RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(RequestLogger())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(Metrics())

		r.Post("/search", h.Search)
		r.Post("/recommend", h.Recommend)
		r.Post("/recommend/feedback", h.Feedback)
		r.Post("/steam/sync", h.SteamSync)

		r.Get("/health", h.Health)

		r.Route("/admin", func(r chi.Router) {
			r.Post("/reindex", h.Reindex)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	return r
}
