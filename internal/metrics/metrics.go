// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

// Package metrics provides the Prometheus instrumentation for the HTTP API,
// the search index, the recommendation engine and the enrichment worker.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API endpoint metrics.
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "endpoint"},
	)

	// Search metrics.
	SearchQueriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "search_queries_total",
			Help: "Total number of search queries executed",
		},
	)

	SearchQueryDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_query_duration_seconds",
			Help:    "Search query duration in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		},
	)

	IndexDocuments = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "search_index_documents",
			Help: "Number of documents in the active search index",
		},
	)

	IndexVocabulary = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "search_index_vocabulary_terms",
			Help: "Number of terms in the active index vocabulary",
		},
	)

	IndexRebuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "search_index_rebuilds_total",
			Help: "Total number of index rebuilds",
		},
		[]string{"outcome"}, // "success" or "failure"
	)

	IndexRebuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "search_index_rebuild_duration_seconds",
			Help:    "Index rebuild duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 15, 60},
		},
	)

	// Recommendation metrics.
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendations_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"outcome"}, // "success", "not_bound", "no_library", "invalid", "error"
	)

	FeedbackEventsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "feedback_events_total",
			Help: "Total number of feedback events applied",
		},
		[]string{"action"},
	)

	// Enrichment metrics.
	EnrichmentTasksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "enrichment_tasks_total",
			Help: "Total number of catalog enrichment tasks processed",
		},
		[]string{"outcome"}, // "success" or "failure"
	)

	EnrichmentQueueDepth = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "enrichment_queue_depth",
			Help: "Number of enrichment tasks currently queued",
		},
	)

	// Library sync metrics.
	SyncGamesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "sync_games_total",
			Help: "Total number of library rows written during sync",
		},
	)

	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "sync_duration_seconds",
			Help:    "Library sync duration in seconds",
			Buckets: []float64{0.1, 0.5, 1, 5, 10, 30, 60},
		},
	)
)

// RecordAPIRequest records one completed HTTP request.
func RecordAPIRequest(method, endpoint string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordSearchQuery records one executed search.
func RecordSearchQuery(duration time.Duration) {
	SearchQueriesTotal.Inc()
	SearchQueryDuration.Observe(duration.Seconds())
}

// RecordIndexRebuild records one rebuild attempt and, on success, the new
// index dimensions.
func RecordIndexRebuild(docs, vocab int, duration time.Duration, err error) {
	if err != nil {
		IndexRebuildsTotal.WithLabelValues("failure").Inc()
		return
	}
	IndexRebuildsTotal.WithLabelValues("success").Inc()
	IndexRebuildDuration.Observe(duration.Seconds())
	IndexDocuments.Set(float64(docs))
	IndexVocabulary.Set(float64(vocab))
}
