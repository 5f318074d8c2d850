// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

// Package api provides the HTTP surface: Chi routing, request middleware
// and the JSON handlers for search, recommendations, feedback, library
// sync and the admin endpoints.
//
// Authentication is out of scope at this boundary. Requests carry the
// acting user in the X-User-ID header; a fronting proxy is expected to
// have established identity before traffic reaches this service.
package api
