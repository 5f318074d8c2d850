// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package models

import (
	"time"
)

// APIResponse is the standardized response wrapper used by all HTTP
// endpoints. It provides a consistent structure for both successful and
// error responses.
//
// Status field values:
//   - "success": Request completed successfully, see Data field
//   - "error": Request failed, see Error field for details
type APIResponse struct {
	Status   string      `json:"status"`
	Data     interface{} `json:"data"`
	Metadata Metadata    `json:"metadata"`
	Error    *APIError   `json:"error,omitempty"`
}

// Metadata contains response metadata for observability.
type Metadata struct {
	Timestamp   time.Time `json:"timestamp"`
	QueryTimeMS int64     `json:"query_time_ms,omitempty"`
}

// APIError represents an error response with a stable machine-readable code.
type APIError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// Stable error codes returned by the API.
//
//   - ErrCodeInvalidInput: caller's fault (enum or range violation); the
//     request is rejected with no state mutated.
//   - ErrCodeNotFound: missing profile or binding; recoverable with external
//     remediation (link a profile, sync the library).
//   - ErrCodeUpstreamUnavailable: an external fetch failed; the request
//     fails cleanly with no partial commit.
//   - ErrCodeDataIntegrity: index array-length mismatch or corrupt persisted
//     blob; fatal to the operation, never silently repaired.
//
// A valid empty result (no hits, no eligible candidates) is not an error and
// uses none of these codes.
const (
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeUpstreamUnavailable = "UPSTREAM_UNAVAILABLE"
	ErrCodeDataIntegrity       = "DATA_INTEGRITY"
	ErrCodeInternal            = "INTERNAL_ERROR"
)
