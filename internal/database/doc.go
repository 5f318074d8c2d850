// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

// Package database provides DuckDB-backed persistence for the catalog,
// library, Steam profile, preference, feedback and context-log tables.
//
// The DB type implements the narrow store interfaces declared by the
// recommend and search packages. Schema creation happens at open and is
// idempotent. Preference genre weights are stored as a JSON blob; the
// feedback write path is a single transaction so the event append and the
// preference update succeed or fail together.
package database
