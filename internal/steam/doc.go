// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

// Package steam wraps the two upstream data sources: the Steam Web API
// (library sync, player summaries, friends online) and SteamSpy (catalog
// metadata for enrichment). The SteamSpy client is rate limited to the one
// request per second the service asks for and guarded by a circuit breaker.
package steam
