// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

// Package enrichment fills the game catalog from SteamSpy.
//
// After a library sync, games the catalog has never seen are enqueued as a
// batch of tasks on an in-process watermill queue. A single worker drains
// the queue at SteamSpy's allowed rate, infers the derived fields the
// recommendation scorer needs (difficulty, multiplayer mode, expected
// session length) and builds the search document for each game. When a
// batch finishes, a rebuild trigger tells the index manager to pick up the
// new rows. Nothing here runs on the request path.
package enrichment
