// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

// Package search implements the TF-IDF inverted index over the game catalog.
//
// The index is built wholesale from the catalog's document column and is
// immutable once built. Searches rank documents by cosine similarity between
// the query vector and document vectors, and report the top contributing
// terms per hit so callers can explain why a result matched.
//
// # Weighting
//
// Term weights use sublinear term frequency with smoothed inverse document
// frequency:
//
//	idf(t)       = ln((N+1)/(df(t)+1)) + 1
//	weight(t, d) = (1 + ln(tf(t, d))) * idf(t)
//
// Document norms are the L2 norms of the weight vectors, floored to 1.0 for
// empty documents so cosine normalization never divides by zero.
//
// # Concurrency
//
// A built Index is a read-only snapshot safe for unlimited concurrent
// searches. Manager holds the active snapshot behind an atomic pointer and
// swaps it wholesale on rebuild; in-flight searches against the old snapshot
// run to completion unaffected.
//
// # Persistence
//
// Snapshots serialize to a single gob+gzip blob with a SHA-256 checksum.
// Corrupt or truncated blobs fail loading with ErrCorruptIndex rather than
// producing a partial index.
package search
