// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

// Package recommend implements the personalized recommendation core: the
// candidate generator, the multi-factor scorer, and the online preference
// learner.
//
// Candidates are the user's library entries joined with catalog metadata and
// filtered by platform support. Each candidate is scored by a fixed additive
// feature set (time fit, energy/difficulty fit, social fit, genre
// preference, comfort bias, novelty, recency) together with up to three
// human-readable reasons, collected in feature evaluation order.
//
// The preference learner reacts to accept/reject/click feedback by nudging
// per-genre weights and a comfort-bias scalar. It is a hand-specified
// additive update rule, not a trained model: no decay, no cross-genre
// normalization, weights clamped to [-3, 5] and bias to [-1, 2].
//
// Genre normalization here and document tokenization in the search package
// share the same lowercasing discipline, so learned genre keys line up with
// catalog genre strings regardless of upstream capitalization.
//
// The package defines narrow store interfaces for its data dependencies and
// has no dependency on the database package, mirroring the separation the
// rest of the codebase uses.
package recommend
