// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package search

import "strings"

// minTokenLength is the shortest token kept by Tokenize.
const minTokenLength = 2

// stopwords are common English terms excluded from the vocabulary.
// The same set applies at index-build time and at query time.
var stopwords = map[string]struct{}{
	"the": {}, "a": {}, "an": {}, "and": {}, "or": {}, "to": {}, "of": {},
	"in": {}, "on": {}, "for": {}, "with": {}, "as": {}, "is": {}, "are": {},
	"be": {}, "by": {}, "at": {}, "from": {}, "this": {}, "that": {},
	"it": {}, "its": {}, "you": {}, "your": {}, "we": {}, "our": {},
	"they": {}, "their": {}, "i": {}, "me": {}, "my": {},
}

// Tokenize normalizes text into lowercase alphanumeric tokens.
//
// Tokens are maximal runs of [a-z0-9] after lowercasing. Tokens shorter than
// two characters and stopwords are dropped. The function is pure: identical
// input always yields the identical token sequence, and empty input yields
// an empty sequence.
//
// Indexing and querying must use this exact function; any divergence makes
// vocabulary lookups silently miss valid matches.
func Tokenize(text string) []string {
	if text == "" {
		return nil
	}

	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isAlphanumeric(r)
	})

	tokens := fields[:0]
	for _, tok := range fields {
		if len(tok) < minTokenLength {
			continue
		}
		if _, stop := stopwords[tok]; stop {
			continue
		}
		tokens = append(tokens, tok)
	}

	return tokens
}

func isAlphanumeric(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
}
