// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package search

import (
	"math"
	"sort"
)

// maxWhyTerms caps the per-hit explanation length.
const maxWhyTerms = 3

// TermContribution records one query term's share of a hit's dot product.
type TermContribution struct {
	// TermID identifies the term in the index vocabulary.
	TermID int `json:"term_id"`

	// Contribution is queryWeight * docWeight for this term and document.
	Contribution float64 `json:"contribution"`
}

// Hit is a single ranked search result.
type Hit struct {
	// AppID is the external game id of the matched document.
	AppID int64 `json:"appid"`

	// DocID is the internal document id.
	DocID int `json:"doc_id"`

	// Score is the cosine similarity between query and document vectors.
	// All weights are non-negative so the score lies in [0, 1] up to
	// floating point error.
	Score float64 `json:"score"`

	// Why lists the top contributing terms, strongest first.
	Why []TermContribution `json:"why"`
}

// Search ranks documents against a free-text query.
//
// Results are sorted by score descending with ties broken by ascending doc
// id, truncated to topK. A query with no recognized vocabulary terms
// (including the empty query) returns an empty result, never an error.
// Repeated calls with the same index and query are fully deterministic.
//
// Work is proportional to the lengths of the posting lists the query terms
// touch; the corpus is never scanned.
func (idx *Index) Search(query string, topK int) []Hit {
	if topK <= 0 {
		return nil
	}

	queryTerms := queryWeights(idx, query)
	if len(queryTerms) == 0 {
		return nil
	}

	var qNormSq float64
	for _, qt := range queryTerms {
		qNormSq += qt.weight * qt.weight
	}
	qNorm := math.Sqrt(qNormSq)
	if qNorm == 0 {
		qNorm = 1.0
	}

	// Accumulate dot products and per-term contributions. Query terms are
	// processed in ascending term id order so float accumulation order is
	// stable across calls.
	dots := make(map[int32]float64)
	contribs := make(map[int32][]TermContribution)

	for _, qt := range queryTerms {
		for _, p := range idx.postings[qt.id] {
			c := qt.weight * p.Weight
			dots[p.DocID] += c
			contribs[p.DocID] = append(contribs[p.DocID], TermContribution{TermID: qt.id, Contribution: c})
		}
	}

	hits := make([]Hit, 0, len(dots))
	for docID, dot := range dots {
		hits = append(hits, Hit{
			AppID: idx.docAppIDs[docID],
			DocID: int(docID),
			Score: dot / (qNorm * idx.docNorms[docID]),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].DocID < hits[j].DocID
	})

	if len(hits) > topK {
		hits = hits[:topK]
	}

	for i := range hits {
		hits[i].Why = topContributions(contribs[int32(hits[i].DocID)])
	}

	return hits
}

// queryTerm pairs a recognized query term id with its query-side weight.
type queryTerm struct {
	id     int
	weight float64
}

// queryWeights tokenizes the query and computes (1+ln(tf))*idf weights for
// terms present in the vocabulary. Unrecognized terms are dropped outright.
func queryWeights(idx *Index, query string) []queryTerm {
	tf := make(map[int]int)
	for _, term := range Tokenize(query) {
		if tid, ok := idx.vocab[term]; ok {
			tf[tid]++
		}
	}

	if len(tf) == 0 {
		return nil
	}

	terms := make([]queryTerm, 0, len(tf))
	for tid, count := range tf {
		terms = append(terms, queryTerm{
			id:     tid,
			weight: (1.0 + math.Log(float64(count))) * idx.idf[tid],
		})
	}

	sort.Slice(terms, func(i, j int) bool { return terms[i].id < terms[j].id })

	return terms
}

// topContributions sorts contributions descending and keeps the strongest
// three. Equal contributions order by ascending term id for determinism.
func topContributions(cs []TermContribution) []TermContribution {
	sort.Slice(cs, func(i, j int) bool {
		if cs[i].Contribution != cs[j].Contribution {
			return cs[i].Contribution > cs[j].Contribution
		}
		return cs[i].TermID < cs[j].TermID
	})

	if len(cs) > maxWhyTerms {
		cs = cs[:maxWhyTerms]
	}
	return cs
}
