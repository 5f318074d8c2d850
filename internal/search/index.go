// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package search

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// Common index errors.
var (
	// ErrArityMismatch indicates documents and app ids of unequal length
	// were passed to Build.
	ErrArityMismatch = errors.New("documents and app ids must have equal length")

	// ErrCorruptIndex indicates a persisted snapshot failed checksum or
	// internal consistency validation.
	ErrCorruptIndex = errors.New("corrupt index snapshot")
)

// Posting is one document entry in a term's posting list.
type Posting struct {
	// DocID is the dense internal document id (0..N-1).
	DocID int32

	// Weight is the TF-IDF weight of the term in the document.
	Weight float64
}

// Index is an immutable inverted index over a document corpus.
//
// All fields are fixed at build time. Arrays are parallel: docNorms and
// docAppIDs have length N, idf and terms have length V. An Index must never
// be mutated after Build returns; rebuilds construct a fresh Index and swap
// it in via Manager.
type Index struct {
	vocab     map[string]int
	terms     []string
	postings  [][]Posting
	docNorms  []float64
	docAppIDs []int64
	idf       []float64
}

// Build constructs an index from parallel slices of document text and
// external app ids. The slices must have equal length or Build fails with
// ErrArityMismatch. An empty corpus yields a valid, empty index.
//
// Term ids are assigned by descending document frequency; ties are broken by
// first appearance in corpus order, which makes builds reproducible for a
// given input ordering.
func Build(documents []string, appIDs []int64) (*Index, error) {
	if len(documents) != len(appIDs) {
		return nil, fmt.Errorf("%w: %d documents, %d app ids", ErrArityMismatch, len(documents), len(appIDs))
	}

	n := len(documents)

	// Per-document term counts and corpus document frequencies.
	docCounts := make([]map[string]int, n)
	df := make(map[string]int)
	firstSeen := make(map[string]int)

	for docID, doc := range documents {
		counts := make(map[string]int)
		// first-seen ranks follow token order within the document, so the
		// vocabulary tie-break stays deterministic across builds.
		for _, term := range Tokenize(doc) {
			if _, seen := firstSeen[term]; !seen {
				firstSeen[term] = len(firstSeen)
			}
			counts[term]++
		}
		docCounts[docID] = counts

		for term := range counts {
			df[term]++
		}
	}

	// Vocabulary ordered by descending df, then first-seen order.
	ordered := make([]string, 0, len(df))
	for term := range df {
		ordered = append(ordered, term)
	}
	sort.Slice(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		if df[a] != df[b] {
			return df[a] > df[b]
		}
		return firstSeen[a] < firstSeen[b]
	})

	vocab := make(map[string]int, len(ordered))
	idf := make([]float64, len(ordered))
	for tid, term := range ordered {
		vocab[term] = tid
		idf[tid] = math.Log(float64(n+1)/float64(df[term]+1)) + 1.0
	}

	// Postings and document norms. Posting lists stay ordered by ascending
	// doc id because documents are processed in corpus order.
	postings := make([][]Posting, len(ordered))
	docNorms := make([]float64, n)

	for docID, counts := range docCounts {
		var normSq float64
		for term, tf := range counts {
			tid := vocab[term]
			w := (1.0 + math.Log(float64(tf))) * idf[tid]
			postings[tid] = append(postings[tid], Posting{DocID: int32(docID), Weight: w})
			normSq += w * w
		}

		norm := math.Sqrt(normSq)
		if norm == 0 {
			norm = 1.0
		}
		docNorms[docID] = norm
	}

	// Map iteration above leaves posting lists unordered; restore doc order.
	for tid := range postings {
		sort.Slice(postings[tid], func(i, j int) bool {
			return postings[tid][i].DocID < postings[tid][j].DocID
		})
	}

	idx := &Index{
		vocab:     vocab,
		terms:     ordered,
		postings:  postings,
		docNorms:  docNorms,
		docAppIDs: append([]int64(nil), appIDs...),
		idf:       idf,
	}

	if err := idx.validate(); err != nil {
		return nil, err
	}

	return idx, nil
}

// validate checks the parallel-array invariants.
func (idx *Index) validate() error {
	n := len(idx.docAppIDs)
	v := len(idx.terms)

	if len(idx.docNorms) != n {
		return fmt.Errorf("%w: %d norms for %d documents", ErrCorruptIndex, len(idx.docNorms), n)
	}
	if len(idx.idf) != v || len(idx.postings) != v || len(idx.vocab) != v {
		return fmt.Errorf("%w: vocabulary arrays disagree (terms=%d idf=%d postings=%d vocab=%d)",
			ErrCorruptIndex, v, len(idx.idf), len(idx.postings), len(idx.vocab))
	}
	for tid := range idx.postings {
		for _, p := range idx.postings[tid] {
			if int(p.DocID) < 0 || int(p.DocID) >= n {
				return fmt.Errorf("%w: posting doc id %d outside corpus of %d", ErrCorruptIndex, p.DocID, n)
			}
		}
	}

	return nil
}

// DocCount returns the number of indexed documents.
func (idx *Index) DocCount() int {
	return len(idx.docAppIDs)
}

// VocabSize returns the number of distinct terms.
func (idx *Index) VocabSize() int {
	return len(idx.terms)
}

// Term resolves a term id to its display text. It returns the empty string
// for out-of-range ids.
func (idx *Index) Term(id int) string {
	if id < 0 || id >= len(idx.terms) {
		return ""
	}
	return idx.terms[id]
}

// TermID returns the id for a term and whether it is in the vocabulary.
func (idx *Index) TermID(term string) (int, bool) {
	id, ok := idx.vocab[term]
	return id, ok
}

// AppID resolves an internal doc id to the external app id.
func (idx *Index) AppID(docID int) int64 {
	return idx.docAppIDs[docID]
}

// IDF returns the inverse document frequency for a term id.
func (idx *Index) IDF(id int) float64 {
	return idx.idf[id]
}

// PostingCount returns the total number of postings across all terms.
func (idx *Index) PostingCount() int {
	var total int
	for _, plist := range idx.postings {
		total += len(plist)
	}
	return total
}
