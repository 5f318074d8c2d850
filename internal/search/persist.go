// PlayPick - Personalized Game Search and Recommendation
// Copyright 2026 PlayPick Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/playpick/playpick

package search

import (
	"bytes"
	"compress/gzip"
	"crypto/sha256"
	"encoding/gob"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

// snapshotFile is the on-disk format for index snapshots: a gob-encoded
// envelope holding metadata and the gzip-compressed gob payload.
type snapshotFile struct {
	Metadata       SnapshotMetadata
	CompressedData []byte
}

// SnapshotMetadata describes a persisted index snapshot.
type SnapshotMetadata struct {
	// BuiltAt is when the snapshot was saved.
	BuiltAt time.Time

	// DocCount is the number of indexed documents.
	DocCount int

	// VocabSize is the number of distinct terms.
	VocabSize int

	// Checksum is the SHA-256 checksum of the uncompressed payload.
	Checksum string

	// SizeBytes is the compressed payload size.
	SizeBytes int64
}

// snapshotPayload is the gob-serializable view of an Index. Gob requires
// exported fields, so the index's internals are copied through this struct.
type snapshotPayload struct {
	Terms     []string
	Postings  [][]Posting
	DocNorms  []float64
	DocAppIDs []int64
	IDF       []float64
}

// Save serializes the index to a single opaque blob at path. The parent
// directory is created if needed and the file is written atomically via a
// temp file rename so readers never observe a partial snapshot.
func (idx *Index) Save(path string) error {
	payload := snapshotPayload{
		Terms:     idx.terms,
		Postings:  idx.postings,
		DocNorms:  idx.docNorms,
		DocAppIDs: idx.docAppIDs,
		IDF:       idx.idf,
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(payload); err != nil {
		return fmt.Errorf("encode index: %w", err)
	}
	raw := buf.Bytes()

	hash := sha256.Sum256(raw)

	var compressed bytes.Buffer
	gzw := gzip.NewWriter(&compressed)
	if _, err := gzw.Write(raw); err != nil {
		return fmt.Errorf("compress index: %w", err)
	}
	if err := gzw.Close(); err != nil {
		return fmt.Errorf("finalize compression: %w", err)
	}

	sf := snapshotFile{
		Metadata: SnapshotMetadata{
			BuiltAt:   time.Now(),
			DocCount:  len(idx.docAppIDs),
			VocabSize: len(idx.terms),
			Checksum:  hex.EncodeToString(hash[:]),
			SizeBytes: int64(compressed.Len()),
		},
		CompressedData: compressed.Bytes(),
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create snapshot directory: %w", err)
	}

	tmp := path + ".tmp"
	f, err := os.Create(tmp) //nolint:gosec // path comes from configuration
	if err != nil {
		return fmt.Errorf("create snapshot file: %w", err)
	}

	if err := gob.NewEncoder(f).Encode(sf); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return fmt.Errorf("write snapshot file: %w", err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("close snapshot file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("publish snapshot file: %w", err)
	}

	return nil
}

// Load reads a snapshot previously written by Save and reconstructs an
// equivalent Index. Checksum mismatches and internal inconsistencies fail
// with ErrCorruptIndex; a corrupt blob is never silently truncated into a
// usable index.
func Load(path string) (*Index, *SnapshotMetadata, error) {
	f, err := os.Open(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return nil, nil, fmt.Errorf("open snapshot file: %w", err)
	}
	defer func() { _ = f.Close() }()

	var sf snapshotFile
	if err := gob.NewDecoder(f).Decode(&sf); err != nil {
		return nil, nil, fmt.Errorf("%w: read snapshot: %v", ErrCorruptIndex, err)
	}

	gzr, err := gzip.NewReader(bytes.NewReader(sf.CompressedData))
	if err != nil {
		return nil, nil, fmt.Errorf("%w: decompress snapshot: %v", ErrCorruptIndex, err)
	}
	defer func() { _ = gzr.Close() }()

	raw, err := io.ReadAll(gzr)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: read snapshot payload: %v", ErrCorruptIndex, err)
	}

	hash := sha256.Sum256(raw)
	if checksum := hex.EncodeToString(hash[:]); checksum != sf.Metadata.Checksum {
		return nil, nil, fmt.Errorf("%w: checksum mismatch (expected %s, got %s)",
			ErrCorruptIndex, sf.Metadata.Checksum, checksum)
	}

	var payload snapshotPayload
	if err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&payload); err != nil {
		return nil, nil, fmt.Errorf("%w: decode snapshot payload: %v", ErrCorruptIndex, err)
	}

	vocab := make(map[string]int, len(payload.Terms))
	for tid, term := range payload.Terms {
		vocab[term] = tid
	}

	idx := &Index{
		vocab:     vocab,
		terms:     payload.Terms,
		postings:  payload.Postings,
		docNorms:  payload.DocNorms,
		docAppIDs: payload.DocAppIDs,
		idf:       payload.IDF,
	}

	if err := idx.validate(); err != nil {
		return nil, nil, err
	}

	return idx, &sf.Metadata, nil
}
