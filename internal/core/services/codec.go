package services

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

// EncodeStore serializes a chunk store to its durable byte format:
// gzip-compressed JSON of {"metadata": {...}, "chunks": [...]}.
// Encoding is deterministic for identical input, which keeps builds
// reproducible.
func EncodeStore(store *domain.ChunkStore) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)

	if err := json.NewEncoder(zw).Encode(store); err != nil {
		zw.Close()
		return nil, fmt.Errorf("encode index: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("compress index: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeStore is the exact inverse of EncodeStore. Corrupt or truncated
// input fails with an error matching domain.ErrCorruptIndex so the
// caller can decide to rebuild rather than retry.
//
// DecodeStore does not check vector dimensionality; that invariant is
// enforced when the store is admitted into the cache.
func DecodeStore(data []byte) (*domain.ChunkStore, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: not a gzip stream: %v", domain.ErrCorruptIndex, err)
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, fmt.Errorf("%w: truncated stream: %v", domain.ErrCorruptIndex, err)
	}

	var store domain.ChunkStore
	if err := json.Unmarshal(raw, &store); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON: %v", domain.ErrCorruptIndex, err)
	}

	if store.Metadata.FormatVersion > domain.FormatVersion {
		return nil, fmt.Errorf("%w: format version %d is newer than supported %d",
			domain.ErrCorruptIndex, store.Metadata.FormatVersion, domain.FormatVersion)
	}
	return &store, nil
}
