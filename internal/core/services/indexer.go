package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driven"
	"github.com/custodia-labs/docnav/internal/core/ports/driving"
	"github.com/custodia-labs/docnav/internal/logger"
)

// Ensure IndexService implements the interface.
var _ driving.IndexService = (*IndexService)(nil)

// IndexKey is the blob storage key the serialized index lives under.
const IndexKey = "index.json.gz"

// Splitter divides extracted page text into retrievable spans.
type Splitter interface {
	Split(text string) []string
}

// IndexService is the offline build pipeline: load documents, split
// pages into chunks, embed them and publish the serialized index to
// durable storage. It runs once per corpus; the serving path only ever
// reads the result.
type IndexService struct {
	docs    driven.DocumentLoader
	split   Splitter
	builder *IndexBuilder
	blobs   driven.BlobStore
}

// NewIndexService wires a build pipeline.
func NewIndexService(
	docs driven.DocumentLoader,
	split Splitter,
	builder *IndexBuilder,
	blobs driven.BlobStore,
) *IndexService {
	return &IndexService{docs: docs, split: split, builder: builder, blobs: blobs}
}

// Build loads every supported document under dataDir, chunks, embeds
// and publishes the index under IndexKey. An index with zero usable
// chunks is never published (domain.ErrEmptyIndex).
func (s *IndexService) Build(ctx context.Context, dataDir string) (driving.BuildReport, error) {
	logger.Section("Index Build")

	pages, err := s.docs.Load(ctx, dataDir)
	if err != nil {
		return driving.BuildReport{}, fmt.Errorf("load documents: %w", err)
	}
	if len(pages) == 0 {
		return driving.BuildReport{}, fmt.Errorf("no documents found in %s: %w", dataDir, domain.ErrEmptyIndex)
	}

	docs := make(map[string]struct{})
	var raws []domain.RawChunk
	for _, page := range pages {
		docs[page.SourceName] = struct{}{}
		for _, text := range s.split.Split(page.Text) {
			raws = append(raws, domain.RawChunk{
				Text:       text,
				SourceName: page.SourceName,
				Page:       page.Page,
			})
		}
	}
	logger.Info("Loaded %d documents, %d pages, %d chunks", len(docs), len(pages), len(raws))

	store, err := s.builder.Build(ctx, raws)
	if err != nil {
		return driving.BuildReport{}, err
	}

	data, err := EncodeStore(store)
	if err != nil {
		return driving.BuildReport{}, err
	}

	if err := s.blobs.Put(ctx, IndexKey, data); err != nil {
		return driving.BuildReport{}, &domain.UpstreamError{Dependency: "storage", Err: err}
	}
	logger.Info("Published index %q (%d bytes)", IndexKey, len(data))

	return driving.BuildReport{
		Documents:       len(docs),
		ChunksAttempted: len(raws),
		ChunksIndexed:   store.Len(),
		Metadata:        store.Metadata,
	}, nil
}
