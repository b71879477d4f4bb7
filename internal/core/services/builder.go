package services

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driven"
	"github.com/custodia-labs/docnav/internal/logger"
)

// IndexBuilder turns raw chunks into a populated chunk store by
// embedding each chunk once. It is a partial-failure-tolerant batch
// job: a single failing embedding is logged and skipped, never allowed
// to void the rest of the build.
type IndexBuilder struct {
	embedder     driven.EmbeddingService
	limiter      *rate.Limiter
	chunkSize    int
	chunkOverlap int
}

// BuilderOption configures an IndexBuilder.
type BuilderOption func(*IndexBuilder)

// WithRateLimit caps embedding calls at rps requests per second, with
// a burst of one. Protects provider quotas during large builds.
func WithRateLimit(rps float64) BuilderOption {
	return func(b *IndexBuilder) {
		if rps > 0 {
			b.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		}
	}
}

// WithChunkParams records the splitter parameters in the store
// metadata. They are diagnostics only; the builder does not re-split.
func WithChunkParams(size, overlap int) BuilderOption {
	return func(b *IndexBuilder) {
		b.chunkSize = size
		b.chunkOverlap = overlap
	}
}

// NewIndexBuilder creates a builder that embeds with the given service.
func NewIndexBuilder(embedder driven.EmbeddingService, opts ...BuilderOption) *IndexBuilder {
	b := &IndexBuilder{embedder: embedder}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build embeds the raw chunks in order and returns the resulting store.
//
// Chunk IDs are assigned sequentially in append order: when chunk 3 of
// 10 fails to embed, the store holds 9 chunks with IDs 0..8. Text is
// truncated to at most domain.MaxChunkTextLen bytes, on a rune
// boundary, before storage. A build in which no chunk succeeds fails
// with domain.ErrEmptyIndex.
func (b *IndexBuilder) Build(ctx context.Context, raws []domain.RawChunk) (*domain.ChunkStore, error) {
	chunks := make([]domain.Chunk, 0, len(raws))
	skipped := 0

	for i, raw := range raws {
		if b.limiter != nil {
			if err := b.limiter.Wait(ctx); err != nil {
				return nil, fmt.Errorf("rate limiter: %w", err)
			}
		}

		vec, err := b.embedder.Embed(ctx, raw.Text)
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("embed chunk %d: %w", i, err)
			}
			logger.Warn("Skipping chunk %d (%s p.%d): embedding failed: %v",
				i, raw.SourceName, raw.Page, err)
			skipped++
			continue
		}
		if len(vec) == 0 {
			logger.Warn("Skipping chunk %d (%s p.%d): empty embedding returned",
				i, raw.SourceName, raw.Page)
			skipped++
			continue
		}

		text := raw.Text
		if len(text) > domain.MaxChunkTextLen {
			// back off to a rune start so truncation never leaves
			// invalid UTF-8 in the store
			cut := domain.MaxChunkTextLen
			for cut > 0 && !utf8.RuneStart(text[cut]) {
				cut--
			}
			text = text[:cut]
		}

		chunks = append(chunks, domain.Chunk{
			ID:         len(chunks),
			Text:       text,
			Vector:     vec,
			SourceName: raw.SourceName,
			Page:       raw.Page,
		})
	}

	if len(chunks) == 0 {
		return nil, fmt.Errorf("built from %d raw chunks: %w", len(raws), domain.ErrEmptyIndex)
	}

	if skipped > 0 {
		logger.Warn("Build completed with %d of %d chunks skipped", skipped, len(raws))
	}
	logger.Info("Built index: %d chunks, dimension %d", len(chunks), b.embedder.Dimensions())

	return &domain.ChunkStore{
		Metadata: domain.StoreMetadata{
			FormatVersion:  domain.FormatVersion,
			TotalChunks:    len(chunks),
			EmbeddingModel: b.embedder.ModelName(),
			Dimension:      len(chunks[0].Vector),
			ChunkSize:      b.chunkSize,
			ChunkOverlap:   b.chunkOverlap,
			CreatedAt:      time.Now().UTC(),
		},
		Chunks: chunks,
	}, nil
}
