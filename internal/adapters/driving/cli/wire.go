package cli

import (
	"fmt"
	"io"

	"github.com/custodia-labs/docnav/internal/adapters/driven/blob/fs"
	"github.com/custodia-labs/docnav/internal/adapters/driven/blob/sqlite"
	"github.com/custodia-labs/docnav/internal/adapters/driven/config/file"
	ollamaembed "github.com/custodia-labs/docnav/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/custodia-labs/docnav/internal/adapters/driven/embedding/openai"
	"github.com/custodia-labs/docnav/internal/adapters/driven/llm/anthropic"
	ollamallm "github.com/custodia-labs/docnav/internal/adapters/driven/llm/ollama"
	openaillm "github.com/custodia-labs/docnav/internal/adapters/driven/llm/openai"
	"github.com/custodia-labs/docnav/internal/adapters/driven/loader/pdf"
	"github.com/custodia-labs/docnav/internal/chunker"
	"github.com/custodia-labs/docnav/internal/core/ports/driven"
	"github.com/custodia-labs/docnav/internal/core/services"
)

// runtime bundles wired services with the connections they own.
type runtime struct {
	queries *services.QueryService
	indexer *services.IndexService
	closers []io.Closer
}

// Close releases owned connections in reverse wiring order.
func (r *runtime) Close() {
	for i := len(r.closers) - 1; i >= 0; i-- {
		r.closers[i].Close() //nolint:errcheck
	}
}

func newEmbedder() (driven.EmbeddingService, error) {
	e := cfg.Embedding
	switch e.Provider {
	case file.ProviderOpenAI, "":
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     e.APIKey,
			BaseURL:    e.BaseURL,
			Model:      e.Model,
			Dimensions: e.Dimensions,
		})
	case file.ProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    e.BaseURL,
			Model:      e.Model,
			Dimensions: e.Dimensions,
		}), nil
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", e.Provider)
	}
}

func newLLM() (driven.LLMService, error) {
	l := cfg.LLM
	switch l.Provider {
	case file.ProviderOpenAI, "":
		return openaillm.NewLLMService(openaillm.Config{
			APIKey:  l.APIKey,
			BaseURL: l.BaseURL,
			Model:   l.Model,
		})
	case file.ProviderAnthropic:
		return anthropic.NewLLMService(anthropic.Config{
			APIKey:  l.APIKey,
			BaseURL: l.BaseURL,
			Model:   l.Model,
		})
	case file.ProviderOllama:
		return ollamallm.NewLLMService(ollamallm.Config{
			BaseURL: l.BaseURL,
			Model:   l.Model,
		}), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", l.Provider)
	}
}

func newBlobStore() (driven.BlobStore, error) {
	switch cfg.Index.Store {
	case "fs", "":
		return fs.NewStore(cfg.Index.DataDir)
	case "sqlite":
		return sqlite.NewStore(cfg.Index.DataDir)
	default:
		return nil, fmt.Errorf("unknown index store %q", cfg.Index.Store)
	}
}

// newQueryRuntime wires everything the ask/serve/mcp/tui commands need.
func newQueryRuntime() (*runtime, error) {
	embedder, err := newEmbedder()
	if err != nil {
		return nil, err
	}

	llm, err := newLLM()
	if err != nil {
		embedder.Close() //nolint:errcheck
		return nil, err
	}

	blobs, err := newBlobStore()
	if err != nil {
		embedder.Close() //nolint:errcheck
		llm.Close()      //nolint:errcheck
		return nil, err
	}

	cache := services.NewIndexCache(services.DefaultLoadTimeout)
	loader := services.NewBlobLoader(blobs, services.IndexKey)

	return &runtime{
		queries: services.NewQueryService(embedder, llm, cache, loader),
		closers: []io.Closer{embedder, llm, blobs},
	}, nil
}

// newIndexRuntime wires the build pipeline.
func newIndexRuntime() (*runtime, error) {
	embedder, err := newEmbedder()
	if err != nil {
		return nil, err
	}

	blobs, err := newBlobStore()
	if err != nil {
		embedder.Close() //nolint:errcheck
		return nil, err
	}

	split := chunker.New(
		chunker.WithChunkSize(cfg.Index.ChunkSize),
		chunker.WithOverlap(cfg.Index.ChunkOverlap),
	)

	opts := []services.BuilderOption{
		services.WithChunkParams(cfg.Index.ChunkSize, cfg.Index.ChunkOverlap),
	}
	if cfg.Embedding.RateLimit > 0 {
		opts = append(opts, services.WithRateLimit(cfg.Embedding.RateLimit))
	}
	builder := services.NewIndexBuilder(embedder, opts...)

	return &runtime{
		indexer: services.NewIndexService(pdf.New(), split, builder, blobs),
		closers: []io.Closer{embedder, blobs},
	}, nil
}
