package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driven"
	"github.com/custodia-labs/docnav/internal/core/ports/driving"
	"github.com/custodia-labs/docnav/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// Default generation parameters, matching the answering style the
// prompt asks for: long enough for complete answers, near-deterministic.
const (
	defaultMaxTokens   = 2048
	defaultTemperature = 0.1
)

// QueryService orchestrates a question/answer round trip:
// validate, embed the question, retrieve against the cached index,
// and generate a grounded answer. Every external call site maps its
// failure to a typed domain error; callers never see raw transport
// errors.
type QueryService struct {
	embedder driven.EmbeddingService
	llm      driven.LLMService
	cache    *IndexCache
	loader   StoreLoader
}

// NewQueryService wires a query service. The cache and loader are owned
// by the composition root so tests can substitute fresh instances.
func NewQueryService(
	embedder driven.EmbeddingService,
	llm driven.LLMService,
	cache *IndexCache,
	loader StoreLoader,
) *QueryService {
	return &QueryService{
		embedder: embedder,
		llm:      llm,
		cache:    cache,
		loader:   loader,
	}
}

// Ask answers a question grounded in the indexed documentation.
//
// An empty question fails with domain.ErrEmptyQuestion before any
// external call is made. When retrieval returns no chunks the canned
// domain.NotFoundAnswer is returned and the generation model is never
// invoked; there is no context worth paying for.
func (s *QueryService) Ask(ctx context.Context, question string, topK int) (domain.Answer, error) {
	logger.Section("Query")

	question = strings.TrimSpace(question)
	if question == "" {
		return domain.Answer{}, domain.ErrEmptyQuestion
	}
	if topK <= 0 {
		topK = domain.DefaultTopK
	}
	logger.Debug("Question: %q (top_k=%d)", question, topK)

	queryVec, err := s.embedder.Embed(ctx, question)
	if err != nil {
		logger.Error("Question embedding failed: %v", err)
		return domain.Answer{}, &domain.UpstreamError{Dependency: "embedding", Err: err}
	}

	store, err := s.cache.GetOrLoad(ctx, s.loader)
	if err != nil {
		logger.Error("Index load failed: %v", err)
		return domain.Answer{}, err
	}

	retrieved, err := Retrieve(queryVec, store, topK)
	if err != nil {
		return domain.Answer{}, err
	}
	logger.Debug("Retrieved %d chunks", len(retrieved))

	if len(retrieved) == 0 {
		logger.Info("No relevant chunks, returning canned answer")
		return domain.Answer{Text: domain.NotFoundAnswer, Sources: []string{}}, nil
	}

	prompt := BuildPrompt(question, retrieved)
	answer, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	})
	if err != nil {
		logger.Error("Answer generation failed: %v", err)
		return domain.Answer{}, &domain.UpstreamError{Dependency: "generation", Err: err}
	}

	sources := SourceNames(retrieved)
	logger.Info("Answered with %d chunks from %d sources", len(retrieved), len(sources))

	return domain.Answer{
		Text:       answer,
		Sources:    sources,
		ChunksUsed: len(retrieved),
		Model:      s.llm.ModelName(),
	}, nil
}
