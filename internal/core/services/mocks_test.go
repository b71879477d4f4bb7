package services

import (
	"context"
	"strings"
	"sync/atomic"

	"github.com/custodia-labs/docnav/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbeddingService implements driven.EmbeddingService for testing.
// failTexts lists inputs whose embedding should fail.
type mockEmbeddingService struct {
	vector    []float32
	vectorFor map[string][]float32
	failTexts map[string]error
	embedErr  error
	dims      int
	model     string
	calls     atomic.Int64
}

func (m *mockEmbeddingService) Embed(_ context.Context, text string) ([]float32, error) {
	m.calls.Add(1)
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	if err, ok := m.failTexts[text]; ok {
		return nil, err
	}
	if v, ok := m.vectorFor[text]; ok {
		return v, nil
	}
	return m.vector, nil
}

func (m *mockEmbeddingService) Dimensions() int {
	if m.dims > 0 {
		return m.dims
	}
	return len(m.vector)
}

func (m *mockEmbeddingService) ModelName() string {
	if m.model != "" {
		return m.model
	}
	return "mock-embed"
}

func (m *mockEmbeddingService) Close() error {
	return nil
}

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	response    string
	generateErr error
	calls       atomic.Int64
	lastPrompt  string
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, _ driven.GenerateOptions) (string, error) {
	m.calls.Add(1)
	m.lastPrompt = prompt
	if m.generateErr != nil {
		return "", m.generateErr
	}
	return m.response, nil
}

func (m *mockLLMService) ModelName() string {
	return "mock-llm"
}

func (m *mockLLMService) Close() error {
	return nil
}

// mockBlobStore implements driven.BlobStore for testing.
type mockBlobStore struct {
	blobs    map[string][]byte
	getErr   error
	putErr   error
	getCalls atomic.Int64
}

func newMockBlobStore() *mockBlobStore {
	return &mockBlobStore{blobs: make(map[string][]byte)}
}

func (m *mockBlobStore) Put(_ context.Context, key string, data []byte) error {
	if m.putErr != nil {
		return m.putErr
	}
	m.blobs[key] = data
	return nil
}

func (m *mockBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	m.getCalls.Add(1)
	if m.getErr != nil {
		return nil, m.getErr
	}
	data, ok := m.blobs[key]
	if !ok {
		return nil, driven.ErrBlobNotFound
	}
	return data, nil
}

func (m *mockBlobStore) Close() error {
	return nil
}

// mockDocumentLoader implements driven.DocumentLoader for testing.
type mockDocumentLoader struct {
	pages   []driven.PageText
	loadErr error
}

func (m *mockDocumentLoader) Load(_ context.Context, _ string) ([]driven.PageText, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.pages, nil
}

// lineSplitter splits on newlines, one chunk per non-empty line.
type lineSplitter struct{}

func (lineSplitter) Split(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			out = append(out, line)
		}
	}
	return out
}
