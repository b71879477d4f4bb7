package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driving"
)

func TestServer_handleAsk(t *testing.T) {
	ctx := context.Background()

	t.Run("returns grounded answer", func(t *testing.T) {
		mockQuery := &mockQueryService{
			answer: domain.Answer{
				Text:       "Use the reset endpoint.",
				Sources:    []string{"api.pdf"},
				ChunksUsed: 2,
				Model:      "gpt-4o-mini",
			},
		}

		ports := &Ports{Query: mockQuery}
		server, err := NewServer(ports)
		require.NoError(t, err)

		input := AskInput{Question: "how do I reset?", TopK: 2}
		_, output, err := server.handleAsk(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "Use the reset endpoint.", output.Answer)
		assert.Equal(t, []string{"api.pdf"}, output.Sources)
		assert.Equal(t, 2, output.ChunksUsed)
		assert.Equal(t, "gpt-4o-mini", output.ModelUsed)
		assert.Equal(t, 2, mockQuery.lastTopK)
	})

	t.Run("returns error on query failure", func(t *testing.T) {
		mockQuery := &mockQueryService{
			err: errors.New("embedding unavailable"),
		}

		ports := &Ports{Query: mockQuery}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleAsk(ctx, nil, AskInput{Question: "q"})
		assert.Error(t, err)
	})
}

func TestServer_handleRebuild(t *testing.T) {
	ctx := context.Background()

	t.Run("returns build report", func(t *testing.T) {
		mockIndex := &mockIndexService{
			report: driving.BuildReport{
				Documents:       3,
				ChunksAttempted: 40,
				ChunksIndexed:   38,
			},
		}

		ports := &Ports{Query: &mockQueryService{}, Index: mockIndex}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, output, err := server.handleRebuild(ctx, nil, RebuildInput{DataDir: "/docs"})

		require.NoError(t, err)
		assert.Equal(t, 3, output.Documents)
		assert.Equal(t, 38, output.ChunksIndexed)
		assert.Equal(t, 2, output.ChunksSkipped)
		assert.Equal(t, "/docs", mockIndex.lastDir)
	})

	t.Run("returns error on build failure", func(t *testing.T) {
		mockIndex := &mockIndexService{err: errors.New("no documents")}

		ports := &Ports{Query: &mockQueryService{}, Index: mockIndex}
		server, err := NewServer(ports)
		require.NoError(t, err)

		_, _, err = server.handleRebuild(ctx, nil, RebuildInput{DataDir: "/empty"})
		assert.Error(t, err)
	})
}
