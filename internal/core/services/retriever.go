package services

import (
	"fmt"
	"math"
	"sort"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

// CosineSimilarity computes the cosine of the angle between two
// vectors, accumulating in float64. When either vector has zero norm
// the similarity is defined as 0.0; the function never divides by zero
// and never returns NaN.
func CosineSimilarity(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}

	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		av, bv := float64(a[i]), float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0.0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Retrieve scores every chunk in the store against the query vector
// and returns the top k by descending similarity, ties broken by
// ascending chunk ID so results are deterministic. Fewer than k chunks
// in the store yields fewer results, never an error.
//
// This is a linear scan: O(N*D) per query for N chunks of dimension D.
// For the corpus sizes this service targets (hundreds to low thousands
// of chunks) an approximate nearest-neighbour index would be
// unnecessary complexity; the scan is the intended scaling limit.
//
// Retrieve is purely functional over its inputs and is safe for
// concurrent use against the read-only cached store.
func Retrieve(query []float32, store *domain.ChunkStore, k int) ([]domain.RetrievedChunk, error) {
	if len(query) != store.Metadata.Dimension {
		return nil, fmt.Errorf("query has %d dimensions, index has %d: %w",
			len(query), store.Metadata.Dimension, domain.ErrDimensionMismatch)
	}
	if k <= 0 {
		k = domain.DefaultTopK
	}

	scored := make([]domain.RetrievedChunk, len(store.Chunks))
	for i := range store.Chunks {
		scored[i] = domain.RetrievedChunk{
			Chunk: store.Chunks[i],
			Score: CosineSimilarity(query, store.Chunks[i].Vector),
		}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Chunk.ID < scored[j].Chunk.ID
	})

	if k > len(scored) {
		k = len(scored)
	}
	return scored[:k], nil
}
