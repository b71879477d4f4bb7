package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

// BuildPrompt assembles the grounded generation prompt: numbered
// context fragments followed by the question and answering rules. The
// model is instructed to answer only from the supplied context.
func BuildPrompt(question string, retrieved []domain.RetrievedChunk) string {
	var context strings.Builder
	for i, r := range retrieved {
		fmt.Fprintf(&context, "[Fragment %d]:\n%s\n\n", i+1, r.Chunk.Text)
	}

	return fmt.Sprintf(`You are an expert assistant that answers questions based ONLY on the provided context.

Relevant context:
%s
User question: %s

Instructions:
1. Answer ONLY with information from the provided context
2. If the context doesn't contain the information, clearly state that it's not available in the documentation
3. Be concise but complete
4. Do not make up information

Answer:`, context.String(), question)
}

// SourceNames returns the distinct origin documents of the retrieved
// chunks, preserving retrieval order.
func SourceNames(retrieved []domain.RetrievedChunk) []string {
	seen := make(map[string]struct{}, len(retrieved))
	sources := make([]string, 0, len(retrieved))
	for _, r := range retrieved {
		if _, ok := seen[r.Chunk.SourceName]; ok {
			continue
		}
		seen[r.Chunk.SourceName] = struct{}{}
		sources = append(sources, r.Chunk.SourceName)
	}
	return sources
}
