package driving

import (
	"context"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

// QueryService answers questions grounded in the indexed documentation.
type QueryService interface {
	// Ask validates the question, retrieves the topK most relevant
	// chunks and returns a generated answer with source attribution.
	// topK <= 0 selects domain.DefaultTopK.
	Ask(ctx context.Context, question string, topK int) (domain.Answer, error)
}
