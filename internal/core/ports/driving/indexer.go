package driving

import (
	"context"

	"github.com/custodia-labs/docnav/internal/core/domain"
)

// BuildReport summarises an index build for diagnostics.
type BuildReport struct {
	// Documents is the number of source documents loaded.
	Documents int

	// ChunksAttempted is how many raw chunks were fed to the builder.
	ChunksAttempted int

	// ChunksIndexed is how many chunks made it into the store; the
	// difference is per-chunk embedding failures that were skipped.
	ChunksIndexed int

	// Metadata is the metadata of the published store.
	Metadata domain.StoreMetadata
}

// IndexService runs the offline build pipeline: load documents, chunk,
// embed, serialize and publish to durable storage.
type IndexService interface {
	Build(ctx context.Context, dataDir string) (BuildReport, error)
}
