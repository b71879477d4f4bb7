package domain

import "time"

// FormatVersion identifies the serialized index layout. Bump when the
// encoded structure changes incompatibly.
const FormatVersion = 1

// MaxChunkTextLen bounds the stored text per chunk. Longer text is
// truncated at build time to keep the serialized index small.
const MaxChunkTextLen = 1000

// RawChunk is a chunk before embedding: text plus provenance only.
// The document loader and chunker produce these; the index builder
// consumes them.
type RawChunk struct {
	// Text is the chunk content.
	Text string

	// SourceName is the base filename of the origin document, no path.
	SourceName string

	// Page is the zero-based page index within the origin document.
	// Zero when the loader cannot determine a page.
	Page int
}

// Chunk is the unit of retrieval: a bounded span of document text,
// its embedding vector, and provenance metadata. Chunks are immutable
// once the store is built.
type Chunk struct {
	// ID is unique within a ChunkStore, assigned in append order
	// starting at 0. Chunks skipped during the build leave no gaps.
	ID int `json:"id"`

	// Text is the content handed to the generation model, truncated
	// to MaxChunkTextLen at build time.
	Text string `json:"text"`

	// Vector is the embedding, produced once at build time. Every
	// chunk in a store has a vector of the store's dimension.
	Vector []float32 `json:"vector"`

	// SourceName is the base filename of the origin document.
	SourceName string `json:"source"`

	// Page is the zero-based page index within the origin document.
	Page int `json:"page"`
}

// StoreMetadata describes a ChunkStore as a whole.
type StoreMetadata struct {
	// FormatVersion is the serialized layout version.
	FormatVersion int `json:"format_version"`

	// TotalChunks counts chunks actually present in the store, which
	// may be fewer than the chunks fed to the builder when individual
	// embeddings failed.
	TotalChunks int `json:"total_chunks"`

	// EmbeddingModel names the model that produced the vectors.
	EmbeddingModel string `json:"embedding_model"`

	// Dimension is the vector length shared by every chunk.
	Dimension int `json:"dimension"`

	// ChunkSize and ChunkOverlap record the splitter parameters used
	// upstream. Recorded for diagnostics, not enforced here.
	ChunkSize    int `json:"chunk_size"`
	ChunkOverlap int `json:"chunk_overlap"`

	// CreatedAt is when the build finished.
	CreatedAt time.Time `json:"created_at"`
}

// ChunkStore is the retrieval index: an ordered collection of chunks
// plus store-level metadata. It is populated once by the builder,
// serialized, and treated as read-only ever after. Concurrent reads
// need no locking.
type ChunkStore struct {
	Metadata StoreMetadata `json:"metadata"`
	Chunks   []Chunk       `json:"chunks"`
}

// Validate checks the structural invariants a decoded store must hold
// before it may serve queries: a positive dimension and a vector of
// exactly that length on every chunk. Returns ErrIndexIntegrity
// (wrapped) on the first violation.
func (s *ChunkStore) Validate() error {
	if s.Metadata.Dimension <= 0 {
		return &IntegrityError{Reason: "metadata dimension must be positive"}
	}
	if s.Metadata.TotalChunks != len(s.Chunks) {
		return &IntegrityError{Reason: "metadata total_chunks does not match chunk count"}
	}
	for i := range s.Chunks {
		if len(s.Chunks[i].Vector) != s.Metadata.Dimension {
			return &IntegrityError{
				Reason:  "chunk vector length differs from store dimension",
				ChunkID: s.Chunks[i].ID,
			}
		}
	}
	return nil
}

// Len returns the number of chunks in the store.
func (s *ChunkStore) Len() int {
	return len(s.Chunks)
}
