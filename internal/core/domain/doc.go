// Package domain defines the core business entities for docnav.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chunk: A retrievable span of document text with its embedding
//   - ChunkStore: The immutable, in-memory retrieval index
//   - RawChunk: A chunk before embedding (text + provenance only)
//   - RetrievedChunk: A chunk paired with its similarity score
//   - Answer: The final grounded answer with source attribution
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
