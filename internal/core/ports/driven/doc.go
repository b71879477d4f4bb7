// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - EmbeddingService: maps text to a fixed-length vector
//   - LLMService: maps a prompt to generated text
//   - BlobStore: durable storage for the serialized index
//   - DocumentLoader: yields ordered text fragments from source documents
//
// The retrieval core treats all of these as external collaborators. They
// are the only suspension points in a request; their latency dominates.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter package
package driven
