package domain

import (
	"errors"
	"fmt"
)

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors. The driving adapters
// translate them into caller-visible status codes; the core never
// formats HTTP responses itself.
var (
	// ErrEmptyQuestion indicates the caller supplied a blank question.
	// Caller-fixable; never retried automatically.
	ErrEmptyQuestion = errors.New("question is empty")

	// ErrCorruptIndex indicates the serialized index could not be
	// decoded (truncated, not gzip, malformed JSON). The index must
	// be rebuilt by an operator.
	ErrCorruptIndex = errors.New("corrupt index")

	// ErrIndexIntegrity indicates the index decoded cleanly but
	// violates a structural invariant, such as a chunk vector whose
	// length differs from the declared dimension.
	ErrIndexIntegrity = errors.New("index integrity violation")

	// ErrEmptyIndex indicates a build produced zero usable chunks.
	// An empty index is never serialized.
	ErrEmptyIndex = errors.New("index contains no chunks")

	// ErrDimensionMismatch indicates the query vector length differs
	// from the store dimension. This is a configuration error (the
	// embedding model changed without rebuilding the index) and is
	// not retryable.
	ErrDimensionMismatch = errors.New("query vector dimension does not match index")

	// ErrIndexNotBuilt indicates no index exists in durable storage
	// yet. Distinct from a transient storage failure: the fix is to
	// run a build, not to retry.
	ErrIndexNotBuilt = errors.New("no index has been built")

	// ErrUpstream indicates an external dependency (embedding model,
	// generation model, durable storage) failed. Not the caller's
	// fault; safe to retry at the caller's discretion.
	ErrUpstream = errors.New("upstream dependency failure")

	// ErrUnauthorized indicates a missing or invalid API key.
	ErrUnauthorized = errors.New("unauthorized")
)

// IntegrityError carries detail about which invariant a decoded store
// violates. It matches ErrIndexIntegrity under errors.Is.
type IntegrityError struct {
	Reason  string
	ChunkID int
}

func (e *IntegrityError) Error() string {
	if e.Reason == "chunk vector length differs from store dimension" {
		return fmt.Sprintf("index integrity violation: %s (chunk %d)", e.Reason, e.ChunkID)
	}
	return "index integrity violation: " + e.Reason
}

// Is reports that an IntegrityError is an ErrIndexIntegrity.
func (e *IntegrityError) Is(target error) bool {
	return target == ErrIndexIntegrity
}

// UpstreamError wraps a failure from a named external dependency.
// It matches ErrUpstream under errors.Is while preserving the cause.
type UpstreamError struct {
	Dependency string // "embedding", "generation", or "storage"
	Err        error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s dependency failed: %v", e.Dependency, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// Is reports that an UpstreamError is an ErrUpstream.
func (e *UpstreamError) Is(target error) bool {
	return target == ErrUpstream
}
