package driven

import (
	"context"
	"errors"
)

// ErrBlobNotFound indicates the requested key does not exist. Adapters
// must return it (wrapped or not) for missing keys so callers can tell
// "no index built yet" apart from a transient storage failure.
var ErrBlobNotFound = errors.New("blob not found")

// BlobStore is durable storage for opaque byte blobs, keyed by name.
// The serialized chunk index lives here between the offline build and
// the serving process.
//
// Implementations may include:
//   - Local filesystem directory
//   - SQLite database (single portable file)
type BlobStore interface {
	// Put stores the blob under key, replacing any previous value.
	Put(ctx context.Context, key string, data []byte) error

	// Get retrieves the blob stored under key. Missing keys return
	// an error matching ErrBlobNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Close releases resources.
	Close() error
}
