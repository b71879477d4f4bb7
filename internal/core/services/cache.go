package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/custodia-labs/docnav/internal/core/domain"
	"github.com/custodia-labs/docnav/internal/core/ports/driven"
	"github.com/custodia-labs/docnav/internal/logger"
)

// DefaultLoadTimeout bounds a single index load. A slow storage fetch
// must not hold the cache lock indefinitely; waiters get an upstream
// timeout error instead of hanging.
const DefaultLoadTimeout = 30 * time.Second

// StoreLoader fetches and decodes the durable index. Implementations
// are expected to be side-effect free on the store's data, so a wasted
// duplicate load would be correctness-preserving; this cache avoids
// even that by serializing loads.
type StoreLoader func(ctx context.Context) (*domain.ChunkStore, error)

// IndexCache holds at most one decoded chunk store for the life of the
// process. The first successful load is memoized; failures are not, so
// the next request retries cleanly. There is deliberately no
// invalidation: a rebuilt index is picked up by restarting the process.
// That limitation is part of the design, not an oversight.
type IndexCache struct {
	mu          sync.Mutex
	store       *domain.ChunkStore
	loadedAt    time.Time
	loadTimeout time.Duration
}

// NewIndexCache creates an empty cache. loadTimeout <= 0 selects
// DefaultLoadTimeout.
func NewIndexCache(loadTimeout time.Duration) *IndexCache {
	if loadTimeout <= 0 {
		loadTimeout = DefaultLoadTimeout
	}
	return &IndexCache{loadTimeout: loadTimeout}
}

// GetOrLoad returns the cached store, loading it on first use.
//
// Concurrent callers before the first load completes block on the
// mutex; exactly one performs the load and the rest observe its
// result. A store is admitted only after Validate passes, so every
// served store has uniform vector dimensions.
func (c *IndexCache) GetOrLoad(ctx context.Context, loader StoreLoader) (*domain.ChunkStore, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.store != nil {
		logger.Debug("Index cache hit (%d chunks, loaded %s)",
			c.store.Len(), c.loadedAt.Format(time.RFC3339))
		return c.store, nil
	}

	logger.Info("Index cache empty, loading (cold start)")

	loadCtx, cancel := context.WithTimeout(ctx, c.loadTimeout)
	defer cancel()

	store, err := loader(loadCtx)
	if err != nil {
		return nil, err
	}
	if err := store.Validate(); err != nil {
		return nil, err
	}

	c.store = store
	c.loadedAt = time.Now()
	logger.Info("Index loaded: %d chunks, dimension %d, model %s",
		store.Len(), store.Metadata.Dimension, store.Metadata.EmbeddingModel)
	return c.store, nil
}

// Loaded reports whether the cache holds a store, and since when.
func (c *IndexCache) Loaded() (bool, time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.store != nil, c.loadedAt
}

// NewBlobLoader returns a StoreLoader that fetches the serialized index
// from blob storage under key and decodes it. A missing blob maps to
// domain.ErrIndexNotBuilt; any other fetch failure is an upstream
// storage error. Decode failures pass through as domain.ErrCorruptIndex.
func NewBlobLoader(blobs driven.BlobStore, key string) StoreLoader {
	return func(ctx context.Context) (*domain.ChunkStore, error) {
		data, err := blobs.Get(ctx, key)
		if err != nil {
			if errors.Is(err, driven.ErrBlobNotFound) {
				return nil, fmt.Errorf("key %q: %w", key, domain.ErrIndexNotBuilt)
			}
			return nil, &domain.UpstreamError{Dependency: "storage", Err: err}
		}
		return DecodeStore(data)
	}
}
