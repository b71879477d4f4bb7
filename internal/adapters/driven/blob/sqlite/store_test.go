package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docnav/internal/core/ports/driven"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestPutGet_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "index.json.gz", []byte("payload")))

	data, err := store.Get(ctx, "index.json.gz")
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), data)
}

func TestPut_ReplacesExisting(t *testing.T) {
	store := newTestStore(t)

	ctx := context.Background()
	require.NoError(t, store.Put(ctx, "key", []byte("old")))
	require.NoError(t, store.Put(ctx, "key", []byte("new")))

	data, err := store.Get(ctx, "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
}

func TestGet_MissingKey(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Get(context.Background(), "absent")
	require.Error(t, err)
	assert.ErrorIs(t, err, driven.ErrBlobNotFound)
}

func TestPut_EmptyKey(t *testing.T) {
	store := newTestStore(t)
	assert.Error(t, store.Put(context.Background(), "", []byte("x")))
}

func TestPersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Put(context.Background(), "key", []byte("durable")))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	data, err := reopened.Get(context.Background(), "key")
	require.NoError(t, err)
	assert.Equal(t, []byte("durable"), data)
	assert.Equal(t, filepath.Join(dir, "index.db"), reopened.Path())
}
