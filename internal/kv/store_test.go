package kv

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, KeyCart, []byte(`[{"id":1}]`)))

	data, err := store.Load(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(data))
}

func TestFileStore_MissingKey(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Load(context.Background(), KeyWishlist)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestFileStore_OverwriteReplacesValue(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, KeyCart, []byte(`old`)))
	require.NoError(t, store.Save(ctx, KeyCart, []byte(`new`)))

	data, err := store.Load(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	store, err := NewFileStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, KeyWishlist, []byte(`[3,7]`)))

	reopened, err := NewFileStore(dir)
	require.NoError(t, err)
	data, err := reopened.Load(ctx, KeyWishlist)
	require.NoError(t, err)
	assert.Equal(t, `[3,7]`, string(data))
}

func TestFileStore_DeleteIsIdempotent(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, KeyCart, []byte(`x`)))
	require.NoError(t, store.Delete(ctx, KeyCart))
	require.NoError(t, store.Delete(ctx, KeyCart))

	_, err = store.Load(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	_, err := store.Load(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrKeyNotFound)

	require.NoError(t, store.Save(ctx, KeyCart, []byte(`[1]`)))
	data, err := store.Load(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(data))

	require.NoError(t, store.Delete(ctx, KeyCart))
	_, err = store.Load(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestMemoryStore_CopiesData(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	src := []byte(`abc`)
	require.NoError(t, store.Save(ctx, KeyCart, src))
	src[0] = 'z'

	data, err := store.Load(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(data))

	data[0] = 'z'
	again, err := store.Load(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, "abc", string(again))
}
