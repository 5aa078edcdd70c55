package kv

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewRedisStore(client), mr
}

func TestRedisStore_RoundTrip(t *testing.T) {
	store, _ := setupTestRedis(t)

	ctx := context.Background()
	require.NoError(t, store.Save(ctx, KeyCart, []byte(`[{"id":1,"quantity":2}]`)))

	data, err := store.Load(ctx, KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1,"quantity":2}]`, string(data))
}

func TestRedisStore_MissingKey(t *testing.T) {
	store, _ := setupTestRedis(t)

	_, err := store.Load(context.Background(), KeyWishlist)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRedisStore_KeysAreNamespaced(t *testing.T) {
	store, mr := setupTestRedis(t)

	require.NoError(t, store.Save(context.Background(), KeyCart, []byte(`[]`)))

	got, err := mr.Get("state:" + KeyCart)
	require.NoError(t, err)
	assert.Equal(t, `[]`, got)
}

func TestRedisStore_DeleteRemovesKey(t *testing.T) {
	store, _ := setupTestRedis(t)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, KeyCart, []byte(`[]`)))
	require.NoError(t, store.Delete(ctx, KeyCart))

	_, err := store.Load(ctx, KeyCart)
	assert.ErrorIs(t, err, ErrKeyNotFound)
}

func TestRedisStore_DeleteMissingKeyIsNoError(t *testing.T) {
	store, _ := setupTestRedis(t)

	assert.NoError(t, store.Delete(context.Background(), KeyCart))
}

func TestRedisStore_ServerDown(t *testing.T) {
	store, mr := setupTestRedis(t)
	mr.Close()

	_, err := store.Load(context.Background(), KeyCart)
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrKeyNotFound)
}
