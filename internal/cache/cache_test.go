package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Name string `json:"name"`
	Age  int    `json:"age"`
}

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisFromClient(client), mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "pets:1", entry{Name: "Rex", Age: 3}, time.Minute))
	assert.True(t, mr.Exists("pets:1"))

	var got entry
	found, err := c.Get(ctx, "pets:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, entry{Name: "Rex", Age: 3}, got)
}

func TestRedisCacheMissAndDelete(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	var got entry
	found, err := c.Get(ctx, "missing", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k", entry{Name: "x"}, time.Minute))
	require.NoError(t, c.Delete(ctx, "k"))
	assert.False(t, mr.Exists("k"))
	assert.NoError(t, c.Delete(ctx))
}

func TestRedisCacheExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "short", entry{Name: "y"}, time.Second))
	mr.FastForward(2 * time.Second)

	var got entry
	found, err := c.Get(ctx, "short", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCacheCorruptValue(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("bad", "{not json"))

	var got entry
	_, err := c.Get(context.Background(), "bad", &got)
	assert.Error(t, err)
}

func TestNoop(t *testing.T) {
	var c Cache = Noop{}
	var got entry
	found, err := c.Get(context.Background(), "k", &got)
	assert.NoError(t, err)
	assert.False(t, found)
	assert.NoError(t, c.Set(context.Background(), "k", got, time.Minute))
}
