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

func setupCache(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	SetClient(c)
	t.Cleanup(func() {
		SetClient(nil)
		_ = c.Close()
	})
	return mr
}

func TestIndexPageCache_RoundTrip(t *testing.T) {
	mr := setupCache(t)
	ctx := context.Background()

	_, ok := GetIndexPage(ctx)
	assert.False(t, ok)

	body := []byte(`{"posts":[]}`)
	SetIndexPage(ctx, body)

	got, ok := GetIndexPage(ctx)
	require.True(t, ok)
	assert.Equal(t, body, got)

	ttl := mr.TTL(IndexPageKey)
	assert.Equal(t, IndexPageTTL, ttl)
}

func TestIndexPageCache_Expiry(t *testing.T) {
	mr := setupCache(t)
	ctx := context.Background()

	SetIndexPage(ctx, []byte("stale"))
	mr.FastForward(IndexPageTTL + time.Second)

	_, ok := GetIndexPage(ctx)
	assert.False(t, ok)
}

func TestIndexPageCache_Clear(t *testing.T) {
	setupCache(t)
	ctx := context.Background()

	SetIndexPage(ctx, []byte("stale"))
	ClearIndexPage(ctx)

	_, ok := GetIndexPage(ctx)
	assert.False(t, ok)
}

func TestIndexPageCache_NoClientDegrades(t *testing.T) {
	SetClient(nil)
	ctx := context.Background()

	// All operations are safe no-ops without Redis.
	SetIndexPage(ctx, []byte("ignored"))
	ClearIndexPage(ctx)
	_, ok := GetIndexPage(ctx)
	assert.False(t, ok)
}
