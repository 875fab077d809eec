package cache

import (
	"context"
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

// IndexPageKey is the fixed key under which the rendered index page is
// stored. There is no per-user or per-page variation; within the TTL every
// index request receives the same bytes.
const IndexPageKey = "index_page"

// IndexPageTTL is how long a rendered index page stays valid.
const IndexPageTTL = 20 * time.Second

var (
	indexCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_index_cache_hits_total",
		Help: "Number of index requests served from the cached body.",
	})
	indexCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "quill_index_cache_misses_total",
		Help: "Number of index requests that re-rendered, including cache-off misses.",
	})
)

// GetIndexPage returns the cached index response body, or (nil, false) on a
// miss or when Redis is unavailable.
func GetIndexPage(ctx context.Context) ([]byte, bool) {
	if client == nil {
		indexCacheMisses.Inc()
		return nil, false
	}
	body, err := client.Get(ctx, IndexPageKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			// Treat an unreachable cache as a miss; the index just re-renders.
			indexCacheMisses.Inc()
			return nil, false
		}
		indexCacheMisses.Inc()
		return nil, false
	}
	indexCacheHits.Inc()
	return body, true
}

// SetIndexPage stores the rendered index response body for the TTL window.
// A racing double-store is harmless, it only costs a redundant render.
func SetIndexPage(ctx context.Context, body []byte) {
	if client == nil {
		return
	}
	client.Set(ctx, IndexPageKey, body, IndexPageTTL)
}

// ClearIndexPage drops the cached index page so the next request re-renders
// from current data.
func ClearIndexPage(ctx context.Context) {
	if client == nil {
		return
	}
	client.Del(ctx, IndexPageKey)
}
