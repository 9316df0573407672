package metadata

import (
	"context"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultTTL        time.Duration = 30 * time.Minute
	DefaultMaxEntries int           = 500
)

type FetchFunc[V any] func(ctx context.Context, key string) (V, error)

type CacheEntry[V any] struct {
	value     V
	expiresAt time.Time
}

type cacheConfig struct {
	now func() time.Time
}

type CacheOption func(*cacheConfig)

func WithClock(now func() time.Time) CacheOption {
	return func(cfg *cacheConfig) {
		cfg.now = now
	}
}

// Cache memoizes the results of a fetch function for a fixed time. At most one
// fetch per key is in flight at any time, concurrent callers share its result.
// Expired entries are evicted when they are looked up. When the cache is full
// the least recently used entry is dropped.
type Cache[V any] struct {
	ttl     time.Duration
	fetch   FetchFunc[V]
	entries *lru.Cache[string, CacheEntry[V]]
	flights singleflight.Group
	now     func() time.Time

	mu          sync.Mutex
	generations map[string]uint64
}

func NewCache[V any](ttl time.Duration, maxEntries int, fetch FetchFunc[V], options ...CacheOption) (*Cache[V], error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}

	entries, err := lru.New[string, CacheEntry[V]](maxEntries)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache storage: %w", err)
	}

	cfg := &cacheConfig{now: time.Now}
	for _, opt := range options {
		opt(cfg)
	}

	return &Cache[V]{
		ttl:     ttl,
		fetch:   fetch,
		entries:     entries,
		now:         cfg.now,
		generations: map[string]uint64{},
	}, nil
}

func (c *Cache[V]) lookup(key string) (V, bool) {
	if e, ok := c.entries.Get(key); ok {
		if c.now().Before(e.expiresAt) {
			return e.value, true
		}
		c.entries.Remove(key)
	}

	var zero V
	return zero, false
}

func (c *Cache[V]) Get(ctx context.Context, key string) (V, error) {
	if v, ok := c.lookup(key); ok {
		return v, nil
	}

	// the shared fetch must not be aborted by the caller that happened to start it
	fetchCtx := context.WithoutCancel(ctx)

	ch := c.flights.DoChan(key, func() (any, error) {
		if v, ok := c.lookup(key); ok {
			return v, nil
		}

		gen := c.generation(key)

		v, err := c.fetch(fetchCtx, key)
		if err != nil {
			return nil, err
		}

		c.store(key, gen, v)
		return v, nil
	})

	select {
	case <-ctx.Done():
		var zero V
		return zero, ctx.Err()
	case result := <-ch:
		if result.Err != nil {
			var zero V
			return zero, result.Err
		}
		return result.Val.(V), nil
	}
}

func (c *Cache[V]) generation(key string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generations[key]
}

// store adds the fetched value unless the key was invalidated while it was fetched
func (c *Cache[V]) store(key string, gen uint64, v V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.generations[key] != gen {
		return
	}

	c.entries.Add(key, CacheEntry[V]{value: v, expiresAt: c.now().Add(c.ttl)})
}

// Invalidate drops the entry for key. A fetch for the key that is in flight
// still answers its callers but its result is not kept.
func (c *Cache[V]) Invalidate(key string) {
	c.mu.Lock()
	c.generations[key]++
	c.entries.Remove(key)
	c.mu.Unlock()

	c.flights.Forget(key)
}

func (c *Cache[V]) Len() int {
	return c.entries.Len()
}
