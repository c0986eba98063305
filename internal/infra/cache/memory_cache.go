// Package cache implements the in-memory remote-data cache with explicit
// in-flight de-duplication.
package cache

import (
	"context"
	"log/slog"
	"strings"
	"sync"

	"moducare/internal/domain/service"

	"github.com/pkg/errors"
)

// flight is one in-flight loader. Waiters block on done; the settled value
// or error is then visible to all of them.
type flight struct {
	done  chan struct{}
	value any
	err   error
}

// memoryCache is the concrete DataCache. The entries and inflight maps are
// the explicit model of the cached/fetching states: at most one flight
// exists per key at any time.
type memoryCache struct {
	mu       sync.Mutex
	entries  map[string]any
	inflight map[string]*flight
	logger   *slog.Logger
}

// NewMemoryCache creates an empty cache.
func NewMemoryCache(logger *slog.Logger) service.DataCache {
	return &memoryCache{
		entries:  make(map[string]any),
		inflight: make(map[string]*flight),
		logger:   logger,
	}
}

// Fetch returns the cached value for key, attaching to an in-flight loader
// if one exists, or starting the loader otherwise. Cancelling ctx detaches
// this caller only; the loader keeps running and its result still lands in
// the cache for the remaining waiters.
func (c *memoryCache) Fetch(ctx context.Context, key string, loader service.CacheLoader) (any, error) {
	c.mu.Lock()

	if value, ok := c.entries[key]; ok {
		c.mu.Unlock()

		return value, nil
	}

	if f, ok := c.inflight[key]; ok {
		c.mu.Unlock()

		return c.wait(ctx, f)
	}

	f := &flight{done: make(chan struct{})}
	c.inflight[key] = f
	c.mu.Unlock()

	// The loader belongs to the cache, not to this caller: it must not die
	// with the first waiter's context.
	go c.run(context.WithoutCancel(ctx), key, loader, f)

	return c.wait(ctx, f)
}

// Invalidate drops every entry whose key starts with prefix. An in-flight
// loader for a matching key is left to finish; its result lands and the next
// Invalidate can drop it again.
func (c *memoryCache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}

	c.logger.Debug("cache invalidated", slog.String("prefix", prefix))
}

func (c *memoryCache) run(ctx context.Context, key string, loader service.CacheLoader, f *flight) {
	value, err := loader(ctx)

	c.mu.Lock()
	delete(c.inflight, key)
	if err == nil {
		c.entries[key] = value
	}
	c.mu.Unlock()

	f.value, f.err = value, err
	close(f.done)

	if err != nil {
		c.logger.Warn("cache loader failed", slog.String("key", key), slog.Any("error", err))
	}
}

func (c *memoryCache) wait(ctx context.Context, f *flight) (any, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		return nil, errors.WithStack(ctx.Err())
	}
}
