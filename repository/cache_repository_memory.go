package repository

import (
	"context"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultMemoryCacheEntries bounds the in-process cache when no size is
// configured.
const DefaultMemoryCacheEntries = 256

// CacheRepositoryMemory is an in-process CacheRepository used when no Redis
// address is configured. It keeps at most maxEntries snapshots, evicting the
// least recently used, and drops entries older than ttl.
type CacheRepositoryMemory struct {
	lru *expirable.LRU[string, string]
}

// NewCacheRepositoryMemory builds a bounded cache. A non-positive maxEntries
// falls back to DefaultMemoryCacheEntries; a non-positive ttl never expires.
func NewCacheRepositoryMemory(maxEntries int, ttl time.Duration) *CacheRepositoryMemory {
	if maxEntries <= 0 {
		maxEntries = DefaultMemoryCacheEntries
	}
	return &CacheRepositoryMemory{
		lru: expirable.NewLRU[string, string](maxEntries, nil, ttl),
	}
}

func (c *CacheRepositoryMemory) Get(_ context.Context, key string) (string, bool) {
	return c.lru.Get(key)
}

func (c *CacheRepositoryMemory) Set(_ context.Context, key string, value string) error {
	c.lru.Add(key, value)
	return nil
}

func (c *CacheRepositoryMemory) Len() int {
	return c.lru.Len()
}
