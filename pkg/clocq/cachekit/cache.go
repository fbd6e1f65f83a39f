// Package cachekit provides the JSON-persisted, LRU-bounded cache type
// behind the lexical-search cache and the embedding norm cache. Both
// share the same shape, so this package exposes one generic Cache[V]
// rather than bespoke types. Mention detection is not cached: the
// mention Extractor calls its Detector directly.
package cachekit

import (
	"encoding/json"
	"os"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
)

// Cache is a string-keyed, size-bounded, mutation-guarded cache that can
// be persisted to and restored from a JSON file on explicit Store/Load
// calls (spec.md §5: "persisted on explicit store() calls by the owning
// process, never mid-query").
type Cache[V any] struct {
	mu  sync.Mutex
	lru *lru.Cache[string, V]
}

// New creates a Cache holding at most size entries, evicting least-
// recently-used entries beyond that bound.
func New[V any](size int) (*Cache[V], error) {
	l, err := lru.New[string, V](size)
	if err != nil {
		return nil, err
	}
	return &Cache[V]{lru: l}, nil
}

// Get returns the cached value for key, if present.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Get(key)
}

// Put inserts or overwrites the cached value for key.
func (c *Cache[V]) Put(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, value)
}

// Len returns the number of entries currently cached.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}

// Store snapshots the cache to path as a JSON object.
func (c *Cache[V]) Store(path string) error {
	c.mu.Lock()
	snapshot := make(map[string]V, c.lru.Len())
	for _, key := range c.lru.Keys() {
		if v, ok := c.lru.Peek(key); ok {
			snapshot[key] = v
		}
	}
	c.mu.Unlock()

	data, err := json.Marshal(snapshot)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Load restores a cache previously written by Store, inserting entries in
// whatever order the JSON map iterates (eviction order is therefore not
// preserved across a Store/Load round trip).
func (c *Cache[V]) Load(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var snapshot map[string]V
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for k, v := range snapshot {
		c.lru.Add(k, v)
	}
	return nil
}
