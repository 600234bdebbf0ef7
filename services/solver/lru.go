// Copyright (C) 2025 Oxbow Labs (eng@oxbowlabs.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package solver

import (
	"container/list"
	"sync"
	"sync/atomic"
)

// DefaultLRUCapacity is used when a cache is created with a
// non-positive capacity.
const DefaultLRUCapacity = 100

// LRUCache is a fixed-size cache that evicts the least recently used
// entry when full. Get, Set, and Delete are O(1).
//
// Thread Safety: all methods are safe for concurrent use. Hit, miss,
// and eviction counters use atomics so Stats never contends with
// readers.
type LRUCache[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	entries  map[K]*list.Element
	use      *list.List // front = most recent, back = next to evict

	hits      atomic.Int64
	misses    atomic.Int64
	evictions atomic.Int64
}

// cacheEntry holds the key alongside the value so eviction can remove
// the map entry without a reverse index.
type cacheEntry[K comparable, V any] struct {
	key   K
	value V
}

// NewLRUCache creates a cache holding at most capacity entries.
// Non-positive capacities fall back to DefaultLRUCapacity.
func NewLRUCache[K comparable, V any](capacity int) *LRUCache[K, V] {
	if capacity <= 0 {
		capacity = DefaultLRUCapacity
	}
	return &LRUCache[K, V]{
		capacity: capacity,
		entries:  make(map[K]*list.Element, capacity),
		use:      list.New(),
	}
}

// Get returns the value for key and marks it most recently used.
func (c *LRUCache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.use.MoveToFront(elem)
		c.hits.Add(1)
		return elem.Value.(*cacheEntry[K, V]).value, true
	}

	c.misses.Add(1)
	var zero V
	return zero, false
}

// Set stores or replaces the value for key, evicting the least
// recently used entry if the cache is full.
func (c *LRUCache[K, V]) Set(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.use.MoveToFront(elem)
		elem.Value.(*cacheEntry[K, V]).value = value
		return
	}

	if c.use.Len() >= c.capacity {
		c.evictOldest()
	}

	elem := c.use.PushFront(&cacheEntry[K, V]{key: key, value: value})
	c.entries[key] = elem
}

// Delete removes key from the cache, reporting whether it was present.
func (c *LRUCache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.entries[key]; ok {
		c.removeElement(elem)
		return true
	}
	return false
}

// Purge drops every entry and resets the counters.
func (c *LRUCache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[K]*list.Element, c.capacity)
	c.use.Init()
	c.hits.Store(0)
	c.misses.Store(0)
	c.evictions.Store(0)
}

// Len returns the number of cached entries.
func (c *LRUCache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.use.Len()
}

// Stats returns the hit and miss counts since creation or the last
// Purge.
func (c *LRUCache[K, V]) Stats() (hits, misses int64) {
	return c.hits.Load(), c.misses.Load()
}

// Evictions returns how many entries were displaced by capacity
// pressure. A high count relative to capacity means the cache is too
// small for its key population.
func (c *LRUCache[K, V]) Evictions() int64 {
	return c.evictions.Load()
}

// evictOldest removes the entry at the back of the use list.
// Caller must hold the lock.
func (c *LRUCache[K, V]) evictOldest() {
	if elem := c.use.Back(); elem != nil {
		c.removeElement(elem)
		c.evictions.Add(1)
	}
}

// removeElement unlinks an element from both the list and the map.
// Caller must hold the lock.
func (c *LRUCache[K, V]) removeElement(elem *list.Element) {
	c.use.Remove(elem)
	delete(c.entries, elem.Value.(*cacheEntry[K, V]).key)
}
