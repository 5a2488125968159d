package taproot

import (
	"container/list"
	"sync"
	"time"
)

// cacheEntry stores one cached value with its insertion time and list element.
type cacheEntry[V any] struct {
	value   V
	addedAt time.Time
	element *list.Element
}

// Cache is a size-bounded key/value cache with optional time-to-live expiry.
// Insertion order is kept in a doubly-linked list for O(1) oldest-first
// eviction. Expired entries are dropped lazily when touched; no background
// goroutine runs, so a Cache needs no Close and can be abandoned freely.
//
// Safe for concurrent use. The rest of the package is single-threaded, but a
// Cache is the kind of collaborator consumers share across their own
// goroutines (the built-in selector matcher shares one).
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*cacheEntry[V]
	order   *list.List // keys in insertion order, oldest at front
	ttl     time.Duration
	maxSize int
	now     func() time.Time // test seam
}

// NewCache creates a cache. A ttl of zero or less disables expiry; a maxSize
// of zero or less disables the size bound.
func NewCache[K comparable, V any](ttl time.Duration, maxSize int) *Cache[K, V] {
	return &Cache[K, V]{
		entries: make(map[K]*cacheEntry[V]),
		order:   list.New(),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Get returns the value for key and whether it was present and unexpired.
// An expired entry is removed on the spot.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		var zero V
		return zero, false
	}
	if c.expired(entry) {
		c.order.Remove(entry.element)
		delete(c.entries, key)
		var zero V
		return zero, false
	}
	return entry.value, true
}

// Put stores a value. An existing key is refreshed and moved to the back of
// the eviction order. Inserting beyond the size bound evicts the oldest entry.
func (c *Cache[K, V]) Put(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, exists := c.entries[key]; exists {
		entry.value = value
		entry.addedAt = c.now()
		c.order.MoveToBack(entry.element)
		return
	}
	if c.maxSize > 0 && len(c.entries) >= c.maxSize {
		c.evictOldest()
	}
	elem := c.order.PushBack(key)
	c.entries[key] = &cacheEntry[V]{value: value, addedAt: c.now(), element: elem}
}

// Delete removes a key. No-op if absent.
func (c *Cache[K, V]) Delete(key K) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		c.order.Remove(entry.element)
		delete(c.entries, key)
	}
}

// Len returns the number of stored entries. Entries whose TTL has lapsed but
// that have not been touched since still count.
func (c *Cache[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Purge removes every entry.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*cacheEntry[V])
	c.order.Init()
}

// expired reports whether entry's TTL has lapsed. Must be called with mu held.
func (c *Cache[K, V]) expired(entry *cacheEntry[V]) bool {
	return c.ttl > 0 && c.now().Sub(entry.addedAt) >= c.ttl
}

// evictOldest removes the entry at the front of the insertion order.
// Must be called with mu held. O(1) via the linked list.
func (c *Cache[K, V]) evictOldest() {
	front := c.order.Front()
	if front == nil {
		return
	}
	key, _ := front.Value.(K)
	c.order.Remove(front)
	delete(c.entries, key)
}
