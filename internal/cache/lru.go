// Package cache holds a small in-process LRU used to memoize analytics
// payloads between ledger mutations.
package cache

import (
	"container/list"
	"sync"
	"time"
)

type entry[V any] struct {
	key       string
	value     V
	expiresAt time.Time
}

// LRU is a fixed-capacity cache with per-entry TTL. Safe for concurrent
// use.
type LRU[V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	index    map[string]*list.Element
	order    *list.List
}

// NewLRU returns an LRU holding at most capacity entries, each expiring
// ttl after it was set.
func NewLRU[V any](capacity int, ttl time.Duration) *LRU[V] {
	return &LRU[V]{
		capacity: capacity,
		ttl:      ttl,
		index:    make(map[string]*list.Element),
		order:    list.New(),
	}
}

// Get returns the cached value for key, if present and not expired.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.index[key]
	if !ok {
		return zero, false
	}
	e := el.Value.(*entry[V])
	if time.Now().After(e.expiresAt) {
		c.evict(el)
		return zero, false
	}
	c.order.MoveToFront(el)
	return e.value, true
}

// Set stores value under key, refreshing its TTL and recency. The least
// recently used entry is dropped when the cache is over capacity.
func (c *LRU[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e := &entry[V]{key: key, value: value, expiresAt: time.Now().Add(c.ttl)}
	if el, ok := c.index[key]; ok {
		el.Value = e
		c.order.MoveToFront(el)
		return
	}
	c.index[key] = c.order.PushFront(e)
	if c.order.Len() > c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.evict(oldest)
		}
	}
}

// Invalidate drops every entry. Called after each ledger mutation so
// stale aggregates never outlive the data they summarize.
func (c *LRU[V]) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.index = make(map[string]*list.Element)
	c.order.Init()
}

// Len reports the current number of entries, expired ones included.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.index)
}

func (c *LRU[V]) evict(el *list.Element) {
	e := el.Value.(*entry[V])
	delete(c.index, e.key)
	c.order.Remove(el)
}
