package filter

import (
	"container/list"
	"sync"
)

// filterCache is a bounded, thread-safe LRU of compiled filters keyed by
// expression text.
type filterCache struct {
	capacity int

	mu    sync.Mutex
	order *list.List
	items map[string]*list.Element
}

type cacheEntry struct {
	expression string
	filter     CompiledFilter
}

func newFilterCache(capacity int) *filterCache {
	return &filterCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the cached filter for an expression, refreshing its recency.
func (c *filterCache) Get(expression string) (CompiledFilter, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	node, ok := c.items[expression]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(node)
	return node.Value.(*cacheEntry).filter, true
}

// Add stores a compiled filter, evicting the least recently used entry when
// the cache is full.
func (c *filterCache) Add(expression string, compiled CompiledFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if node, ok := c.items[expression]; ok {
		c.order.MoveToFront(node)
		node.Value.(*cacheEntry).filter = compiled
		return
	}

	node := c.order.PushFront(&cacheEntry{expression: expression, filter: compiled})
	c.items[expression] = node

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry).expression)
		}
	}
}

// Len returns the number of cached filters.
func (c *filterCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
