// pkg/memcache/bundle_cache.go
package mem

import (
	"container/list"
	"sync"
)

// BundleCache is a bounded most-recently-used cache keyed by city. It holds
// per-city retriever bundles for the process lifetime; when capacity is
// exceeded the least recently touched entry is evicted. Concurrent writers for
// the same key simply overwrite each other (last writer wins), which is safe
// because bundle construction is idempotent.
type BundleCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front = most recently used
	items    map[string]*list.Element
}

type cacheEntry struct {
	key   string
	value any
}

func NewBundleCache(capacity int) *BundleCache {
	if capacity < 1 {
		capacity = 1
	}
	return &BundleCache{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[string]*list.Element),
	}
}

func (c *BundleCache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cacheEntry).value, true
}

func (c *BundleCache) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*cacheEntry).value = value
		c.order.MoveToFront(el)
		return
	}

	c.items[key] = c.order.PushFront(&cacheEntry{key: key, value: value})

	if c.order.Len() > c.capacity {
		oldest := c.order.Back()
		if oldest != nil {
			c.order.Remove(oldest)
			delete(c.items, oldest.Value.(*cacheEntry).key)
		}
	}
}

func (c *BundleCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
