package render

import (
	"container/list"
	"sync"

	"github.com/couchcryptid/hurricane-dashboard/internal/domain"
)

// CacheObserver is notified of every map cache lookup.
type CacheObserver interface {
	ObserveMapCache(hit bool)
}

// CachedMapRenderer wraps a MapRenderer with an in-memory LRU of laid out
// maps keyed by the filter's year range and category set.
type CachedMapRenderer struct {
	inner    *MapRenderer
	cache    *lruCache[string, MapView]
	observer CacheObserver
}

// NewCachedMapRenderer creates a cache decorator around a map renderer.
// observer may be nil.
func NewCachedMapRenderer(inner *MapRenderer, maxEntries int, observer CacheObserver) *CachedMapRenderer {
	return &CachedMapRenderer{
		inner:    inner,
		cache:    newLRUCache[string, MapView](maxEntries),
		observer: observer,
	}
}

// RenderMap returns the cached view for key, or renders and stores it.
// The dataset is fixed for the lifetime of the renderer, so key fully
// determines the result.
func (c *CachedMapRenderer) RenderMap(key string, world domain.WorldGeometry, matched []domain.Hurricane) MapView {
	if view, ok := c.cache.get(key); ok {
		c.observe(true)
		return view
	}
	c.observe(false)
	view := c.inner.RenderMap(world, matched)
	c.cache.put(key, view)
	return view
}

func (c *CachedMapRenderer) observe(hit bool) {
	if c.observer != nil {
		c.observer.ObserveMapCache(hit)
	}
}

// lruCache is a mutex-guarded LRU. A non-positive capacity stores nothing.
type lruCache[K comparable, V any] struct {
	capacity int
	mu       sync.Mutex
	order    *list.List // front is most recently used
	items    map[K]*list.Element
}

type lruItem[K comparable, V any] struct {
	key   K
	value V
}

func newLRUCache[K comparable, V any](capacity int) *lruCache[K, V] {
	return &lruCache[K, V]{
		capacity: capacity,
		order:    list.New(),
		items:    make(map[K]*list.Element),
	}
}

func (c *lruCache[K, V]) get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.items[key]
	if !ok {
		var zero V
		return zero, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*lruItem[K, V]).value, true
}

func (c *lruCache[K, V]) put(key K, value V) {
	if c.capacity <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		el.Value.(*lruItem[K, V]).value = value
		c.order.MoveToFront(el)
		return
	}
	c.items[key] = c.order.PushFront(&lruItem[K, V]{key: key, value: value})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*lruItem[K, V]).key)
	}
}

func (c *lruCache[K, V]) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
