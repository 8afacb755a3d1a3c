// Package query provides declarative, cache-backed data fetching: named
// query units with fixed or payload-computed refetch intervals, prefix-based
// invalidation, and mutations that mark related reads stale.
package query

import (
	"strings"
	"sync"
	"time"
)

type entry struct {
	value any
	at    time.Time
	stale bool
}

// Cache is the shared registry of latest query results. Running queries
// register a kick channel under their key; Invalidate marks matching entries
// stale and kicks the owners into an immediate refetch.
type Cache struct {
	mu       sync.Mutex
	entries  map[string]entry
	watchers map[string][]chan struct{}
}

func NewCache() *Cache {
	return &Cache{
		entries:  make(map[string]entry),
		watchers: make(map[string][]chan struct{}),
	}
}

// Get returns the latest cached value for key and whether it is present and
// fresh. Stale values are returned too; the second result distinguishes them.
func (c *Cache) Get(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	return e.value, !e.stale
}

func (c *Cache) put(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = entry{value: value, at: time.Now()}
}

// Invalidate marks every entry whose key begins with prefix as stale and
// signals each registered watcher under a matching key. The kick channels
// are buffered, so a watcher that is already scheduled to refetch is not
// kicked twice.
func (c *Cache) Invalidate(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key, e := range c.entries {
		if strings.HasPrefix(key, prefix) {
			e.stale = true
			c.entries[key] = e
		}
	}
	for key, chans := range c.watchers {
		if !strings.HasPrefix(key, prefix) {
			continue
		}
		for _, ch := range chans {
			select {
			case ch <- struct{}{}:
			default:
			}
		}
	}
}

func (c *Cache) register(key string) chan struct{} {
	ch := make(chan struct{}, 1)
	c.mu.Lock()
	c.watchers[key] = append(c.watchers[key], ch)
	c.mu.Unlock()
	return ch
}

func (c *Cache) unregister(key string, ch chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	chans := c.watchers[key]
	for i, w := range chans {
		if w == ch {
			c.watchers[key] = append(chans[:i], chans[i+1:]...)
			break
		}
	}
	if len(c.watchers[key]) == 0 {
		delete(c.watchers, key)
	}
}
