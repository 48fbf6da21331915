package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/CreativeUnicorns/simpleprefs"
)

// item represents a single cache item with a value and an expiration time.
type item struct {
	value      []byte
	expiration time.Time
}

func (it item) expired(now time.Time) bool {
	return !it.expiration.IsZero() && now.After(it.expiration)
}

// MemoryCache implements the Cache interface using an in-memory map.
type MemoryCache struct {
	mu        sync.RWMutex
	items     map[string]item
	stop      chan struct{}
	closeOnce sync.Once
}

// NewMemoryCache initializes a MemoryCache that sweeps expired items every minute.
func NewMemoryCache() *MemoryCache {
	return NewMemoryCacheWithInterval(time.Minute)
}

// NewMemoryCacheWithInterval initializes a MemoryCache whose sweeper runs every interval.
func NewMemoryCacheWithInterval(interval time.Duration) *MemoryCache {
	c := &MemoryCache{
		items: make(map[string]item),
		stop:  make(chan struct{}),
	}
	go c.gc(interval)
	return c
}

// Get returns the value stored under key.
// Missing and expired keys both report simpleprefs.ErrNotFound.
func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	it, exists := c.items[key]
	if !exists || it.expired(time.Now()) {
		return nil, simpleprefs.ErrNotFound
	}
	return it.value, nil
}

// Set stores value under key. A positive ttl makes the key expire after that duration.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var expiration time.Time
	if ttl > 0 {
		expiration = time.Now().Add(ttl)
	}
	c.items[key] = item{value: value, expiration: expiration}
	return nil
}

// Delete removes a key. Deleting a missing key is not an error.
func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

// DeletePrefix removes every key starting with prefix.
func (c *MemoryCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
	return nil
}

// Close stops the sweeper and drops all items. It is safe to call more than once.
func (c *MemoryCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stop)
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]item)
	return nil
}

// gc periodically removes expired items until Close is called.
func (c *MemoryCache) gc(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.sweep(time.Now())
		case <-c.stop:
			return
		}
	}
}

func (c *MemoryCache) sweep(now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, it := range c.items {
		if it.expired(now) {
			delete(c.items, key)
		}
	}
}
