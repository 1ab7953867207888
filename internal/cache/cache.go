// Package cache provides a thread-safe TTL cache for embedding vectors.
// The cache is an explicit collaborator owned by whoever constructs the
// engine, so independently configured engines never share state and
// tests can run cache-free.
package cache

import (
	"crypto/md5"
	"fmt"
	"sync"
	"time"
)

type entry struct {
	vec       []float64
	expiresAt time.Time
}

func (e *entry) expired() bool {
	return time.Now().After(e.expiresAt)
}

// EmbeddingCache caches embedding vectors by text key with expiration.
type EmbeddingCache struct {
	mu    sync.RWMutex
	items map[string]*entry
	ttl   time.Duration
	stop  chan struct{}
	once  sync.Once
}

// NewEmbeddingCache creates a cache with the specified TTL and starts a
// background janitor. Call Close to stop it.
func NewEmbeddingCache(ttl time.Duration) *EmbeddingCache {
	c := &EmbeddingCache{
		items: make(map[string]*entry),
		ttl:   ttl,
		stop:  make(chan struct{}),
	}
	go c.cleanup()
	return c
}

// cleanup removes expired items periodically.
func (c *EmbeddingCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stop:
			return
		case <-ticker.C:
			c.mu.Lock()
			for key, item := range c.items {
				if item.expired() {
					delete(c.items, key)
				}
			}
			c.mu.Unlock()
		}
	}
}

// Key derives a consistent cache key from input text.
func (c *EmbeddingCache) Key(text string) string {
	hash := md5.Sum([]byte(text))
	return fmt.Sprintf("%x", hash)
}

// Get retrieves a cached vector. The returned slice must not be mutated.
func (c *EmbeddingCache) Get(key string) ([]float64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	item, exists := c.items[key]
	if !exists || item.expired() {
		return nil, false
	}
	return item.vec, true
}

// Set stores a vector under the given key.
func (c *EmbeddingCache) Set(key string, vec []float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[key] = &entry{
		vec:       vec,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Len returns the number of cached entries, expired or not.
func (c *EmbeddingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Close stops the background janitor.
func (c *EmbeddingCache) Close() {
	c.once.Do(func() { close(c.stop) })
}
