package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/eatwise/backend/internal/domain"
)

// cacheItem is one stored analysis with its expiration
type cacheItem struct {
	payload    []byte
	expiration time.Time
}

// MemoryCache is a thread-safe in-memory store of completed meal analyses
// with TTL support, keyed by normalized meal description. Entries are held
// as JSON snapshots, so a cached analysis is isolated from any later
// mutation of the value the caller stored or received.
type MemoryCache struct {
	data  map[string]cacheItem
	mutex sync.RWMutex
}

// NewMemoryCache creates a new in-memory analysis cache
func NewMemoryCache() *MemoryCache {
	cache := &MemoryCache{
		data: make(map[string]cacheItem),
	}

	// Background sweep removes expired analyses every 10 minutes
	go cache.cleanupExpired()

	return cache
}

// Get returns a copy of the cached analysis for key, or ErrCacheMiss.
func (c *MemoryCache) Get(ctx context.Context, key string) (*domain.MealAnalysis, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return nil, domain.ErrCacheMiss
	}

	if time.Now().After(item.expiration) {
		return nil, domain.ErrCacheMiss
	}

	var analysis domain.MealAnalysis
	if err := json.Unmarshal(item.payload, &analysis); err != nil {
		// A snapshot that no longer decodes is useless; treat it as absent.
		return nil, domain.ErrCacheMiss
	}

	return &analysis, nil
}

// Set stores a snapshot of the analysis with the given TTL.
func (c *MemoryCache) Set(ctx context.Context, key string, analysis *domain.MealAnalysis, ttl time.Duration) error {
	payload, err := json.Marshal(analysis)
	if err != nil {
		return err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.data[key] = cacheItem{
		payload:    payload,
		expiration: time.Now().Add(ttl),
	}

	return nil
}

// Delete removes an analysis from the cache
func (c *MemoryCache) Delete(ctx context.Context, key string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.data, key)
	return nil
}

// Exists checks if a key exists in the cache and is not expired
func (c *MemoryCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	item, exists := c.data[key]
	if !exists {
		return false, nil
	}

	if time.Now().After(item.expiration) {
		return false, nil
	}

	return true, nil
}

// cleanupExpired removes expired entries from the cache periodically
func (c *MemoryCache) cleanupExpired() {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mutex.Lock()
		now := time.Now()
		for key, item := range c.data {
			if now.After(item.expiration) {
				delete(c.data, key)
			}
		}
		c.mutex.Unlock()
	}
}

// Size returns the current number of cached analyses
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.data)
}

// Clear removes all cached analyses
func (c *MemoryCache) Clear() {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.data = make(map[string]cacheItem)
}
