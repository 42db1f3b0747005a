// Package cache provides the product catalog cache in two flavors: a
// process-local TTL cache for single-instance deployments and a Redis-backed
// cache for sharing the catalog across instances.
package cache

import (
	"context"
	"sync"
	"time"

	"github.com/ecuDickens/project-orders-backend/internal/domain/catalog"
)

// InMemoryProductCache implements the product cache with a process-local map
// and TTL-based expiry.
type InMemoryProductCache struct {
	mu      sync.RWMutex
	entries map[string]productEntry
	ttl     time.Duration
}

type productEntry struct {
	product   catalog.Product
	expiresAt time.Time
}

// NewInMemoryProductCache creates a new in-memory product cache with the
// given TTL.
func NewInMemoryProductCache(ttl time.Duration) *InMemoryProductCache {
	return &InMemoryProductCache{
		entries: make(map[string]productEntry),
		ttl:     ttl,
	}
}

// Get returns the cached product for sku, if present and not expired.
func (c *InMemoryProductCache) Get(_ context.Context, sku string) (*catalog.Product, bool) {
	c.mu.RLock()
	entry, ok := c.entries[sku]
	c.mu.RUnlock()

	if !ok {
		return nil, false
	}
	if time.Now().After(entry.expiresAt) {
		c.Invalidate(context.Background(), sku)
		return nil, false
	}

	product := entry.product
	return &product, true
}

// Set stores the product under its SKU.
func (c *InMemoryProductCache) Set(_ context.Context, product *catalog.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[product.SKU] = productEntry{
		product:   *product,
		expiresAt: time.Now().Add(c.ttl),
	}
}

// Invalidate removes the cached product for sku.
func (c *InMemoryProductCache) Invalidate(_ context.Context, sku string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, sku)
}
