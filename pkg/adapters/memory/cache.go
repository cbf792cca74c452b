// Package memory provides in-process adapters for the bodygen ports.
package memory

import (
	"context"
	"sync"

	"github.com/aretw0/bodygen/pkg/domain"
)

// Cache implements ports.TriCache in memory.
// Safe for concurrent use. Stored files are shared, not copied: TriFiles are
// read-only once decoded.
type Cache struct {
	data map[string]*domain.TriFile
	mu   sync.RWMutex
}

// NewCache creates a new in-memory cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]*domain.TriFile),
	}
}

// Put stores the file in memory.
func (c *Cache) Put(ctx context.Context, key string, tri *domain.TriFile) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = tri
	return nil
}

// Get retrieves the file from memory.
func (c *Cache) Get(ctx context.Context, key string) (*domain.TriFile, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tri, ok := c.data[key]
	if !ok {
		return nil, domain.ErrCacheMiss
	}
	return tri, nil
}

// Delete removes the file.
func (c *Cache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.data, key)
	return nil
}

// List returns cached keys.
func (c *Cache) List(ctx context.Context) ([]string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.data))
	for k := range c.data {
		keys = append(keys, k)
	}
	return keys, nil
}
