package cache

import (
	"os"
	"path/filepath"
	"time"
)

// Layered combines a fast in-memory cache with a persistent disk cache.
// Reads check memory first and promote disk hits; writes go to both layers.
type Layered struct {
	memory *MemoryCache
	disk   *DiskCache
}

// NewLayered creates a layered cache. An empty dir resolves to
// ~/.cardlens/cache, falling back to the OS temp dir.
func NewLayered(dir string, ttl time.Duration) *Layered {
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".cardlens", "cache")
		} else {
			dir = filepath.Join(os.TempDir(), "cardlens-cache")
		}
	}
	return &Layered{
		memory: NewMemoryCache(ttl, 10*time.Minute),
		disk:   NewDiskCache(dir, ttl),
	}
}

// Get checks memory, then disk. Disk hits are promoted to memory.
func (c *Layered) Get(key string) ([]byte, bool) {
	if data, ok := c.memory.Get(key); ok {
		return data, true
	}
	if data, ok := c.disk.Get(key); ok {
		_ = c.memory.Set(key, data, 0)
		return data, true
	}
	return nil, false
}

// Set stores the value in both layers.
func (c *Layered) Set(key string, value []byte, ttl time.Duration) error {
	_ = c.memory.Set(key, value, ttl)
	return c.disk.Set(key, value, ttl)
}

// Delete removes the value from both layers.
func (c *Layered) Delete(key string) error {
	_ = c.memory.Delete(key)
	return c.disk.Delete(key)
}

// Clear empties both layers.
func (c *Layered) Clear() error {
	_ = c.memory.Clear()
	return c.disk.Clear()
}
