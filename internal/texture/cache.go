package texture

import (
	"sync"

	"obj-tga-renderer/internal/tga"
)

// Resolver resolves a mesh file name to its decoded diffuse map.
type Resolver interface {
	Resolve(meshName string) *tga.Image
}

// Cache is a concurrency-safe texture cache keyed by resolved path, so
// batch workers rendering meshes that share a diffuse map decode it
// once.
type Cache struct {
	mu    sync.RWMutex
	items map[string]*cacheEntry
	index *Index
}

type cacheEntry struct {
	img    *tga.Image
	loaded bool // a load was attempted; img may still be nil
}

// NewCache creates a texture cache backed by the given index.
func NewCache(index *Index) *Cache {
	return &Cache{
		items: make(map[string]*cacheEntry),
		index: index,
	}
}

// Resolve loads and caches the diffuse map for a mesh name. Returns nil
// when the index has no entry or the file fails to decode; the caller
// falls back to untextured shading.
func (c *Cache) Resolve(meshName string) *tga.Image {
	path, ok := c.index.ResolvePath(meshName)
	if !ok {
		return nil
	}

	c.mu.RLock()
	if entry, exists := c.items[path]; exists {
		c.mu.RUnlock()
		return entry.img
	}
	c.mu.RUnlock()

	img, _ := Load(path)

	c.mu.Lock()
	if entry, exists := c.items[path]; exists {
		c.mu.Unlock()
		return entry.img
	}
	c.items[path] = &cacheEntry{img: img, loaded: true}
	c.mu.Unlock()

	return img
}
