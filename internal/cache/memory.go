package cache

import (
	gocache "github.com/patrickmn/go-cache"

	"github.com/ppiankov/phenotidy/internal/model"
)

// MemoryCache implements in-memory memoization of parsed entries.
// Classification is pure, so entries never expire within a run.
type MemoryCache struct {
	cache *gocache.Cache
}

// NewMemoryCache creates a new memory cache
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get retrieves a parsed entry from the cache
func (c *MemoryCache) Get(key string) (model.ParsedPhenotype, bool) {
	if val, found := c.cache.Get(key); found {
		return val.(model.ParsedPhenotype), true
	}
	return model.ParsedPhenotype{}, false
}

// Set stores a parsed entry in the cache
func (c *MemoryCache) Set(key string, value model.ParsedPhenotype) {
	c.cache.Set(key, value, gocache.NoExpiration)
}

// Clear removes all parsed entries
func (c *MemoryCache) Clear() {
	c.cache.Flush()
}
