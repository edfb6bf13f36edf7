package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/atmx/payoff-engine/internal/model"
)

// MemoryCache implements Cache in process. Entries expire after ttl.
type MemoryCache struct {
	items *gocache.Cache
}

// NewMemoryCache creates an in-process cache. A zero ttl never expires.
func NewMemoryCache(ttl, cleanup time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = gocache.NoExpiration
	}
	return &MemoryCache{items: gocache.New(ttl, cleanup)}
}

func (c *MemoryCache) Get(_ context.Context, key string) (*model.Calculation, bool, error) {
	v, ok := c.items.Get(calcKey(key))
	if !ok {
		return nil, false, nil
	}
	// Return a copy to avoid external mutation.
	cp := *(v.(*model.Calculation))
	return &cp, true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, calc *model.Calculation) error {
	cp := *calc
	c.items.Set(calcKey(key), &cp, gocache.DefaultExpiration)
	return nil
}

// Len returns the number of cached entries, including expired ones not yet
// cleaned up.
func (c *MemoryCache) Len() int {
	return c.items.ItemCount()
}
