// Package memcache is the in-process listing cache used when no Redis is
// configured. Each instance only sees its own invalidations unless the
// invalidation worker is running.
package memcache

import (
	"context"
	"sync"
	"time"

	postPort "yatube/internal/ports/post"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// ListingCache guards gen and the LRU with one lock so a Set racing an
// Invalidate either lands before the purge or is dropped.
type ListingCache struct {
	mu  sync.Mutex
	gen uint64
	lru *expirable.LRU[int, *postPort.PageDTO]
}

// NewListingCache keeps up to size pages for ttl each. ttl <= 0 never expires.
func NewListingCache(size int, ttl time.Duration) *ListingCache {
	return &ListingCache{lru: expirable.NewLRU[int, *postPort.PageDTO](size, nil, ttl)}
}

func (c *ListingCache) Get(_ context.Context, page int) (*postPort.PageDTO, uint64, bool, error) {
	c.mu.Lock()
	gen := c.gen
	c.mu.Unlock()
	p, ok := c.lru.Get(page)
	return p, gen, ok, nil
}

// Set drops p when the cache was invalidated after the Get that returned gen.
func (c *ListingCache) Set(_ context.Context, page int, gen uint64, p *postPort.PageDTO) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen != c.gen {
		return nil
	}
	c.lru.Add(page, p)
	return nil
}

func (c *ListingCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.lru.Purge()
	return nil
}
