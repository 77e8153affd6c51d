package storage

import (
	"context"
	"sync"
	"time"

	"foodhub/cart-svc/internal/domain"
	"foodhub/cart-svc/internal/service"
)

// MemoryRestaurantCache holds the restaurant list in process for TTL.
type MemoryRestaurantCache struct {
	mu       sync.RWMutex
	ttl      time.Duration
	now      func() time.Time
	entries  []domain.Restaurant
	loadedAt time.Time
	loaded   bool
}

func NewMemoryRestaurantCache(ttl time.Duration) *MemoryRestaurantCache {
	return &MemoryRestaurantCache{ttl: ttl, now: time.Now}
}

var _ service.RestaurantCache = (*MemoryRestaurantCache)(nil)

func (c *MemoryRestaurantCache) WithClock(now func() time.Time) *MemoryRestaurantCache {
	c.now = now
	return c
}

func (c *MemoryRestaurantCache) GetOrRefresh(ctx context.Context, load func(context.Context) ([]domain.Restaurant, error)) ([]domain.Restaurant, error) {
	c.mu.RLock()
	if c.loaded && c.now().Sub(c.loadedAt) < c.ttl {
		entries := c.entries
		c.mu.RUnlock()
		return entries, nil
	}
	c.mu.RUnlock()

	restaurants, err := load(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = restaurants
	c.loadedAt = c.now()
	c.loaded = true
	return restaurants, nil
}

func (c *MemoryRestaurantCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = nil
	c.loaded = false
	return nil
}
