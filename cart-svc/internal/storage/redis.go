package storage

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"foodhub/cart-svc/internal/domain"
	"foodhub/cart-svc/internal/service"
)

const restaurantsCacheKey = "foodhub:restaurants:all"

// RedisRestaurantCache stores the restaurant list as one JSON value with a TTL.
// Redis being unavailable degrades to loading from the store.
type RedisRestaurantCache struct {
	Client *redis.Client
	TTL    time.Duration
	Log    logrus.FieldLogger
}

func NewRedisRestaurantCache(client *redis.Client, ttl time.Duration, log logrus.FieldLogger) *RedisRestaurantCache {
	return &RedisRestaurantCache{Client: client, TTL: ttl, Log: log}
}

var _ service.RestaurantCache = (*RedisRestaurantCache)(nil)

func (c *RedisRestaurantCache) GetOrRefresh(ctx context.Context, load func(context.Context) ([]domain.Restaurant, error)) ([]domain.Restaurant, error) {
	cached, err := c.Client.Get(ctx, restaurantsCacheKey).Bytes()
	switch {
	case err == nil:
		var restaurants []domain.Restaurant
		if err := json.Unmarshal(cached, &restaurants); err == nil {
			return restaurants, nil
		}
		c.Log.WithError(err).Warn("discarding undecodable restaurant cache entry")
	case !errors.Is(err, redis.Nil):
		c.Log.WithError(err).Warn("restaurant cache read failed")
	}

	restaurants, err := load(ctx)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(restaurants)
	if err != nil {
		return restaurants, nil
	}
	if err := c.Client.Set(ctx, restaurantsCacheKey, payload, c.TTL).Err(); err != nil {
		c.Log.WithError(err).Warn("restaurant cache write failed")
	}
	return restaurants, nil
}

func (c *RedisRestaurantCache) Invalidate(ctx context.Context) error {
	return c.Client.Del(ctx, restaurantsCacheKey).Err()
}
