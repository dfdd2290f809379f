package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache is a small byte-blob cache over redis. A nil *Cache is valid
// and behaves as a cache that never hits, so callers need no redis
// checks of their own.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Cache {
	if client == nil {
		return nil
	}
	return &Cache{client: client, ttl: ttl}
}

func (c *Cache) Get(ctx context.Context, key string) ([]byte, bool) {
	if c == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

func (c *Cache) Set(ctx context.Context, key string, value []byte) {
	if c == nil {
		return
	}
	c.client.Set(ctx, key, value, c.ttl)
}

func (c *Cache) Delete(ctx context.Context, key string) {
	if c == nil {
		return
	}
	c.client.Del(ctx, key)
}
