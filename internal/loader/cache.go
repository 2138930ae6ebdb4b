package loader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/99designs/gqlgen/graphql/handler/lru"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/xzzpig/graph-gateway/internal/core/logger"
)

// Cache stores backend responses by request key.
type Cache interface {
	Get(ctx context.Context, key string) (*Response, bool, error)
	Set(ctx context.Context, key string, resp *Response, ttl time.Duration) error
}

type memoryEntry struct {
	resp      *Response
	expiresAt time.Time
}

// MemoryCache is a size-bounded in-process cache with per-entry expiry.
type MemoryCache struct {
	lru *lru.LRU[memoryEntry]
	now func() time.Time
}

// NewMemoryCache creates a MemoryCache holding up to size entries.
func NewMemoryCache(size int) *MemoryCache {
	if size <= 0 {
		size = 1000
	}
	return &MemoryCache{lru: lru.New[memoryEntry](size), now: time.Now}
}

// Get implements Cache.
func (c *MemoryCache) Get(ctx context.Context, key string) (*Response, bool, error) {
	e, ok := c.lru.Get(ctx, key)
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, false, nil
	}
	return e.resp, true, nil
}

// Set implements Cache.
func (c *MemoryCache) Set(ctx context.Context, key string, resp *Response, ttl time.Duration) error {
	c.lru.Add(ctx, key, memoryEntry{resp: resp, expiresAt: c.now().Add(ttl)})
	return nil
}

const redisKeyPrefix = "graph-gateway:"

// RedisCache shares responses between gateway instances.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a RedisCache on client.
func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

// Get implements Cache.
func (c *RedisCache) Get(ctx context.Context, key string) (*Response, bool, error) {
	data, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	var resp Response
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, false, fmt.Errorf("corrupt cache entry %s: %w", key, err)
	}
	return &resp, true, nil
}

// Set implements Cache.
func (c *RedisCache) Set(ctx context.Context, key string, resp *Response, ttl time.Duration) error {
	data, err := json.Marshal(resp)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, redisKeyPrefix+key, data, ttl).Err()
}

type cachedLoader struct {
	next  Loader
	cache Cache
	ttl   time.Duration
	log   *zap.Logger
}

// Cached wraps l with cache. Requests carrying an access token bypass it.
// Cache failures are logged and fall through to the backend.
func Cached(l Loader, cache Cache, ttl time.Duration) Loader {
	return &cachedLoader{next: l, cache: cache, ttl: ttl, log: logger.Named("loader.cache")}
}

func (c *cachedLoader) Load(ctx context.Context, path string, params Params) (*Response, error) {
	if _, ok := AccessTokenFromContext(ctx); ok {
		return c.next.Load(ctx, path, params)
	}

	key := Key(path, params)
	resp, hit, err := c.cache.Get(ctx, key)
	if err != nil {
		c.log.Warn("Cache read failed", zap.String("key", key), zap.Error(err))
	}
	if hit {
		return resp, nil
	}

	resp, err = c.next.Load(ctx, path, params)
	if err != nil {
		return nil, err
	}
	if err := c.cache.Set(ctx, key, resp, c.ttl); err != nil {
		c.log.Warn("Cache write failed", zap.String("key", key), zap.Error(err))
	}
	return resp, nil
}
