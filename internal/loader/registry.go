package loader

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/xzzpig/graph-gateway/internal/core/config"
	"github.com/xzzpig/graph-gateway/internal/core/logger"
)

// Registry holds the configured backends by name.
type Registry struct {
	backends map[string]Loader
	redis    *redis.Client
}

// NewRegistry builds a loader per configured backend, wrapped in the response
// cache when caching is enabled.
func NewRegistry(ctx context.Context, cfg *config.Config) (*Registry, error) {
	log := logger.Named("loader")
	r := &Registry{backends: make(map[string]Loader, len(cfg.Backends))}

	var cache Cache
	if cfg.Cache.Enabled {
		if cfg.UsesRedis() {
			r.redis = redis.NewClient(&redis.Options{
				Addr:     cfg.Cache.RedisAddr,
				Password: cfg.Cache.RedisPassword,
				DB:       cfg.Cache.RedisDB,
			})
			if err := r.redis.Ping(ctx).Err(); err != nil {
				_ = r.redis.Close()
				return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Cache.RedisAddr, err)
			}
			cache = NewRedisCache(r.redis)
			log.Info("Using redis response cache", zap.String("addr", cfg.Cache.RedisAddr))
		} else {
			cache = NewMemoryCache(cfg.Cache.MemorySize)
			log.Info("Using in-memory response cache", zap.Int("size", cfg.Cache.MemorySize))
		}
	}

	for name, backend := range cfg.Backends {
		if backend.URL == "" {
			return nil, fmt.Errorf("backend %s has no url", name)
		}
		var l Loader = NewHTTPLoader(name, backend.URL, backend.Timeout)
		if cache != nil {
			l = Cached(l, cache, cfg.Cache.TTL)
		}
		r.backends[name] = l
		log.Debug("Registered backend", zap.String("name", name), zap.String("url", backend.URL))
	}
	return r, nil
}

// NewStaticRegistry wraps ready-made loaders.
func NewStaticRegistry(backends map[string]Loader) *Registry {
	r := &Registry{backends: make(map[string]Loader, len(backends))}
	for name, l := range backends {
		r.backends[name] = l
	}
	return r
}

// Get returns the named backend.
func (r *Registry) Get(name string) (Loader, bool) {
	l, ok := r.backends[name]
	return l, ok
}

// Names returns the backend names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.backends))
	for name := range r.backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Close releases the shared cache connection.
func (r *Registry) Close() error {
	if r.redis != nil {
		return r.redis.Close()
	}
	return nil
}
