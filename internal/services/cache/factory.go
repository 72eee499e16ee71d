package cache

import (
	"context"
	"fmt"

	"github.com/firmsite/site-api/pkg/config"
)

// New builds the backend selected by cache.backend. The returned stop
// function releases background resources.
func New(ctx context.Context, cfg config.CacheConfig) (Cache, func(), error) {
	switch cfg.Backend {
	case "", "memory":
		mc := NewMemoryCache(cfg.Memory.MaxSizeMB, cfg.Memory.CleanupInterval)
		return mc, mc.Stop, nil
	case "redis":
		rc, err := NewRedisCache(ctx, RedisOptions{
			Addr:      cfg.Redis.Addr,
			Password:  cfg.Redis.Password,
			DB:        cfg.Redis.DB,
			KeyPrefix: cfg.Redis.KeyPrefix,
		})
		if err != nil {
			return nil, nil, err
		}
		return rc, func() { _ = rc.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
	}
}
