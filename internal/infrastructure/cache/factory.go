package cache

import (
	"time"

	appcatalog "github.com/ecuDickens/project-orders-backend/internal/application/catalog"
	"github.com/ecuDickens/project-orders-backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// NewProductCache creates the configured product cache backend. A Redis
// backend that cannot be reached falls back to the in-memory cache with a
// warning, so a cache outage never blocks startup.
func NewProductCache(cfg *config.Config, logger *zap.Logger) appcatalog.ProductCache {
	ttl := normalizeTTL(cfg.Cache.ProductTTL)
	if cfg.Cache.Backend != "redis" {
		return NewInMemoryProductCache(ttl)
	}

	redisCache, err := NewRedisProductCache(RedisConfig{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	}, ttl, logger)
	if err != nil {
		logger.Warn("Redis unavailable, falling back to in-memory product cache",
			zap.Error(err),
		)
		return NewInMemoryProductCache(ttl)
	}

	logger.Info("using Redis product cache", zap.Duration("ttl", ttl))
	return redisCache
}

var _ appcatalog.ProductCache = (*InMemoryProductCache)(nil)
var _ appcatalog.ProductCache = (*RedisProductCache)(nil)

// defaultProductTTL guards against a zero TTL slipping through config.
const defaultProductTTL = 10 * time.Minute

func normalizeTTL(ttl time.Duration) time.Duration {
	if ttl <= 0 {
		return defaultProductTTL
	}
	return ttl
}
