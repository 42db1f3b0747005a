package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ecuDickens/project-orders-backend/internal/domain/catalog"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const productKeyPrefix = "catalog:product:"

// RedisProductCache implements the product cache on Redis so multiple
// instances share one view of the catalog. Cache errors are logged and
// treated as misses; Redis being down never fails a request.
type RedisProductCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRedisProductCache creates a new Redis-backed product cache
func NewRedisProductCache(cfg RedisConfig, ttl time.Duration, logger *zap.Logger) (*RedisProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisProductCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("product-cache"),
	}, nil
}

// NewRedisProductCacheWithClient creates a cache with an existing Redis
// client, useful for testing or client sharing.
func NewRedisProductCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisProductCache {
	return &RedisProductCache{
		client: client,
		ttl:    ttl,
		logger: logger.Named("product-cache"),
	}
}

// Get returns the cached product for sku, if present.
func (c *RedisProductCache) Get(ctx context.Context, sku string) (*catalog.Product, bool) {
	data, err := c.client.Get(ctx, productKeyPrefix+sku).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("cache read failed", zap.String("sku", sku), zap.Error(err))
		}
		return nil, false
	}

	var product catalog.Product
	if err := json.Unmarshal(data, &product); err != nil {
		c.logger.Warn("cache entry corrupt, dropping", zap.String("sku", sku), zap.Error(err))
		c.Invalidate(ctx, sku)
		return nil, false
	}
	return &product, true
}

// Set stores the product under its SKU with the configured TTL.
func (c *RedisProductCache) Set(ctx context.Context, product *catalog.Product) {
	data, err := json.Marshal(product)
	if err != nil {
		c.logger.Warn("cache encode failed", zap.String("sku", product.SKU), zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, productKeyPrefix+product.SKU, data, c.ttl).Err(); err != nil {
		c.logger.Warn("cache write failed", zap.String("sku", product.SKU), zap.Error(err))
	}
}

// Invalidate removes the cached product for sku.
func (c *RedisProductCache) Invalidate(ctx context.Context, sku string) {
	if err := c.client.Del(ctx, productKeyPrefix+sku).Err(); err != nil {
		c.logger.Warn("cache delete failed", zap.String("sku", sku), zap.Error(err))
	}
}

// Close releases the Redis client.
func (c *RedisProductCache) Close() error {
	return c.client.Close()
}
