package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	productCachePrefix     = "product:detail:"
	productListCachePrefix = "products:v:"
	cacheVersionKey        = "products:version"
)

// CacheManager handles the Redis read cache for catalog responses. Every
// operation is best-effort; a Redis failure degrades to a direct read.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(rdb *redis.Client, ttl time.Duration) *CacheManager {
	return &CacheManager{redis: rdb, ttl: ttl}
}

// GetList retrieves a cached product list response for the given filter.
func (cm *CacheManager) GetList(ctx context.Context, category, query string, out interface{}) bool {
	version, err := cm.getCacheVersion(ctx)
	if err != nil || version == 0 {
		return false
	}

	cached, err := cm.redis.Get(ctx, cm.listCacheKey(version, category, query)).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(cached), out); err != nil {
		zap.L().Warn("failed to unmarshal cached product list", zap.Error(err))
		return false
	}
	return true
}

// SetListAsync caches a product list response without blocking the request.
func (cm *CacheManager) SetListAsync(category, query string, response interface{}) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(bgCtx)
		if err != nil || version == 0 {
			return
		}

		jsonBytes, err := json.Marshal(response)
		if err != nil {
			zap.L().Warn("failed to marshal product list for cache", zap.Error(err))
			return
		}
		if err := cm.redis.Set(bgCtx, cm.listCacheKey(version, category, query), jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("failed to cache product list", zap.Error(err))
		}
	}()
}

// GetProduct retrieves a cached product detail response.
func (cm *CacheManager) GetProduct(ctx context.Context, productID int64, out interface{}) bool {
	cached, err := cm.redis.Get(ctx, fmt.Sprintf("%s%d", productCachePrefix, productID)).Result()
	if err != nil {
		return false
	}
	if err := json.Unmarshal([]byte(cached), out); err != nil {
		zap.L().Warn("failed to unmarshal cached product", zap.Error(err), zap.Int64("product_id", productID))
		return false
	}
	return true
}

// SetProductAsync caches a product detail response without blocking.
func (cm *CacheManager) SetProductAsync(productID int64, response interface{}) {
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		jsonBytes, err := json.Marshal(response)
		if err != nil {
			zap.L().Warn("failed to marshal product for cache", zap.Error(err), zap.Int64("product_id", productID))
			return
		}
		key := fmt.Sprintf("%s%d", productCachePrefix, productID)
		if err := cm.redis.Set(bgCtx, key, jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("failed to cache product", zap.Error(err), zap.Int64("product_id", productID))
		}
	}()
}

// Invalidate drops all list caches by bumping the version key.
func (cm *CacheManager) Invalidate(ctx context.Context) error {
	newVersion, err := cm.redis.Incr(ctx, cacheVersionKey).Result()
	if err != nil {
		return fmt.Errorf("failed to invalidate cache: %w", err)
	}
	zap.L().Info("catalog cache invalidated", zap.Int64("new_version", newVersion))
	return nil
}

func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	const maxRetries = 3

	for i := 0; i < maxRetries; i++ {
		ver, err := cm.redis.Get(ctx, cacheVersionKey).Int64()
		if err == nil && ver > 0 {
			return ver, nil
		}
		if err == redis.Nil {
			if err := cm.redis.Set(ctx, cacheVersionKey, 1, 0).Err(); err == nil {
				return 1, nil
			}
		}
		if i < maxRetries-1 {
			time.Sleep(time.Millisecond * 50)
		}
	}
	return 0, fmt.Errorf("failed to get cache version after %d retries", maxRetries)
}

func (cm *CacheManager) listCacheKey(version int64, category, query string) string {
	return fmt.Sprintf("%s%d:c:%s:q:%s", productListCachePrefix, version, category, query)
}
