package maintenance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/aihub/hubadmin/pkg/models"
)

const (
	configCacheKey      = "hubadmin:platform_config"
	shortLinkCachePref  = "hubadmin:short_link:"
	defaultCacheTTL     = 5 * time.Minute
	cacheConnectTimeout = 5 * time.Second
)

// RedisCache caches the platform configuration and short-link targets for
// the public-facing read path. Writes to either go through the services,
// which invalidate here.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(ctx context.Context, addr, password string, db int) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, cacheConnectTimeout)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisCache{client: client, ttl: defaultCacheTTL}, nil
}

func (c *RedisCache) GetConfig(ctx context.Context) (*models.PlatformConfig, error) {
	payload, err := c.client.Get(ctx, configCacheKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}

		return nil, fmt.Errorf("failed to read cached config: %w", err)
	}

	var config models.PlatformConfig
	if err := json.Unmarshal(payload, &config); err != nil {
		return nil, fmt.Errorf("failed to decode cached config: %w", err)
	}

	return &config, nil
}

func (c *RedisCache) SetConfig(ctx context.Context, config *models.PlatformConfig) error {
	payload, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to encode config for cache: %w", err)
	}

	return c.client.Set(ctx, configCacheKey, payload, c.ttl).Err()
}

// InvalidateConfig drops the cached configuration document. Satisfies the
// cache hook the config service accepts.
func (c *RedisCache) InvalidateConfig(ctx context.Context) error {
	return c.client.Del(ctx, configCacheKey).Err()
}

// InvalidateShortLink drops one cached short-link target.
func (c *RedisCache) InvalidateShortLink(ctx context.Context, code string) error {
	return c.client.Del(ctx, shortLinkCachePref+code).Err()
}

// Flush drops every cache entry owned by the admin service.
func (c *RedisCache) Flush(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, "hubadmin:*", 0).Iterator()

	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("failed to flush cache entry %s: %w", iter.Val(), err)
		}
	}

	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan cache entries: %w", err)
	}

	return nil
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}
