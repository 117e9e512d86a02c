package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"

	"parcel-router/internal/config"
)

// New creates the cache backend selected by CACHE_BACKEND. The Redis backend
// is verified with a ping before use.
func New(cfg *config.Config) (Cache, error) {
	switch cfg.CacheBackend {
	case "", "memory":
		return NewLocalCache(), nil
	case "redis":
		db, err := strconv.Atoi(cfg.RedisDB)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
		}
		poolSize, err := strconv.Atoi(cfg.RedisPoolSize)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_POOL_SIZE: %w", err)
		}

		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddress,
			Password: cfg.RedisPassword,
			DB:       db,
			PoolSize: poolSize,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		return NewRedisCache(client, "route:"), nil
	default:
		return nil, fmt.Errorf("unsupported cache backend %q", cfg.CacheBackend)
	}
}
