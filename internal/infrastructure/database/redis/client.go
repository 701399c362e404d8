// Package redis provides the Redis client and the profile read-through cache.
package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stayscope/listing-intelligence/internal/config"
	"github.com/stayscope/listing-intelligence/pkg/errors"
)

const connectTimeout = 5 * time.Second

// NewClient opens a Redis connection pool and verifies it with a ping.
func NewClient(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     cfg.PoolSize,
		MinIdleConns: cfg.MinIdleConns,
		DialTimeout:  cfg.DialTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	})

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(err, errors.ErrCodeCacheError, "ping redis")
	}
	return client, nil
}
