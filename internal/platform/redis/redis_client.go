// Package redis provides the shared Redis client.
package redis

import (
	"context"

	"github.com/redis/go-redis/v9"

	"market_backend/internal/platform/config"
	"market_backend/internal/platform/logger"
)

// NewClient connects to Redis and verifies the connection with a ping.
func NewClient(cfg config.RedisConfig) (*redis.Client, error) {
	log := logger.Get()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 接続確認
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Error().Err(err).Str("address", cfg.Addr).Msg("Redis connection failed")
		return nil, err
	}

	log.Info().Str("address", cfg.Addr).Msg("Redis connection successful")
	return rdb, nil
}
