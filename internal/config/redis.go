package config

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// InitRedis connects to Redis and pings it. It returns nil, nil when
// REDIS_ADDR is empty so callers can fall back to the in-process cache.
func InitRedis(ctx context.Context, s *Settings) (*redis.Client, error) {
	if s.RedisAddr == "" {
		return nil, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     s.RedisAddr,
		Password: s.RedisPassword,
		DB:       s.RedisDB,
	})

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	Logger.Info("Connected to Redis", zap.String("addr", s.RedisAddr), zap.String("ping", pong))
	return client, nil
}
