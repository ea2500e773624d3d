package config

import (
	"CivicQuiz/services/redis"
	"context"
	"fmt"
	"log/slog"
)

// ConnectRedis opens the redis client used for room state
func ConnectRedis(ctx context.Context, cfg ServerConfig) (*redis.RedisClient, error) {
	rc, err := redis.InitRedis(ctx, cfg.RedisURL, cfg.RedisDB, cfg.FlushRedis)
	if err != nil {
		return nil, fmt.Errorf("error connecting to redis: %w", err)
	}
	slog.Info("[REDIS] connection established", "db", cfg.RedisDB, "flushed", cfg.FlushRedis)
	return rc, nil
}
