package redis

import (
	"context"
	"fmt"
	"log/slog"
)

// InitRedis connects and pings. With flush set the selected DB is emptied,
// room state from a previous process is meaningless without its sessions.
func InitRedis(ctx context.Context, addr string, db int, flush bool) (*RedisClient, error) {
	rc, err := NewRedisClient(addr, db)
	if err != nil {
		return nil, err
	}

	if err := rc.client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	slog.Info("[REDIS] successfully connected")

	if flush {
		if err := rc.client.FlushDB(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to flush Redis DB: %w", err)
		}
	}
	return rc, nil
}

// CloseRedis gracefully closes the Redis connection
func CloseRedis(rc *RedisClient) error {
	if err := rc.client.Close(); err != nil {
		return fmt.Errorf("error closing Redis connection: %w", err)
	}
	return nil
}
