package client

import (
	"context"
	"time"

	"carwash/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// SetRedis connects and pings Redis. Unlike Mongo, an unreachable Redis is
// not fatal: callers fall back to in-process stores when c.Redis is nil.
func (c *Client) SetRedis(log *logger.Logger, addr, password string, db int, connTimeout time.Duration) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), connTimeout)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Redis unavailable, continuing without it", "addr", addr, "error", err)
		_ = rdb.Close()
		return
	}

	log.Info("Successfully connected to Redis", "addr", addr)
	c.Redis = rdb
}
