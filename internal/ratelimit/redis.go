package ratelimit

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "ratelimit:contact:"

// RedisLimiter is a fixed-window Limiter backed by a shared Redis counter,
// for deployments where multiple instances must enforce one limit.
//
// Each key maps to a Redis counter that is INCRed per attempt and given a
// window-length TTL when first created, so the window expires server-side.
// Redis errors fail open: the attempt is allowed and the error logged,
// so cache trouble never blocks the contact form.
type RedisLimiter struct {
	rdb    *redis.Client
	max    int
	window time.Duration
}

// NewRedisLimiter creates a RedisLimiter allowing max attempts per key
// per window.
func NewRedisLimiter(rdb *redis.Client, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, max: max, window: window}
}

var _ Limiter = (*RedisLimiter)(nil)

// Allow implements Limiter.
func (l *RedisLimiter) Allow(ctx context.Context, key string) (Decision, error) {
	rk := redisKeyPrefix + key

	pipe := l.rdb.TxPipeline()
	incr := pipe.Incr(ctx, rk)
	// NX: only set the TTL when the key has none, i.e. on window open.
	pipe.ExpireNX(ctx, rk, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		slog.Error("rate limit counter unavailable, allowing request", "error", err)
		return Decision{Allowed: true, Remaining: l.max - 1}, nil
	}

	count := int(incr.Val())
	if count > l.max {
		return Decision{Allowed: false, Remaining: 0}, nil
	}
	return Decision{Allowed: true, Remaining: l.max - count}, nil
}
