package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

const (
	redisKeyPrefix = "ratelimit:"
	redisTimeout   = 500 * time.Millisecond
)

// slidingWindow counts members scored by arrival time in milliseconds.
// KEYS[1] key; ARGV now_ms, window_ms, limit, member. Returns 1 when limited.
var slidingWindow = redis.NewScript(`
local key = KEYS[1]
local now = tonumber(ARGV[1])
local window = tonumber(ARGV[2])
local limit = tonumber(ARGV[3])

redis.call('ZREMRANGEBYSCORE', key, 0, now - window)

if redis.call('ZCARD', key) >= limit then
	return 1
end

redis.call('ZADD', key, now, ARGV[4])
redis.call('PEXPIRE', key, window * 2)
return 0
`)

// RedisRateLimiter enforces a sliding window shared by every instance that
// talks to the same Redis.
type RedisRateLimiter struct {
	client   *redis.Client
	requests int
	window   time.Duration
	logger   Logger
}

func NewRedisRateLimiter(client *redis.Client, requests int, window time.Duration, logger Logger) *RedisRateLimiter {
	return &RedisRateLimiter{
		client:   client,
		requests: requests,
		window:   window,
		logger:   logger,
	}
}

func (r *RedisRateLimiter) GetLimitDetails() (int, time.Duration) {
	return r.requests, r.window
}

func (r *RedisRateLimiter) IsLimited(key string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisTimeout)
	defer cancel()

	if !strings.HasPrefix(key, redisKeyPrefix) {
		key = redisKeyPrefix + key
	}

	limited, err := slidingWindow.Run(ctx, r.client, []string{key},
		time.Now().UnixMilli(),
		r.window.Milliseconds(),
		r.requests,
		uuid.NewString(),
	).Int()
	if err != nil {
		if r.logger != nil {
			r.logger.Error("Redis rate limit script failed", "key", key, "error", err)
		}
		return false, fmt.Errorf("rate limiter redis error: %w", err)
	}

	return limited == 1, nil
}

// Close leaves the client open; the application cache owns it.
func (r *RedisRateLimiter) Close() error {
	return nil
}
