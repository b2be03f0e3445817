// Package ratelimit decides whether a client key has spent its request budget.
package ratelimit

import (
	"time"

	"github.com/go-redis/redis/v8"
)

type Logger interface {
	Error(msg string, args ...interface{})
}

// RateLimiter allows Requests per Window for each key.
type RateLimiter interface {
	GetLimitDetails() (int, time.Duration)
	IsLimited(key string) (bool, error)
	Close() error
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	Redis    *redis.Client // nil selects the in-memory limiter
	Logger   Logger
}

// NewRateLimiter shares limits across instances when a Redis client is set.
func NewRateLimiter(config *RateLimitConfig) RateLimiter {
	requests, window := config.Requests, config.Window
	if requests <= 0 {
		requests = 1
	}
	if window <= 0 {
		window = time.Minute
	}

	if config.Redis != nil {
		return NewRedisRateLimiter(config.Redis, requests, window, config.Logger)
	}
	return NewInMemoryRateLimiter(requests, window)
}
