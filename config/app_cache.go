package config

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/akeren/bizguard-leads/internal/log"
	pkgredis "github.com/akeren/bizguard-leads/pkg/redis"
	"github.com/akeren/bizguard-leads/pkg/retry"
	"github.com/akeren/bizguard-leads/pkg/utils"
)

// Cache backs wizard sessions and, when Redis is used, shared rate limits.
type Cache interface {
	// Get returns ("", nil) when a key is not found.
	Get(ctx context.Context, key string) (string, error)
	// Set uses ttl=0 for no expiry.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

var ErrCacheNotConfigured = errors.New("cache host is not configured")

type CacheConfig struct {
	Host            string
	Port            string
	Password        string
	ConnectAttempts int
}

func NewCacheConfig() *CacheConfig {
	return &CacheConfig{
		Host:            utils.GetEnvTrimmed("REDIS_HOST"),
		Port:            utils.GetEnvTrimmedOrDefault("REDIS_PORT", "6379"),
		Password:        os.Getenv("REDIS_PASSWORD"),
		ConnectAttempts: utils.GetEnvIntOrDefault("REDIS_CONNECT_ATTEMPTS", 3),
	}
}

func (cc *CacheConfig) IsConfigured() bool {
	return cc.Host != ""
}

// NewCache connects to Redis, retrying with backoff before giving up.
func (cc *CacheConfig) NewCache(logger *log.Logger) (Cache, error) {
	if !cc.IsConfigured() {
		return nil, ErrCacheNotConfigured
	}

	redisCfg := &pkgredis.Config{Host: cc.Host, Port: cc.Port, Password: cc.Password}

	backoff := retry.NewExponentialBackoff(&retry.Config{
		MaxAttempts: cc.ConnectAttempts,
		BaseDelay:   250 * time.Millisecond,
		MaxDelay:    2 * time.Second,
		Multiplier:  2,
		OnRetry: func(attempt int, err error, delay time.Duration) {
			logger.Warn("Redis not ready, retrying", "attempt", attempt, "delay", delay.String(), "error", err)
		},
	})

	var cache *pkgredis.RedisCache
	err := backoff.Execute(context.Background(), func() error {
		var connectErr error
		cache, connectErr = pkgredis.NewRedisCache(redisCfg)
		return connectErr
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Cache (Redis) connected", "addr", redisCfg.Addr())
	return cache, nil
}

// NewCacheOrNil returns nil when Redis is absent or unreachable. Callers then
// keep wizard sessions and rate limits in process memory.
func (cc *CacheConfig) NewCacheOrNil(logger *log.Logger) Cache {
	if !cc.IsConfigured() {
		logger.Info("Redis not configured; wizard sessions and rate limits stay in memory")
		return nil
	}

	cache, err := cc.NewCache(logger)
	if err != nil {
		logger.Error("Failed to connect to Redis; falling back to in-memory state", "error", err)
		return nil
	}

	return cache
}

func CloseCache(cache Cache, logger *log.Logger) error {
	if cache == nil {
		return nil
	}

	if err := cache.Close(); err != nil {
		logger.Error("Failed to close cache", "error", err)
		return err
	}

	logger.Info("Cache connection closed")
	return nil
}
