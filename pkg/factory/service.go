package factory

import (
	"context"
	"time"

	"github.com/akeren/bizguard-leads/pkg/ratelimit"
	pkgredis "github.com/akeren/bizguard-leads/pkg/redis"
)

type Cache interface {
	Ping(ctx context.Context) error
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
	Logger   ratelimit.Logger
}

type RateLimiterFactory interface {
	CreateRateLimiter() ratelimit.RateLimiter
}

type DefaultRateLimiterFactory struct {
	config *ratelimit.RateLimitConfig
}

// NewDefaultRateLimiterFactory shares limits across instances through Redis
// when cache exposes a client, and keeps them in memory otherwise.
func NewDefaultRateLimiterFactory(requests int, window time.Duration, cache Cache, logger ratelimit.Logger) *DefaultRateLimiterFactory {
	return &DefaultRateLimiterFactory{
		config: &ratelimit.RateLimitConfig{
			Requests: requests,
			Window:   window,
			Redis:    pkgredis.ClientFrom(cache),
			Logger:   logger,
		},
	}
}

func (f *DefaultRateLimiterFactory) CreateRateLimiter() ratelimit.RateLimiter {
	return ratelimit.NewRateLimiter(f.config)
}

type FactoryContainer struct {
	// SubmitRateLimiterFactory builds the limiter for the public submit endpoint.
	SubmitRateLimiterFactory RateLimiterFactory
	// MonitoringRateLimiterFactory builds the stricter limiter for status probes.
	MonitoringRateLimiterFactory RateLimiterFactory
}

func NewFactoryContainer(submitLimit *RateLimitConfig, monitoringLimit *RateLimitConfig, cache Cache) *FactoryContainer {
	return &FactoryContainer{
		SubmitRateLimiterFactory:     NewDefaultRateLimiterFactory(submitLimit.Requests, submitLimit.Window, cache, submitLimit.Logger),
		MonitoringRateLimiterFactory: NewDefaultRateLimiterFactory(monitoringLimit.Requests, monitoringLimit.Window, nil, monitoringLimit.Logger),
	}
}
