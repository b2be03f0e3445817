// Package retry re-runs an operation while it fails with transient errors,
// waiting between attempts with an exponential or fixed delay.
package retry

import (
	"context"
	"errors"
	"math"
	"net"
	"strings"
	"syscall"
	"time"
)

type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64

	// Retryable decides whether a failed attempt is worth repeating.
	// Nil means IsTransient.
	Retryable func(error) bool
	// OnRetry is called before each wait with the failed attempt number.
	OnRetry func(attempt int, err error, delay time.Duration)
}

func DefaultConfig() *Config {
	return &Config{
		MaxAttempts: 3,
		BaseDelay:   100 * time.Millisecond,
		MaxDelay:    30 * time.Second,
		Multiplier:  2.0,
	}
}

// Policy runs an operation up to MaxAttempts times.
type Policy struct {
	config *Config
	delay  func(attempt int) time.Duration
}

// NewExponentialBackoff waits BaseDelay * Multiplier^(attempt-1), capped at MaxDelay.
func NewExponentialBackoff(config *Config) *Policy {
	if config == nil {
		config = DefaultConfig()
	}
	return &Policy{
		config: config,
		delay: func(attempt int) time.Duration {
			d := float64(config.BaseDelay) * math.Pow(config.Multiplier, float64(attempt-1))
			if config.MaxDelay > 0 && d > float64(config.MaxDelay) {
				d = float64(config.MaxDelay)
			}
			return time.Duration(d)
		},
	}
}

// NewFixedDelay waits BaseDelay between every attempt.
func NewFixedDelay(config *Config) *Policy {
	if config == nil {
		config = DefaultConfig()
	}
	return &Policy{
		config: config,
		delay:  func(int) time.Duration { return config.BaseDelay },
	}
}

// Execute returns nil on the first success, the error itself when it is not
// retryable, and a *MaxRetriesExceededError once every attempt failed.
func (p *Policy) Execute(ctx context.Context, fn func() error) error {
	retryable := p.config.Retryable
	if retryable == nil {
		retryable = IsTransient
	}

	var lastErr error
	for attempt := 1; attempt <= p.config.MaxAttempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == p.config.MaxAttempts {
			break
		}
		if !retryable(lastErr) {
			return lastErr
		}

		wait := p.delay(attempt)
		if p.config.OnRetry != nil {
			p.config.OnRetry(attempt, lastErr, wait)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return errors.Join(ctx.Err(), lastErr)
		case <-timer.C:
		}
	}

	return &MaxRetriesExceededError{LastError: lastErr, MaxAttempts: p.config.MaxAttempts}
}

var transientMessages = []string{
	"connection refused",
	"connection reset",
	"timeout",
	"temporary failure",
	"service unavailable",
	"too many requests",
	"no such host",
	"the database system is starting up",
}

// IsTransient reports whether err looks like a dependency that is still
// starting or briefly unreachable.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientMessages {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

type MaxRetriesExceededError struct {
	LastError   error
	MaxAttempts int
}

func (e *MaxRetriesExceededError) Error() string {
	if e.LastError == nil {
		return "max retries exceeded"
	}
	return "max retries exceeded: " + e.LastError.Error()
}

func (e *MaxRetriesExceededError) Unwrap() error {
	return e.LastError
}

func IsMaxRetriesExceeded(err error) bool {
	var maxRetriesErr *MaxRetriesExceededError
	return errors.As(err, &maxRetriesErr)
}
