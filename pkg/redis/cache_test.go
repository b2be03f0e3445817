package redis

import (
	"testing"

	"github.com/go-redis/redis/v8"
)

func TestConfigAddr(t *testing.T) {
	cfg := &Config{Host: "localhost", Port: "6379"}
	if got := cfg.Addr(); got != "localhost:6379" {
		t.Fatalf("expected localhost:6379, got %q", got)
	}

	cfg = &Config{Host: "::1", Port: "6380"}
	if got := cfg.Addr(); got != "[::1]:6380" {
		t.Fatalf("expected bracketed IPv6 address, got %q", got)
	}
}

func TestNewRedisCache_RequiresHost(t *testing.T) {
	if _, err := NewRedisCache(&Config{Port: "6379"}); err == nil {
		t.Fatalf("expected error when host is empty")
	}
	if _, err := NewRedisCache(nil); err == nil {
		t.Fatalf("expected error for nil config")
	}
}

func TestClientFrom(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "localhost:6379"})
	defer client.Close()

	cache := NewRedisCacheFromClient(client)
	if got := ClientFrom(cache); got != client {
		t.Fatalf("expected the wrapped client, got %v", got)
	}

	if got := ClientFrom(nil); got != nil {
		t.Fatalf("expected nil for nil cache, got %v", got)
	}
	if got := ClientFrom(struct{}{}); got != nil {
		t.Fatalf("expected nil for a cache without a client, got %v", got)
	}
}
