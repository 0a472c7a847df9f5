package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/uttarakargayathri/Style-Sense-GEN-AI/internal/config"
)

// Runs against a live redis; set REDIS_TEST_ADDR to enable.
func TestRedisCacheIntegration(t *testing.T) {
	addr := os.Getenv("REDIS_TEST_ADDR")
	if addr == "" {
		t.Skip("REDIS_TEST_ADDR not set")
	}

	c := NewRedisCache(config.RedisConfig{Addr: addr, TTL: time.Minute})
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := c.Ping(ctx); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	key := "stylesense:test:" + uuid.NewString()
	if _, found, err := c.Get(ctx, key); err != nil || found {
		t.Fatalf("Get missing key: found=%v err=%v", found, err)
	}

	if err := c.Set(ctx, key, "# Look"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, found, err := c.Get(ctx, key)
	if err != nil || !found || got != "# Look" {
		t.Errorf("Get: got %q found=%v err=%v", got, found, err)
	}
}

func TestGetOnUnreachableRedis(t *testing.T) {
	c := NewRedisCache(config.RedisConfig{Addr: "127.0.0.1:1", TTL: time.Minute})
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if _, found, err := c.Get(ctx, "k"); err == nil || found {
		t.Errorf("Get: found=%v err=%v, want a connection error", found, err)
	}
}
