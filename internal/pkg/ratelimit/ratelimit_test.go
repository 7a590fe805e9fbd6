package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/testcontainers/testcontainers-go"
	tcredis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	if testing.Short() {
		t.Skip("redis container skipped in -short mode")
	}

	ctx := context.Background()
	container, err := tcredis.Run(ctx, "redis:7-alpine")
	if err != nil {
		t.Fatalf("start redis: %v", err)
	}
	t.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			t.Logf("terminate redis: %v", err)
		}
	})

	uri, err := container.ConnectionString(ctx)
	if err != nil {
		t.Fatalf("redis uri: %v", err)
	}
	opt, err := redis.ParseURL(uri)
	if err != nil {
		t.Fatalf("parse uri: %v", err)
	}

	rdb := redis.NewClient(opt)
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func TestLimiterCooldownAndBlock(t *testing.T) {
	// Arrange
	rdb := newRedis(t)
	l := New(rdb, Config{Prefix: "test", Cooldown: 200 * time.Millisecond, Window: time.Minute, Max: 2})
	ctx := context.Background()

	// Act & Assert
	if err := l.Allow(ctx, "alice@example.com"); err != nil {
		t.Fatalf("first call: %v", err)
	}

	err := l.Allow(ctx, "alice@example.com")
	var lerr *Error
	if !errors.As(err, &lerr) || !errors.Is(err, ErrTooSoon) || lerr.RetryAfter <= 0 {
		t.Fatalf("second call = %v", err)
	}

	time.Sleep(250 * time.Millisecond)
	if err := l.Allow(ctx, "alice@example.com"); err != nil {
		t.Fatalf("after cooldown: %v", err)
	}

	time.Sleep(250 * time.Millisecond)
	if err := l.Allow(ctx, "alice@example.com"); !errors.Is(err, ErrBlocked) {
		t.Fatalf("over max = %v", err)
	}
	if err := l.Allow(ctx, "bob@example.com"); err != nil {
		t.Fatalf("other key: %v", err)
	}
}
