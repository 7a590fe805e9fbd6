package idempotency

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
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

func TestGuardRunsOnce(t *testing.T) {
	// Arrange
	g := New(newRedis(t), Config{Prefix: "test"})
	ctx := context.Background()
	var calls int

	// Act
	first := g.Do(ctx, "k1", func(context.Context) error { calls++; return nil })
	second := g.Do(ctx, "k1", func(context.Context) error { calls++; return nil })

	// Assert
	if first != nil || !errors.Is(second, ErrDone) || calls != 1 {
		t.Fatalf("first = %v second = %v calls = %d", first, second, calls)
	}
}

func TestGuardReleasesOnFailure(t *testing.T) {
	// Arrange
	g := New(newRedis(t), Config{Prefix: "test"})
	ctx := context.Background()
	boom := errors.New("boom")

	// Act
	failed := g.Do(ctx, "k2", func(context.Context) error { return boom })
	retried := g.Do(ctx, "k2", func(context.Context) error { return nil })

	// Assert
	if !errors.Is(failed, boom) || retried != nil {
		t.Fatalf("failed = %v retried = %v", failed, retried)
	}
}

func TestGuardConcurrent(t *testing.T) {
	// Arrange
	g := New(newRedis(t), Config{Prefix: "test", LockFor: 5 * time.Second})
	ctx := context.Background()
	var ran atomic.Int32
	var wg sync.WaitGroup

	// Act
	for range 8 {
		wg.Go(func() {
			_ = g.Do(ctx, "k3", func(context.Context) error {
				ran.Add(1)
				time.Sleep(50 * time.Millisecond)
				return nil
			})
		})
	}
	wg.Wait()

	// Assert
	if got := ran.Load(); got != 1 {
		t.Fatalf("ran = %d", got)
	}
}
