// Package idempotency makes at-least-once work run once per key using redis
// as the shared state.
package idempotency

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrInProgress = errors.New("idempotency: operation already in progress")
	ErrDone       = errors.New("idempotency: operation already completed")
	ErrBadState   = errors.New("idempotency: unexpected key state")
)

const (
	stateInProgress = "in_progress"
	stateDone       = "done"

	defaultLockFor = time.Minute
	defaultKeepFor = time.Hour
)

type Config struct {
	// Prefix namespaces keys, e.g. "gopos:notification".
	Prefix string
	// LockFor bounds how long a crashed worker holds a key.
	LockFor time.Duration
	// KeepFor is how long a completed key is remembered.
	KeepFor time.Duration
}

type Guard struct {
	rdb redis.Cmdable
	cfg Config
}

func New(rdb redis.Cmdable, cfg Config) *Guard {
	if cfg.Prefix == "" {
		cfg.Prefix = "idempotency"
	}
	if cfg.LockFor <= 0 {
		cfg.LockFor = defaultLockFor
	}
	if cfg.KeepFor <= 0 {
		cfg.KeepFor = defaultKeepFor
	}
	return &Guard{rdb: rdb, cfg: cfg}
}

// Do runs fn unless key already ran or is running. A failed fn releases the
// key so a redelivery can try again.
func (g *Guard) Do(ctx context.Context, key string, fn func(context.Context) error) error {
	fk := g.cfg.Prefix + ":" + key

	if err := g.acquire(ctx, fk); err != nil {
		return err
	}

	if err := fn(ctx); err != nil {
		if delErr := g.rdb.Del(context.WithoutCancel(ctx), fk).Err(); delErr != nil {
			return errors.Join(err, delErr)
		}
		return err
	}

	return g.rdb.Set(context.WithoutCancel(ctx), fk, stateDone, g.cfg.KeepFor).Err()
}

func (g *Guard) acquire(ctx context.Context, fk string) error {
	// two rounds cover a key that expires between SETNX and GET
	for range 2 {
		ok, err := g.rdb.SetNX(ctx, fk, stateInProgress, g.cfg.LockFor).Result()
		if err != nil {
			return err
		}
		if ok {
			return nil
		}

		state, err := g.rdb.Get(ctx, fk).Result()
		if errors.Is(err, redis.Nil) {
			continue
		}
		if err != nil {
			return err
		}

		switch state {
		case stateInProgress:
			return ErrInProgress
		case stateDone:
			return ErrDone
		default:
			return ErrBadState
		}
	}

	return ErrBadState
}
