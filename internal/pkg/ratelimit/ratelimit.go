// Package ratelimit throttles repeated actions per key (for example OTP
// requests per e-mail address) with a cooldown and a windowed counter kept
// in Redis.
package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	ErrTooSoon = errors.New("ratelimit: please wait before trying again")
	ErrBlocked = errors.New("ratelimit: too many attempts")
)

// Error wraps ErrTooSoon or ErrBlocked with the time left.
type Error struct {
	Reason     error
	RetryAfter time.Duration
}

func (e *Error) Error() string {
	return fmt.Sprintf("%v, retry after %s", e.Reason, e.RetryAfter.Round(time.Second))
}

func (e *Error) Unwrap() error { return e.Reason }

type Config struct {
	// Prefix namespaces keys, e.g. "gopos:otp".
	Prefix string
	// Cooldown is the minimum gap between two allowed calls.
	Cooldown time.Duration
	// Window and Max bound the number of calls; exceeding Max blocks the key
	// for BlockFor (Window*3 when zero).
	Window   time.Duration
	Max      int
	BlockFor time.Duration
}

type Limiter struct {
	rdb redis.Cmdable
	cfg Config
}

func New(rdb redis.Cmdable, cfg Config) *Limiter {
	if cfg.Prefix == "" {
		cfg.Prefix = "ratelimit"
	}
	if cfg.BlockFor <= 0 {
		cfg.BlockFor = cfg.Window * 3
	}
	return &Limiter{rdb: rdb, cfg: cfg}
}

func (l *Limiter) keys(key string) (block, last, count string) {
	p := l.cfg.Prefix
	return p + ":block:" + key, p + ":last:" + key, p + ":count:" + key
}

// Allow records one attempt for key. It returns an *Error when the caller
// is blocked or still cooling down.
func (l *Limiter) Allow(ctx context.Context, key string) error {
	blockKey, lastKey, countKey := l.keys(key)

	if ttl, err := l.ttl(ctx, blockKey); err != nil {
		return err
	} else if ttl > 0 {
		return &Error{Reason: ErrBlocked, RetryAfter: ttl}
	}

	if ttl, err := l.ttl(ctx, lastKey); err != nil {
		return err
	} else if ttl > 0 {
		return &Error{Reason: ErrTooSoon, RetryAfter: ttl}
	}

	if l.cfg.Max > 0 && l.cfg.Window > 0 {
		var incr *redis.IntCmd
		if _, err := l.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			incr = pipe.Incr(ctx, countKey)
			pipe.ExpireNX(ctx, countKey, l.cfg.Window)
			return nil
		}); err != nil {
			return fmt.Errorf("ratelimit: count: %w", err)
		}

		if incr.Val() > int64(l.cfg.Max) {
			if err := l.rdb.Set(ctx, blockKey, "1", l.cfg.BlockFor).Err(); err != nil {
				return fmt.Errorf("ratelimit: block: %w", err)
			}
			return &Error{Reason: ErrBlocked, RetryAfter: l.cfg.BlockFor}
		}
	}

	if l.cfg.Cooldown > 0 {
		if err := l.rdb.Set(ctx, lastKey, "1", l.cfg.Cooldown).Err(); err != nil {
			return fmt.Errorf("ratelimit: cooldown: %w", err)
		}
	}

	return nil
}

func (l *Limiter) ttl(ctx context.Context, key string) (time.Duration, error) {
	ttl, err := l.rdb.PTTL(ctx, key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("ratelimit: ttl: %w", err)
	}
	return ttl, nil
}
