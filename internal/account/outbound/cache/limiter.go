package cache

import (
	"context"

	"github.com/shandysiswandi/gopos/internal/pkg/instrument"
	"github.com/shandysiswandi/gopos/internal/pkg/ratelimit"
	"go.opentelemetry.io/otel/codes"
)

type allower interface {
	Allow(ctx context.Context, key string) error
}

// Limiter throttles OTP requests per e-mail address and OTP attempts per
// client IP. A nil allower lets every request through.
type Limiter struct {
	forgot   allower
	attempts allower
	ins      instrument.Instrumentation
}

func NewLimiter(forgot, attempts *ratelimit.Limiter, ins instrument.Instrumentation) *Limiter {
	l := &Limiter{ins: ins}
	if forgot != nil {
		l.forgot = forgot
	}
	if attempts != nil {
		l.attempts = attempts
	}
	return l
}

func (l *Limiter) AllowPasswordForgot(ctx context.Context, email string) error {
	return l.allow(ctx, l.forgot, "AllowPasswordForgot", "password_forgot:"+email)
}

// AllowPasswordRecover counts one OTP attempt for ip. Requests without a
// known address share the "password_recover:" bucket.
func (l *Limiter) AllowPasswordRecover(ctx context.Context, ip string) error {
	return l.allow(ctx, l.attempts, "AllowPasswordRecover", "password_recover:"+ip)
}

func (l *Limiter) allow(ctx context.Context, a allower, name, key string) error {
	if a == nil {
		return nil
	}

	ctx, span := l.ins.Tracer("account.outbound.cache").Start(ctx, name)
	defer span.End()

	if err := a.Allow(ctx, key); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
