package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync/atomic"

	"github.com/shandysiswandi/gopos/internal/pkg/stacktrace"
)

// dispatch runs handler with panic recovery and applies auto ack unless the
// handler already responded.
func dispatch(ctx context.Context, driver string, handler Handler, msg Message, responded *atomic.Bool, autoAck bool) {
	err := safeCall(ctx, driver, func() error { return handler(ctx, msg) })
	if !autoAck || responded.Load() {
		return
	}

	var ackErr error
	if err == nil {
		ackErr = msg.Ack(ctx)
	} else {
		ackErr = msg.Nack(ctx)
	}
	if ackErr != nil {
		slog.WarnContext(ctx, "failed to settle message", "driver", driver, "error", ackErr)
	}
}

func safeCall(ctx context.Context, driver string, fn func() error) (err error) {
	defer func() {
		rvr := recover()
		if rvr == nil {
			return
		}
		stack := debug.Stack()
		if paths := stacktrace.InternalPaths(stack); len(paths) > 0 {
			slog.ErrorContext(ctx, "panic in messaging handler", "driver", driver, "panic", rvr, "stack", paths)
		} else {
			slog.ErrorContext(ctx, "panic in messaging handler", "driver", driver, "panic", rvr, "stack", string(stack))
		}
		err = fmt.Errorf("messaging: panic in %s handler: %v", driver, rvr)
	}()

	return fn()
}
