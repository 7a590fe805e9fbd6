package inbound

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"

	"github.com/shandysiswandi/gopos/internal/notification/usecase"
	"github.com/shandysiswandi/gopos/internal/pkg/idempotency"
	"github.com/shandysiswandi/gopos/internal/pkg/instrument"
	"github.com/shandysiswandi/gopos/internal/pkg/messaging"
	"github.com/shandysiswandi/gopos/internal/pkg/uid"
	"github.com/shandysiswandi/gopos/internal/shared/event"
)

// guard is optional; nil handles every delivery.
type guard interface {
	Do(ctx context.Context, key string, fn func(context.Context) error) error
}

type MQHandler struct {
	uc    uc
	guard guard
	uuid  uid.StringID
	ins   instrument.Instrumentation
}

func (h *MQHandler) ensureCorrelationID(ctx context.Context, msg messaging.Message) context.Context {
	if cID, ok := messaging.HeaderValue(msg, event.HeaderCorrelationID); ok && cID != "" {
		return instrument.SetCorrelationID(ctx, cID)
	}
	return instrument.SetCorrelationID(ctx, h.uuid.Generate())
}

// PasswordForgotNotification never returns an error for a bad payload so
// the message is acked instead of redelivered forever.
func (h *MQHandler) PasswordForgotNotification(ctx context.Context, msg messaging.Message) error {
	ctx = h.ensureCorrelationID(ctx, msg)

	ctx, span := h.ins.Tracer("notification.inbound.mq").Start(ctx, "PasswordForgotNotification")
	defer span.End()

	slog.InfoContext(ctx, "consume: password forgot notification", "size", len(msg.Body()))

	var payload event.PasswordForgotMessage
	if err := json.Unmarshal(msg.Body(), &payload); err != nil {
		slog.ErrorContext(ctx, "failed to parse message body of password forgot notification", "error", err)
		return nil
	}

	consume := func(ctx context.Context) error {
		return h.uc.ConsumePasswordForgot(ctx, usecase.ConsumePasswordForgotInput{
			UserID:    payload.UserID,
			Email:     payload.Email,
			FullName:  payload.FullName,
			OTP:       payload.OTP,
			ExpiresAt: payload.ExpiresAt,
		})
	}

	var err error
	if h.guard == nil {
		err = consume(ctx)
	} else {
		// a challenge is identified by its owner and expiry
		key := "password_forgot:" + strconv.FormatInt(payload.UserID, 10) + ":" +
			strconv.FormatInt(payload.ExpiresAt.UnixNano(), 10)
		err = h.guard.Do(ctx, key, consume)
	}

	switch {
	case errors.Is(err, idempotency.ErrDone), errors.Is(err, idempotency.ErrInProgress):
		slog.InfoContext(ctx, "skip duplicate password forgot delivery", "user_id", payload.UserID, "reason", err)
		return nil
	case err != nil:
		slog.ErrorContext(ctx, "failed to consume password forgot", "user_id", payload.UserID, "error", err)
		return err
	}

	return nil
}
