package mq

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/shandysiswandi/gopos/internal/account/usecase"
	"github.com/shandysiswandi/gopos/internal/pkg/instrument"
	"github.com/shandysiswandi/gopos/internal/pkg/messaging"
	"github.com/shandysiswandi/gopos/internal/shared/event"
	"go.opentelemetry.io/otel/codes"
)

// publishTimeout bounds how long a request waits on the broker.
const publishTimeout = 2 * time.Second

type Messaging struct {
	client  messaging.Publisher
	ins     instrument.Instrumentation
	timeout time.Duration
}

func NewMessaging(client messaging.Publisher, ins instrument.Instrumentation) *Messaging {
	return &Messaging{client: client, ins: ins, timeout: publishTimeout}
}

func (m *Messaging) PublishPasswordForgot(ctx context.Context, msg usecase.PasswordForgotEvent) error {
	ctx, span := m.ins.Tracer("account.outbound.mq").Start(ctx, "PublishPasswordForgot")
	defer span.End()

	body, err := json.Marshal(event.PasswordForgotMessage{
		UserID:    msg.UserID,
		Email:     msg.Email,
		FullName:  msg.FullName,
		OTP:       msg.OTP,
		ExpiresAt: msg.ExpiresAt,
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	cID := instrument.GetCorrelationID(ctx)
	pubCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	if err := m.client.Publish(pubCtx, event.PasswordForgotDestination, messaging.OutgoingMessage{
		Body:    body,
		Key:     []byte(strconv.FormatInt(msg.UserID, 10)),
		Headers: []messaging.Header{{Key: event.HeaderCorrelationID, Value: []byte(cID)}},
	}); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
