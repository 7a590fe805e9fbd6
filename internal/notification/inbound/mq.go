package inbound

import (
	"context"
	"log/slog"

	"github.com/samber/lo"
	"github.com/shandysiswandi/gopos/internal/pkg/config"
	"github.com/shandysiswandi/gopos/internal/pkg/goroutine"
	"github.com/shandysiswandi/gopos/internal/pkg/instrument"
	"github.com/shandysiswandi/gopos/internal/pkg/messaging"
	"github.com/shandysiswandi/gopos/internal/pkg/uid"
	"github.com/shandysiswandi/gopos/internal/shared/event"
)

type consumer struct {
	name    string
	topic   string // destination where publisher sent message
	handler messaging.Handler
}

// RegisterMQConsumer starts the consumers listed in
// modules.notification.consumer_names. It returns the names started.
func RegisterMQConsumer(
	ctx context.Context,
	cfg config.Config,
	routine *goroutine.Manager,
	messenger messaging.Consumer,
	dedupe guard,
	uuid uid.StringID,
	uc uc,
	ins instrument.Instrumentation,
) []string {
	mqHandler := &MQHandler{uc: uc, guard: dedupe, uuid: uuid, ins: ins}

	enabled := cfg.GetArray("modules.notification.consumer_names")
	concurrency := cfg.GetInt("modules.notification.consumer_concurrency")

	consumers := []consumer{
		{
			name:    event.PasswordForgotConsumerNotification,
			topic:   event.PasswordForgotDestination,
			handler: mqHandler.PasswordForgotNotification,
		},
	}

	selected := lo.Filter(consumers, func(c consumer, _ int) bool {
		return lo.Contains(enabled, c.name)
	})

	for _, c := range selected {
		routine.Go(ctx, func(pCtx context.Context) error {
			slog.InfoContext(ctx, "Running job for handling consumer", "consumer", c.name)
			return messenger.Consume(pCtx,
				c.topic,
				c.handler,
				messaging.WithQueueGroup(c.name),
				messaging.WithGroup(c.name),
				messaging.WithAutoAck(true),
				messaging.WithConcurrency(concurrency),
			)
		})
	}

	return lo.Map(selected, func(c consumer, _ int) string { return c.name })
}
