package notification

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gopos/internal/notification/inbound"
	"github.com/shandysiswandi/gopos/internal/notification/outbound/db"
	"github.com/shandysiswandi/gopos/internal/notification/outbound/email"
	"github.com/shandysiswandi/gopos/internal/notification/usecase"
	"github.com/shandysiswandi/gopos/internal/pkg/clock"
	"github.com/shandysiswandi/gopos/internal/pkg/config"
	"github.com/shandysiswandi/gopos/internal/pkg/goroutine"
	"github.com/shandysiswandi/gopos/internal/pkg/idempotency"
	"github.com/shandysiswandi/gopos/internal/pkg/instrument"
	"github.com/shandysiswandi/gopos/internal/pkg/mail"
	"github.com/shandysiswandi/gopos/internal/pkg/messaging"
	"github.com/shandysiswandi/gopos/internal/pkg/uid"
	"github.com/shandysiswandi/gopos/internal/pkg/validator"
)

type Dependency struct {
	Ctx        context.Context            `validate:"required"`
	DBConn     *pgxpool.Pool              `validate:"required"`
	CacheConn  *redis.Client              `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	UUID       uid.StringID               `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Goroutine  *goroutine.Manager         `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	Mail       mail.Mail                  `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	uc := usecase.NewNotification(usecase.Dependency{
		RepoDB:     db.NewDB(dep.DBConn, dep.Instrument),
		RepoMail:   email.New(dep.Mail, dep.Config.GetString("mail.from"), dep.Instrument),
		Config:     dep.Config,
		UID:        dep.UID,
		Clock:      dep.Clock,
		Validator:  dep.Validator,
		Instrument: dep.Instrument,
	})

	var dedupe interface {
		Do(ctx context.Context, key string, fn func(context.Context) error) error
	}
	if dep.Config.GetBool("modules.notification.dedupe.enabled") {
		dedupe = idempotency.New(dep.CacheConn, idempotency.Config{
			Prefix:  "gopos:notification",
			LockFor: dep.Config.GetSecond("modules.notification.dedupe.lock_seconds"),
			KeepFor: dep.Config.GetMinute("modules.notification.dedupe.keep_minutes"),
		})
	}

	started := inbound.RegisterMQConsumer(dep.Ctx, dep.Config, dep.Goroutine, dep.Messaging, dedupe, dep.UUID, uc, dep.Instrument)
	slog.Info("notification consumers started", "consumers", started)

	return nil
}
