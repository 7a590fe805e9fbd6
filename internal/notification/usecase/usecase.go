package usecase

import (
	"context"
	htmltemplate "html/template"
	texttemplate "text/template"
	"time"

	"github.com/shandysiswandi/gopos/internal/notification/entity"
	"github.com/shandysiswandi/gopos/internal/pkg/clock"
	"github.com/shandysiswandi/gopos/internal/pkg/config"
	"github.com/shandysiswandi/gopos/internal/pkg/instrument"
	"github.com/shandysiswandi/gopos/internal/pkg/mail"
	"github.com/shandysiswandi/gopos/internal/pkg/uid"
	"github.com/shandysiswandi/gopos/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultMaxRetries = 3
	defaultRetryDelay = 500 * time.Millisecond
)

type repoDB interface {
	CreateDelivery(ctx context.Context, d entity.Delivery) error
	UpdateDelivery(ctx context.Context, r entity.DeliveryResult) error
}

type repoMail interface {
	Send(ctx context.Context, msg mail.Message) error
}

type Usecase struct {
	repoDB    repoDB
	repoMail  repoMail
	cfg       config.Config
	uid       uid.NumberID
	clock     clock.Clocker
	validator validator.Validator
	ins       instrument.Instrumentation

	otpText *texttemplate.Template
	otpHTML *htmltemplate.Template
}

type Dependency struct {
	RepoDB     repoDB
	RepoMail   repoMail
	Config     config.Config
	UID        uid.NumberID
	Clock      clock.Clocker
	Validator  validator.Validator
	Instrument instrument.Instrumentation
}

func NewNotification(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:    dep.RepoDB,
		repoMail:  dep.RepoMail,
		cfg:       dep.Config,
		uid:       dep.UID,
		clock:     dep.Clock,
		validator: dep.Validator,
		ins:       dep.Instrument,
		otpText:   texttemplate.Must(texttemplate.New("otp_text").Parse(otpTextTemplate)),
		otpHTML:   htmltemplate.Must(htmltemplate.New("otp_html").Parse(otpHTMLTemplate)),
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("notification.usecase").Start(ctx, name)
}

func (s *Usecase) maxRetries() uint64 {
	if n := s.cfg.GetInt("modules.notification.retry.max_retries"); n > 0 {
		return uint64(n)
	}
	return defaultMaxRetries
}

func (s *Usecase) retryDelay() time.Duration {
	if ms := s.cfg.GetInt64("modules.notification.retry.base_delay_ms"); ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return defaultRetryDelay
}
