package usecase

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"github.com/shandysiswandi/gopos/internal/notification/entity"
	"github.com/shandysiswandi/gopos/internal/pkg/mail"
)

type ConsumePasswordForgotInput struct {
	UserID    int64     `validate:"required,gt=0"`
	Email     string    `validate:"required,email"`
	FullName  string    `validate:"max=255"`
	OTP       string    `validate:"required,numeric"`
	ExpiresAt time.Time `validate:"required"`
}

// ConsumePasswordForgot e-mails the one-time code. Send failures are retried
// with exponential backoff and recorded on the delivery row; they are never
// returned, so the broker does not redeliver.
func (s *Usecase) ConsumePasswordForgot(ctx context.Context, in ConsumePasswordForgotInput) error {
	ctx, span := s.startSpan(ctx, "ConsumePasswordForgot")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		slog.ErrorContext(ctx, "invalid password forgot message dropped", "user_id", in.UserID, "error", err)
		return nil
	}

	msg, err := s.renderPasswordForgot(in)
	if err != nil {
		slog.ErrorContext(ctx, "failed to render password forgot email", "user_id", in.UserID, "error", err)
		return nil
	}

	now := s.clock.Now()
	delivery := entity.Delivery{
		ID:          s.uid.Generate(),
		UserID:      in.UserID,
		Channel:     entity.ChannelEmail,
		Destination: in.Email,
		Kind:        entity.KindPasswordForgot,
		Status:      entity.DeliveryStatusQueued,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	tracked := true
	if err := s.repoDB.CreateDelivery(ctx, delivery); err != nil {
		slog.ErrorContext(ctx, "failed to repo create delivery", "user_id", in.UserID, "error", err)
		tracked = false
	}

	attempts, sendErr := s.sendWithRetry(ctx, msg)

	result := entity.DeliveryResult{
		ID:        delivery.ID,
		Status:    entity.DeliveryStatusSent,
		Attempts:  attempts,
		UpdatedAt: s.clock.Now(),
	}
	if sendErr != nil {
		result.Status = entity.DeliveryStatusFailed
		result.LastError = sendErr.Error()
		slog.ErrorContext(ctx, "failed to send password forgot email", "user_id", in.UserID, "delivery_id", delivery.ID, "attempts", attempts, "error", sendErr)
	}

	if tracked {
		if err := s.repoDB.UpdateDelivery(ctx, result); err != nil {
			slog.ErrorContext(ctx, "failed to repo update delivery", "delivery_id", delivery.ID, "status", result.Status.String(), "error", err)
		}
	}

	return nil
}

func (s *Usecase) sendWithRetry(ctx context.Context, msg mail.Message) (int, error) {
	b := retry.NewExponential(s.retryDelay())
	b = retry.WithMaxRetries(s.maxRetries(), b)

	attempts := 0
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		attempts++
		if err := s.repoMail.Send(ctx, msg); err != nil {
			if errors.Is(err, mail.ErrNoRecipients) || errors.Is(err, mail.ErrNoSender) {
				return err
			}
			slog.WarnContext(ctx, "send email attempt failed", "attempt", attempts, "error", err)
			return retry.RetryableError(err)
		}
		return nil
	})

	return attempts, err
}

func (s *Usecase) renderPasswordForgot(in ConsumePasswordForgotInput) (mail.Message, error) {
	name := in.FullName
	if name == "" {
		name = in.Email
	}

	data := otpTemplateData{
		Name:      name,
		OTP:       in.OTP,
		ExpiresAt: in.ExpiresAt.UTC().Format(time.RFC1123),
		Company:   s.companyName(),
		Year:      s.clock.Now().Format("2006"),
	}

	var text, html bytes.Buffer
	if err := s.otpText.Execute(&text, data); err != nil {
		return mail.Message{}, err
	}
	if err := s.otpHTML.Execute(&html, data); err != nil {
		return mail.Message{}, err
	}

	return mail.Message{
		To:       []string{in.Email},
		Subject:  otpSubject,
		TextBody: text.String(),
		HTMLBody: html.String(),
	}, nil
}

func (s *Usecase) companyName() string {
	if name := s.cfg.GetString("app.company_name"); name != "" {
		return name
	}
	return "GoPOS"
}
