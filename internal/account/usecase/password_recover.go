package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gopos/internal/account/entity"
	"github.com/shandysiswandi/gopos/internal/pkg/goerror"
)

type PasswordRecoverInput struct {
	OTP       string `validate:"required,numeric,len=6"`
	Password  string `validate:"required,password"`
	Password1 string `validate:"required,eqfield=Password"`
	// IP is the caller address used to cap OTP guesses.
	IP string
}

// PasswordRecover spends a one-time code to set a new password. A code works
// at most once, and a wrong code is indistinguishable from one never issued.
func (s *Usecase) PasswordRecover(ctx context.Context, in PasswordRecoverInput) error {
	ctx, span := s.startSpan(ctx, "PasswordRecover")
	defer span.End()

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	if err := s.repoLimiter.AllowPasswordRecover(ctx, in.IP); err != nil {
		return limitError(ctx, err, "password recover", "ip", in.IP)
	}

	codeHash, err := s.otpHash.Hash(in.OTP)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash otp", "error", err)
		return goerror.NewServer(err)
	}

	newHash, err := s.password.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "error", err)
		return goerror.NewServer(err)
	}

	userID, err := s.repoDB.ConsumeChallenge(ctx, string(codeHash), s.clock.Now(), string(newHash))
	switch {
	case errors.Is(err, entity.ErrOTPInvalid):
		slog.WarnContext(ctx, "password recover with invalid otp")
		return goerror.NewInvalidInput(err, "otp", "Invalid OTP code")

	case errors.Is(err, entity.ErrOTPExpired):
		slog.WarnContext(ctx, "password recover with expired otp")
		return goerror.NewInvalidInput(err, "otp", "OTP code has expired")

	case err != nil:
		slog.ErrorContext(ctx, "failed to repo consume challenge", "error", err)
		return goerror.NewServer(err)
	}

	slog.InfoContext(ctx, "password recovered", "user_id", userID)
	return nil
}
