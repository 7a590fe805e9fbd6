package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shandysiswandi/gopos/internal/account/entity"
	"github.com/shandysiswandi/gopos/internal/pkg/goerror"
	"github.com/shandysiswandi/gopos/internal/pkg/ratelimit"
)

type PasswordForgotInput struct {
	Email string `validate:"required,email"`
}

type PasswordForgotOutput struct {
	// OTP is only filled when modules.account.expose_otp is on.
	OTP string
}

// PasswordForgot issues a fresh one-time code for the user owning the e-mail,
// replacing any earlier code, and hands it to the notifier.
func (s *Usecase) PasswordForgot(ctx context.Context, in PasswordForgotInput) (*PasswordForgotOutput, error) {
	ctx, span := s.startSpan(ctx, "PasswordForgot")
	defer span.End()

	in.Email = entity.NormalizeEmail(in.Email)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	if err := s.repoLimiter.AllowPasswordForgot(ctx, in.Email); err != nil {
		return nil, limitError(ctx, err, "password forgot", "email", in.Email)
	}

	user, err := s.repoDB.GetUserByEmail(ctx, in.Email)
	if errors.Is(err, goerror.ErrNotFound) || (err == nil && !user.IsActive) {
		return s.unknownEmail(ctx, in.Email)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by email", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	code, chal, err := s.issueChallenge(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	if err := s.repoMessaging.PublishPasswordForgot(ctx, PasswordForgotEvent{
		UserID:    user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		OTP:       code,
		ExpiresAt: chal.ExpiresAt,
	}); err != nil {
		slog.ErrorContext(ctx, "failed to publish password forgot", "user_id", user.ID, "error", err)
	}

	out := &PasswordForgotOutput{}
	if s.cfg.GetBool("modules.account.expose_otp") {
		out.OTP = code
	}

	return out, nil
}

func (s *Usecase) unknownEmail(ctx context.Context, email string) (*PasswordForgotOutput, error) {
	slog.WarnContext(ctx, "password forgot requested for unavailable user", "email", email)
	if s.cfg.GetBool("modules.account.mask_unknown_email") {
		return &PasswordForgotOutput{}, nil
	}

	return nil, goerror.NewBusinessWrap(goerror.ErrNotFound, "User not found", goerror.CodeNotFound)
}

func (s *Usecase) issueChallenge(ctx context.Context, userID int64) (string, entity.Challenge, error) {
	for attempt := 1; attempt <= maxIssueAttempts; attempt++ {
		code, err := s.otp.Generate()
		if err != nil {
			slog.ErrorContext(ctx, "failed to generate otp", "user_id", userID, "error", err)
			return "", entity.Challenge{}, goerror.NewServer(err)
		}

		codeHash, err := s.otpHash.Hash(code)
		if err != nil {
			slog.ErrorContext(ctx, "failed to hash otp", "user_id", userID, "error", err)
			return "", entity.Challenge{}, goerror.NewServer(err)
		}

		now := s.clock.Now()
		chal := entity.Challenge{
			UserID:    userID,
			CodeHash:  string(codeHash),
			IssuedAt:  now,
			ExpiresAt: now.Add(s.otpTTL()),
		}

		err = s.repoDB.UpsertChallenge(ctx, chal)
		if errors.Is(err, goerror.ErrConflict) {
			slog.WarnContext(ctx, "otp collided with another challenge", "user_id", userID, "attempt", attempt)
			continue
		}
		if err != nil {
			slog.ErrorContext(ctx, "failed to repo upsert challenge", "user_id", userID, "error", err)
			return "", entity.Challenge{}, goerror.NewServer(err)
		}

		return code, chal, nil
	}

	slog.ErrorContext(ctx, "failed to issue a unique otp", "user_id", userID, "attempts", maxIssueAttempts)
	return "", entity.Challenge{}, goerror.NewServer(entity.ErrCodeCollision)
}

// limitError turns a limiter failure into 429 when the caller is throttled
// and 500 when the limiter itself failed.
func limitError(ctx context.Context, err error, action string, attrs ...any) error {
	var rlErr *ratelimit.Error
	if errors.As(err, &rlErr) {
		slog.WarnContext(ctx, action+" rate limited", append(attrs, "retry_after", rlErr.RetryAfter.String())...)
		msg := fmt.Sprintf("Too many requests, retry after %s", rlErr.RetryAfter.Round(time.Second))
		return goerror.NewBusinessWrap(err, msg, goerror.CodeTooManyRequest)
	}
	slog.ErrorContext(ctx, "failed to check "+action+" rate limit", append(attrs, "error", err)...)
	return goerror.NewServer(err)
}
