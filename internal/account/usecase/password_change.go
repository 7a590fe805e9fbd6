package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gopos/internal/account/entity"
	"github.com/shandysiswandi/gopos/internal/pkg/goerror"
)

type PasswordChangeInput struct {
	UserID      int64
	OldPassword string `validate:"required"`
	Password    string `validate:"required,password"`
	Password1   string `validate:"required,eqfield=Password"`
}

// PasswordChange replaces the password of the signed in user after checking
// the old one. Callers may only change their own password.
func (s *Usecase) PasswordChange(ctx context.Context, in PasswordChangeInput) error {
	ctx, span := s.startSpan(ctx, "PasswordChange")
	defer span.End()

	clm, _, err := s.authorize(ctx, entity.ActionPasswordResetOwn)
	if err != nil {
		return err
	}

	if clm.UserID != in.UserID {
		slog.WarnContext(ctx, "password change for another user", "user_id", clm.UserID, "target_id", in.UserID)
		return goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	if err := s.validator.Validate(in); err != nil {
		return goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByID(ctx, clm.UserID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user account not found", "user_id", clm.UserID)
		return goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", clm.UserID, "error", err)
		return goerror.NewServer(err)
	}

	if !user.IsActive {
		slog.WarnContext(ctx, "user account is inactive", "user_id", user.ID)
		return goerror.NewBusiness("Account is inactive", goerror.CodeForbidden)
	}

	if !s.password.Verify(user.PasswordHash, in.OldPassword) {
		slog.WarnContext(ctx, "old password mismatch", "user_id", user.ID)
		return goerror.NewInvalidInput(entity.ErrOldPasswordMismatch, "old_password", "Old password does not match")
	}

	newHash, err := s.password.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash new password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	if err := s.repoDB.UpdateUserPassword(ctx, user.ID, string(newHash)); err != nil {
		slog.ErrorContext(ctx, "failed to repo update user password", "user_id", user.ID, "error", err)
		return goerror.NewServer(err)
	}

	return nil
}
