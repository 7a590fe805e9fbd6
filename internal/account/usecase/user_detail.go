package usecase

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shandysiswandi/gopos/internal/account/entity"
	"github.com/shandysiswandi/gopos/internal/account/policy"
	"github.com/shandysiswandi/gopos/internal/pkg/goerror"
	"github.com/shandysiswandi/gopos/internal/pkg/jwt"
)

type UserDetailInput struct {
	ID int64 `validate:"required,gt=0"`
}

type UserDetailOutput struct {
	User entity.User
}

// UserDetail returns a user. Anyone may read their own profile, other users
// need the user view permission.
func (s *Usecase) UserDetail(ctx context.Context, in UserDetailInput) (*UserDetailOutput, error) {
	ctx, span := s.startSpan(ctx, "UserDetail")
	defer span.End()

	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	act := entity.ActionUserView
	if clm.UserID == in.ID {
		act = entity.ActionProfileView
	}
	role, _ := entity.ParseRole(clm.Role)
	if !policy.Authorize(act, role) {
		return nil, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	user, err := s.repoDB.GetUserByID(ctx, in.ID)
	if errors.Is(err, goerror.ErrNotFound) {
		slog.WarnContext(ctx, "user not found", "user_id", in.ID)
		return nil, goerror.NewBusiness("User not found", goerror.CodeNotFound)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo get user by id", "user_id", in.ID, "error", err)
		return nil, goerror.NewServer(err)
	}

	u := *user
	u.PasswordHash = ""
	return &UserDetailOutput{User: u}, nil
}
