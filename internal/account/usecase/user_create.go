package usecase

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/shandysiswandi/gopos/internal/account/entity"
	"github.com/shandysiswandi/gopos/internal/pkg/goerror"
)

type UserCreateInput struct {
	Email     string `validate:"required,email,max=255"`
	FullName  string `validate:"required,min=2,max=100"`
	Role      string `validate:"required,role"`
	Password  string `validate:"required,password"`
	Password2 string `validate:"required,eqfield=Password"`
}

type UserCreateOutput struct {
	User entity.User
}

func (s *Usecase) UserCreate(ctx context.Context, in UserCreateInput) (*UserCreateOutput, error) {
	ctx, span := s.startSpan(ctx, "UserCreate")
	defer span.End()

	if _, _, err := s.authorize(ctx, entity.ActionUserCreate); err != nil {
		return nil, err
	}

	in.Email = entity.NormalizeEmail(in.Email)
	in.FullName = strings.TrimSpace(in.FullName)

	if err := s.validator.Validate(in); err != nil {
		return nil, goerror.NewInvalidInput(err)
	}

	role, _ := entity.ParseRole(in.Role)

	hashed, err := s.password.Hash(in.Password)
	if err != nil {
		slog.ErrorContext(ctx, "failed to hash password", "error", err)
		return nil, goerror.NewServer(err)
	}

	now := s.clock.Now()
	user := entity.User{
		ID:           s.uid.Generate(),
		Email:        in.Email,
		FullName:     in.FullName,
		Role:         role,
		IsActive:     true,
		PasswordHash: string(hashed),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.repoDB.CreateUser(ctx, user)
	if errors.Is(err, goerror.ErrConflict) {
		slog.WarnContext(ctx, "user account is already exists", "email", in.Email)
		return nil, goerror.NewBusinessWrap(err, "User account with that email already exists", goerror.CodeConflict)
	}
	if err != nil {
		slog.ErrorContext(ctx, "failed to repo create user", "email", in.Email, "error", err)
		return nil, goerror.NewServer(err)
	}

	user.PasswordHash = ""
	return &UserCreateOutput{User: user}, nil
}
