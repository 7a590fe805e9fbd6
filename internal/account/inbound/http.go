package inbound

import (
	"context"
	"net/http"

	"github.com/shandysiswandi/gopos/internal/account/usecase"
	"github.com/shandysiswandi/gopos/internal/pkg/router"
)

type uc interface {
	Login(ctx context.Context, in usecase.LoginInput) (*usecase.LoginOutput, error)

	PasswordForgot(ctx context.Context, in usecase.PasswordForgotInput) (*usecase.PasswordForgotOutput, error)
	PasswordRecover(ctx context.Context, in usecase.PasswordRecoverInput) error
	PasswordChange(ctx context.Context, in usecase.PasswordChangeInput) error

	UserCreate(ctx context.Context, in usecase.UserCreateInput) (*usecase.UserCreateOutput, error)
	UserDetail(ctx context.Context, in usecase.UserDetailInput) (*usecase.UserDetailOutput, error)
}

func RegisterHTTPEndpoint(r *router.Router, uc uc) {
	end := &HTTPEndpoint{uc: uc}

	// Public
	r.Public(http.MethodPost, "/api/v1/users/login")
	r.Public(http.MethodPost, "/api/v1/users/forgot-password")
	r.Public(http.MethodPost, "/api/v1/users/change-password")

	r.POST("/api/v1/users/login", end.Login)
	r.POST("/api/v1/users/forgot-password", end.PasswordForgot)
	r.POST("/api/v1/users/change-password", end.PasswordRecover)

	// need authenticated
	r.POST("/api/v1/users/{id}/reset-password", end.PasswordChange)

	// User Directory (need authenticated & authorization)
	r.POST("/api/v1/users", end.UserCreate)
	r.GET("/api/v1/users/{id}", end.UserDetail)
}
