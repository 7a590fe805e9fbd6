package inbound

import (
	"github.com/shandysiswandi/gopos/internal/account/entity"
	"github.com/shandysiswandi/gopos/internal/account/usecase"
	"github.com/shandysiswandi/gopos/internal/pkg/router"
)

// HTTPEndpoint exposes the account and password recovery handlers.
type HTTPEndpoint struct {
	uc uc
}

// Login authenticates a user and returns an access token.
// @Summary Authenticate user
// @Tags Account, Authentication
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login payload"
// @Success 200 {object} router.successResponse{data=LoginResponse} "Authentication result"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 401 {object} router.errorResponse "Invalid credentials"
// @Router /api/v1/users/login [post]
func (h *HTTPEndpoint) Login(r *router.Request) (any, error) {
	var req LoginRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.Login(r.Context(), usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return nil, err
	}

	return LoginResponse{AccessToken: resp.AccessToken, TokenType: "Bearer"}, nil
}

// PasswordForgot sends a one-time code to the account e-mail.
// @Summary Request password recovery code
// @Description Issues a 6 digit code valid for a short window. Any earlier code of the same user stops working.
// @Tags Account, Password
// @Accept json
// @Produce json
// @Param request body PasswordForgotRequest true "Password forgot payload"
// @Success 201 {object} router.successResponse{data=PasswordForgotResponse} "Code issued"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 404 {object} router.errorResponse "User not found (only when e-mail masking is off)"
// @Failure 429 {object} router.errorResponse "Too many requests"
// @Router /api/v1/users/forgot-password [post]
func (h *HTTPEndpoint) PasswordForgot(r *router.Request) (any, error) {
	var req PasswordForgotRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.PasswordForgot(r.Context(), usecase.PasswordForgotInput{Email: req.Email})
	if err != nil {
		return nil, err
	}

	return PasswordForgotResponse{OTP: resp.OTP}, nil
}

// PasswordRecover sets a new password using the one-time code.
// @Summary Recover password with code
// @Tags Account, Password
// @Accept json
// @Produce json
// @Param request body PasswordRecoverRequest true "Password recover payload"
// @Success 202 {object} router.successResponse "Password changed"
// @Failure 400 {object} router.errorResponse "Validation error, invalid or expired code"
// @Failure 429 {object} router.errorResponse "Too many attempts from this address"
// @Router /api/v1/users/change-password [post]
func (h *HTTPEndpoint) PasswordRecover(r *router.Request) (any, error) {
	var req PasswordRecoverRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordRecover(r.Context(), usecase.PasswordRecoverInput{
		OTP:       req.OTP,
		Password:  req.Password,
		Password1: req.Password1,
		IP:        r.ClientIP(),
	}); err != nil {
		return nil, err
	}

	return PasswordRecoverResponse{}, nil
}

// PasswordChange replaces the caller's password.
// @Summary Change own password
// @Tags Account, Password
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Param request body PasswordChangeRequest true "Password change payload"
// @Success 201 {object} router.successResponse "Password updated"
// @Failure 400 {object} router.errorResponse "Validation error or wrong old password"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "Not the caller's account"
// @Router /api/v1/users/{id}/reset-password [post]
func (h *HTTPEndpoint) PasswordChange(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	var req PasswordChangeRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	if err := h.uc.PasswordChange(r.Context(), usecase.PasswordChangeInput{
		UserID:      id,
		OldPassword: req.OldPassword,
		Password:    req.Password,
		Password1:   req.Password1,
	}); err != nil {
		return nil, err
	}

	return PasswordChangeResponse{}, nil
}

// UserCreate adds a user to the directory.
// @Summary Create user
// @Tags Account, Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UserCreateRequest true "User payload"
// @Success 201 {object} router.successResponse{data=UserCreateResponse} "User created"
// @Failure 400 {object} router.errorResponse "Validation error"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "Account not allowed"
// @Failure 409 {object} router.errorResponse "E-mail already registered"
// @Router /api/v1/users [post]
func (h *HTTPEndpoint) UserCreate(r *router.Request) (any, error) {
	var req UserCreateRequest
	if err := r.DecodeBody(&req); err != nil {
		return nil, err
	}

	resp, err := h.uc.UserCreate(r.Context(), usecase.UserCreateInput{
		Email:     req.Email,
		FullName:  req.FullName,
		Role:      req.Role,
		Password:  req.Password,
		Password2: req.Password2,
	})
	if err != nil {
		return nil, err
	}

	return UserCreateResponse{UserResponse: toUserResponse(resp.User)}, nil
}

// UserDetail returns one user.
// @Summary Get user
// @Tags Account, Users
// @Produce json
// @Security BearerAuth
// @Param id path string true "User ID"
// @Success 200 {object} router.successResponse{data=UserResponse} "User"
// @Failure 401 {object} router.errorResponse "Authentication required"
// @Failure 403 {object} router.errorResponse "Account not allowed"
// @Failure 404 {object} router.errorResponse "User not found"
// @Router /api/v1/users/{id} [get]
func (h *HTTPEndpoint) UserDetail(r *router.Request) (any, error) {
	id, err := r.GetParamInt64("id")
	if err != nil {
		return nil, err
	}

	resp, err := h.uc.UserDetail(r.Context(), usecase.UserDetailInput{ID: id})
	if err != nil {
		return nil, err
	}

	return toUserResponse(resp.User), nil
}

func toUserResponse(u entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role.String(),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
