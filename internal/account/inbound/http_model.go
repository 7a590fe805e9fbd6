package inbound

import (
	"net/http"
	"time"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

func (LoginResponse) Message() string { return "Login successful" }

type PasswordForgotRequest struct {
	Email string `json:"email"`
}

type PasswordForgotResponse struct {
	OTP string `json:"otp,omitempty"`
}

func (PasswordForgotResponse) StatusCode() int { return http.StatusCreated }

func (PasswordForgotResponse) Message() string {
	return "If an account with that email exists, we have sent an OTP code."
}

func (r PasswordForgotResponse) Empty() bool { return r.OTP == "" }

type PasswordRecoverRequest struct {
	OTP       string `json:"otp"`
	Password  string `json:"password"`
	Password1 string `json:"password1"`
}

type PasswordRecoverResponse struct{}

func (PasswordRecoverResponse) StatusCode() int { return http.StatusAccepted }
func (PasswordRecoverResponse) Message() string { return "Password has been changed" }
func (PasswordRecoverResponse) Empty() bool     { return true }

type PasswordChangeRequest struct {
	OldPassword string `json:"old_password"`
	Password    string `json:"password"`
	Password1   string `json:"password1"`
}

type PasswordChangeResponse struct{}

func (PasswordChangeResponse) StatusCode() int { return http.StatusCreated }
func (PasswordChangeResponse) Message() string { return "Password has been updated" }
func (PasswordChangeResponse) Empty() bool     { return true }

type UserCreateRequest struct {
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	Password  string `json:"password"`
	Password2 string `json:"password2"`
}

type UserResponse struct {
	ID        int64     `json:"id,string"`
	Email     string    `json:"email"`
	FullName  string    `json:"full_name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type UserCreateResponse struct {
	UserResponse
}

func (UserCreateResponse) StatusCode() int { return http.StatusCreated }
func (UserCreateResponse) Message() string { return "User has been created" }
