// Package event holds the broker message contracts shared between modules.
package event

import "time"

const (
	PasswordForgotDestination          string = "account_password_forgot"
	PasswordForgotConsumerNotification string = "password_forgot_notification"
)

// HeaderCorrelationID carries the request correlation id across the broker.
const HeaderCorrelationID string = "cID"

type PasswordForgotMessage struct {
	UserID    int64     `json:"user_id,string"`
	Email     string    `json:"email" validate:"required,email"`
	FullName  string    `json:"full_name"`
	OTP       string    `json:"otp" validate:"required,numeric"`
	ExpiresAt time.Time `json:"expires_at" validate:"required"`
}
