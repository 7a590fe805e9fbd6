// Package entity holds the account domain types shared by the usecase,
// inbound and outbound layers.
package entity

import "errors"

var (
	// ErrOTPInvalid covers both a wrong code and a code that was never
	// issued, so callers cannot tell them apart.
	ErrOTPInvalid          = errors.New("account: invalid otp code")
	ErrOTPExpired          = errors.New("account: otp code expired")
	ErrOldPasswordMismatch = errors.New("account: old password does not match")
	ErrCodeCollision       = errors.New("account: could not issue a unique otp code")
)
