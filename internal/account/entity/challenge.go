package entity

import "time"

// Challenge is the stored half of a one-time code. Only the HMAC of the code
// is kept; a subject has at most one challenge.
type Challenge struct {
	UserID    int64
	CodeHash  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether now is at or past the end of the validity window.
func (c Challenge) Expired(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// ConsumedChallenge is what the atomic consume step returns.
type ConsumedChallenge struct {
	UserID    int64
	ExpiresAt time.Time
}
