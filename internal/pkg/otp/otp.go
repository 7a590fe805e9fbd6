// Package otp generates the numeric one-time codes sent for password
// recovery.
package otp

import (
	"crypto/rand"
	"errors"
	"fmt"
)

const DefaultDigits = 6

var ErrDigits = errors.New("otp: digits must be between 4 and 10")

// Generator returns a fresh code on every call.
type Generator interface {
	Generate() (string, error)
}

// Numeric draws uniformly distributed decimal digits from crypto/rand.
type Numeric struct {
	digits int
}

func NewNumeric(digits int) (*Numeric, error) {
	if digits == 0 {
		digits = DefaultDigits
	}
	if digits < 4 || digits > 10 {
		return nil, ErrDigits
	}
	return &Numeric{digits: digits}, nil
}

func (n *Numeric) Generate() (string, error) {
	out := make([]byte, 0, n.digits)
	buf := make([]byte, n.digits*2)

	for len(out) < n.digits {
		if _, err := rand.Read(buf); err != nil {
			return "", fmt.Errorf("otp: read random: %w", err)
		}
		for _, b := range buf {
			// 250 is the largest multiple of 10 below 256; rejecting the
			// rest keeps every digit equally likely.
			if b >= 250 {
				continue
			}
			out = append(out, '0'+b%10)
			if len(out) == n.digits {
				break
			}
		}
	}

	return string(out), nil
}
