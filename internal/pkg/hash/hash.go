// Package hash turns secrets into storable digests.
//
// Passwords go through Bcrypt or Argon2id, selected by configuration. One-time
// codes go through HMACSHA256, which is deterministic so the digest can be
// looked up with an equality query.
package hash

import (
	"errors"
	"fmt"
)

// ErrUnknownAlgorithm is returned by NewPassword for an unsupported name.
var ErrUnknownAlgorithm = errors.New("hash: unknown algorithm")

// Hash produces and checks digests of plaintext secrets.
type Hash interface {
	Hash(plain string) ([]byte, error)
	Verify(hashed, plain string) bool
}

// NewPassword returns the password hasher named by algo ("bcrypt" or
// "argon2id"). cost only applies to bcrypt.
func NewPassword(algo string, cost int, pepper string) (Hash, error) {
	switch algo {
	case "", "bcrypt":
		return NewBcrypt(cost, pepper), nil
	case "argon2id":
		return NewArgon2id(pepper), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, algo)
	}
}
