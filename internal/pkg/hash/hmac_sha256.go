package hash

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HMACSHA256 returns hex encoded HMAC digests. The same input always yields
// the same digest.
type HMACSHA256 struct {
	secret []byte
}

func NewHMACSHA256(secret string) *HMACSHA256 {
	return &HMACSHA256{secret: []byte(secret)}
}

func (s *HMACSHA256) Hash(plain string) ([]byte, error) {
	return s.sum(plain), nil
}

func (s *HMACSHA256) Verify(hashed, plain string) bool {
	return subtle.ConstantTimeCompare([]byte(hashed), s.sum(plain)) == 1
}

func (s *HMACSHA256) sum(plain string) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(plain))
	return hex.AppendEncode(nil, mac.Sum(nil))
}
