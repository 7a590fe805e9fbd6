package hash

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHashers(t *testing.T) {
	tests := []struct {
		name string
		h    Hash
	}{
		{name: "bcrypt", h: NewBcrypt(bcrypt.MinCost, "pepper")},
		{name: "argon2id", h: NewArgon2id("pepper")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			hashed, err := tt.h.Hash("NewPass123")
			if err != nil {
				t.Fatalf("Hash: %v", err)
			}

			// Act & Assert
			if !tt.h.Verify(string(hashed), "NewPass123") {
				t.Fatal("expected match")
			}
			if tt.h.Verify(string(hashed), "OldPass123") {
				t.Fatal("expected mismatch")
			}
			if tt.h.Verify("", "NewPass123") {
				t.Fatal("empty digest must not verify")
			}
		})
	}
}

func TestHMACSHA256IsDeterministic(t *testing.T) {
	// Arrange
	h := NewHMACSHA256("secret")

	// Act
	a, _ := h.Hash("482913")
	b, _ := h.Hash("482913")
	other, _ := NewHMACSHA256("other").Hash("482913")

	// Assert
	if string(a) != string(b) {
		t.Fatal("digests differ for the same input")
	}
	if string(a) == string(other) {
		t.Fatal("digest must depend on the secret")
	}
	if len(a) != 64 {
		t.Fatalf("len = %d", len(a))
	}
	if !h.Verify(string(a), "482913") {
		t.Fatal("expected match")
	}
}

func TestNewPassword(t *testing.T) {
	// Act
	_, err := NewPassword("md5", 0, "")

	// Assert
	if !errors.Is(err, ErrUnknownAlgorithm) {
		t.Fatalf("err = %v", err)
	}
}
