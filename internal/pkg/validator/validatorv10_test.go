package validator

import (
	"errors"
	"testing"
)

type changePassword struct {
	OldPassword string `validate:"required"`
	Password1   string `validate:"required,password"`
	Password2   string `validate:"required,eqfield=Password1"`
}

func TestValidateFieldKeys(t *testing.T) {
	// Arrange
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator: %v", err)
	}

	// Act
	err = v.Validate(changePassword{Password1: "NewPass123", Password2: "NewPass124"})

	// Assert
	var verr V10ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %T %v", err, err)
	}
	if _, ok := verr["old_password"]; !ok {
		t.Fatalf("missing old_password in %v", verr)
	}
	if _, ok := verr["password2"]; !ok {
		t.Fatalf("missing password2 in %v", verr)
	}
	if _, ok := verr["password1"]; ok {
		t.Fatalf("password1 should pass: %v", verr)
	}
}

func TestValidatePasswordRule(t *testing.T) {
	// Arrange
	v, err := NewV10Validator()
	if err != nil {
		t.Fatalf("NewV10Validator: %v", err)
	}

	// Act
	err = v.Validate(changePassword{OldPassword: "x", Password1: "12345678", Password2: "12345678"})

	// Assert
	var verr V10ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v", err)
	}
	if verr["password1"] == "" {
		t.Fatalf("expected password1 message, got %v", verr)
	}
}

func TestStrongPassword(t *testing.T) {
	tests := map[string]bool{
		"NewPass123":   true,
		"short1":       false,
		"12345678":     false,
		"abcdefgh":     false,
		"pässwörd1":    true,
		string(make([]byte, 73)): false,
	}

	for in, want := range tests {
		if got := StrongPassword(in); got != want {
			t.Errorf("StrongPassword(%q) = %v, want %v", in, got, want)
		}
	}
}
