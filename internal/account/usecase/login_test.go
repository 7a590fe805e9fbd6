package usecase

import (
	"testing"

	"github.com/shandysiswandi/gopos/internal/account/entity"
	"github.com/shandysiswandi/gopos/internal/pkg/goerror"
)

func TestLogin(t *testing.T) {
	// Arrange
	f := newFixture(t, testConfig)
	alice := f.user(t, 1, "alice@example.com", "OldPass1", entity.RoleBiller)

	// Act
	out, err := f.uc.Login(t.Context(), LoginInput{Email: "ALICE@example.com", Password: "OldPass1"})

	// Assert
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	clm, err := f.tokens.Verify(out.AccessToken)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if clm.UserID != alice.ID || clm.Role != "Biller" || clm.UserEmail != alice.Email {
		t.Fatalf("claims = %+v", clm)
	}
}

func TestLoginFailures(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		inactive bool
		want     goerror.Code
	}{
		{name: "unknown email", email: "nobody@example.com", password: "OldPass1", want: goerror.CodeUnauthorized},
		{name: "wrong password", email: "alice@example.com", password: "OldPass2", want: goerror.CodeUnauthorized},
		{name: "inactive", email: "alice@example.com", password: "OldPass1", inactive: true, want: goerror.CodeForbidden},
		{name: "bad email", email: "alice", password: "OldPass1", want: goerror.CodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newFixture(t, testConfig)
			u := f.user(t, 1, "alice@example.com", "OldPass1", entity.RoleCustomer)
			if tt.inactive {
				u.IsActive = false
				f.db.users[u.ID] = u
			}

			// Act
			_, err := f.uc.Login(t.Context(), LoginInput{Email: tt.email, Password: tt.password})

			// Assert
			assertCode(t, err, tt.want)
		})
	}
}
