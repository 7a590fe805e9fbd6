package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shandysiswandi/gopos/internal/account/entity"
	"github.com/shandysiswandi/gopos/internal/pkg/goerror"
)

func TestPasswordChange(t *testing.T) {
	// Arrange
	f := newFixture(t, testConfig)
	alice := f.user(t, 1, "alice@example.com", "OldPass1", entity.RoleCustomer)

	// Act
	err := f.uc.PasswordChange(session(alice), PasswordChangeInput{
		UserID: alice.ID, OldPassword: "OldPass1", Password: "NewPass1!", Password1: "NewPass1!",
	})

	// Assert
	if err != nil {
		t.Fatalf("PasswordChange: %v", err)
	}
	if !f.password.Verify(f.db.users[alice.ID].PasswordHash, "NewPass1!") {
		t.Fatal("password not updated")
	}
}

func TestPasswordChangeWrongOldPassword(t *testing.T) {
	// Arrange
	f := newFixture(t, testConfig)
	alice := f.user(t, 1, "alice@example.com", "OldPass1", entity.RoleCustomer)

	// Act
	err := f.uc.PasswordChange(session(alice), PasswordChangeInput{
		UserID: alice.ID, OldPassword: "wrongOld", Password: "NewPass1!", Password1: "NewPass1!",
	})

	// Assert
	ge := assertCode(t, err, goerror.CodeInvalidInput)
	if ge.Fields()["old_password"] == "" {
		t.Fatalf("fields = %v", ge.Fields())
	}
	if !errors.Is(err, entity.ErrOldPasswordMismatch) {
		t.Fatalf("err = %v", err)
	}
	if !f.password.Verify(f.db.users[alice.ID].PasswordHash, "OldPass1") || f.db.writes != 0 {
		t.Fatal("password changed")
	}
}

func TestPasswordChangeAccess(t *testing.T) {
	f := newFixture(t, testConfig)
	alice := f.user(t, 1, "alice@example.com", "OldPass1", entity.RoleCustomer)
	bob := f.user(t, 2, "bob@example.com", "OldPass2", entity.RoleAdmin)

	tests := []struct {
		name string
		ctx  context.Context
		want goerror.Code
	}{
		{name: "no session", ctx: context.Background(), want: goerror.CodeUnauthorized},
		{name: "someone else", ctx: session(bob), want: goerror.CodeForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Act
			err := f.uc.PasswordChange(tt.ctx, PasswordChangeInput{
				UserID: alice.ID, OldPassword: "OldPass1", Password: "NewPass1!", Password1: "NewPass1!",
			})

			// Assert
			assertCode(t, err, tt.want)
			if f.db.writes != 0 {
				t.Fatal("password written")
			}
		})
	}
}

func TestPasswordChangeMismatchRejected(t *testing.T) {
	// Arrange
	f := newFixture(t, testConfig)
	alice := f.user(t, 1, "alice@example.com", "OldPass1", entity.RoleCustomer)

	// Act
	err := f.uc.PasswordChange(session(alice), PasswordChangeInput{
		UserID: alice.ID, OldPassword: "OldPass1", Password: "NewPass1!", Password1: "NewPass2!",
	})

	// Assert
	assertCode(t, err, goerror.CodeInvalidInput)
	if f.db.writes != 0 {
		t.Fatal("password written")
	}
}
