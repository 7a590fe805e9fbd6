package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/shandysiswandi/gopos/internal/account/entity"
	"github.com/shandysiswandi/gopos/internal/pkg/goerror"
	"github.com/shandysiswandi/gopos/internal/pkg/ratelimit"
)

func TestPasswordForgotIssuesCodeForAlice(t *testing.T) {
	// Arrange
	f := newFixture(t, testConfig)
	alice := f.user(t, 1, "alice@example.com", "OldPass1", entity.RoleCustomer)

	// Act
	out, err := f.uc.PasswordForgot(t.Context(), PasswordForgotInput{Email: " Alice@Example.com "})

	// Assert
	if err != nil {
		t.Fatalf("PasswordForgot: %v", err)
	}
	if out.OTP != "482913" {
		t.Fatalf("otp = %q", out.OTP)
	}
	chal, ok := f.db.challenges[alice.ID]
	if !ok {
		t.Fatal("no challenge stored")
	}
	if chal.CodeHash == out.OTP {
		t.Fatal("raw code stored")
	}
	if want, _ := f.otpHash.Hash("482913"); chal.CodeHash != string(want) {
		t.Fatalf("code hash = %q", chal.CodeHash)
	}
	if !chal.ExpiresAt.Equal(testNow.Add(15 * time.Minute)) {
		t.Fatalf("expires at = %v", chal.ExpiresAt)
	}
	if len(f.mq.events) != 1 || f.mq.events[0].Email != "alice@example.com" || f.mq.events[0].OTP != "482913" {
		t.Fatalf("events = %+v", f.mq.events)
	}
}

func TestPasswordForgotHidesCodeByDefault(t *testing.T) {
	// Arrange
	f := newFixture(t, "modules: {account: {mask_unknown_email: true}}")
	f.user(t, 1, "alice@example.com", "OldPass1", entity.RoleCustomer)

	// Act
	out, err := f.uc.PasswordForgot(t.Context(), PasswordForgotInput{Email: "alice@example.com"})

	// Assert
	if err != nil {
		t.Fatalf("PasswordForgot: %v", err)
	}
	if out.OTP != "" {
		t.Fatalf("otp leaked: %q", out.OTP)
	}
}

func TestPasswordForgotKeepsOneChallengePerUser(t *testing.T) {
	// Arrange
	f := newFixture(t, testConfig)
	alice := f.user(t, 1, "alice@example.com", "OldPass1", entity.RoleCustomer)
	f.otp.codes = []string{"111111", "222222"}

	// Act
	first, err1 := f.uc.PasswordForgot(t.Context(), PasswordForgotInput{Email: alice.Email})
	second, err2 := f.uc.PasswordForgot(t.Context(), PasswordForgotInput{Email: alice.Email})

	// Assert
	if err1 != nil || err2 != nil {
		t.Fatalf("errors = %v, %v", err1, err2)
	}
	if len(f.db.challenges) != 1 {
		t.Fatalf("challenges = %d", len(f.db.challenges))
	}
	if want, _ := f.otpHash.Hash(second.OTP); f.db.challenges[alice.ID].CodeHash != string(want) {
		t.Fatal("challenge not overwritten by the latest code")
	}

	err := f.uc.PasswordRecover(t.Context(), PasswordRecoverInput{OTP: first.OTP, Password: "NewPass1!", Password1: "NewPass1!"})
	if !errors.Is(err, entity.ErrOTPInvalid) {
		t.Fatalf("stale code err = %v", err)
	}
}

func TestPasswordForgotUnknownEmail(t *testing.T) {
	tests := []struct {
		name     string
		cfg      string
		inactive bool
		wantErr  bool
	}{
		{name: "masked", cfg: "modules: {account: {mask_unknown_email: true}}", wantErr: false},
		{name: "unmasked", cfg: "modules: {account: {mask_unknown_email: false}}", wantErr: true},
		{name: "inactive masked", cfg: "modules: {account: {mask_unknown_email: true}}", inactive: true, wantErr: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			f := newFixture(t, tt.cfg)
			if tt.inactive {
				u := f.user(t, 9, "bob@example.com", "OldPass1", entity.RoleCustomer)
				u.IsActive = false
				f.db.users[u.ID] = u
			}

			// Act
			_, err := f.uc.PasswordForgot(t.Context(), PasswordForgotInput{Email: "bob@example.com"})

			// Assert
			if tt.wantErr {
				assertCode(t, err, goerror.CodeNotFound)
			} else if err != nil {
				t.Fatalf("err = %v", err)
			}
			if len(f.db.challenges) != 0 || len(f.mq.events) != 0 {
				t.Fatal("challenge issued for unknown user")
			}
		})
	}
}

func TestPasswordForgotValidation(t *testing.T) {
	// Arrange
	f := newFixture(t, testConfig)

	// Act
	_, err := f.uc.PasswordForgot(t.Context(), PasswordForgotInput{Email: "not-an-email"})

	// Assert
	ge := assertCode(t, err, goerror.CodeInvalidInput)
	if _, ok := ge.Unwrap().(interface{ Values() map[string]string }); !ok {
		t.Fatalf("cause = %T", ge.Unwrap())
	}
}

func TestPasswordForgotRateLimited(t *testing.T) {
	// Arrange
	f := newFixture(t, testConfig)
	f.user(t, 1, "alice@example.com", "OldPass1", entity.RoleCustomer)
	f.uc.repoLimiter = fakeLimiter{err: &ratelimit.Error{Reason: ratelimit.ErrTooSoon, RetryAfter: 30 * time.Second}}

	// Act
	_, err := f.uc.PasswordForgot(t.Context(), PasswordForgotInput{Email: "alice@example.com"})

	// Assert
	assertCode(t, err, goerror.CodeTooManyRequest)
	if !errors.Is(err, ratelimit.ErrTooSoon) {
		t.Fatalf("err = %v", err)
	}
	if f.db.upserts != 0 {
		t.Fatal("challenge issued while limited")
	}
}

func TestPasswordForgotRetriesCollidingCode(t *testing.T) {
	// Arrange
	f := newFixture(t, testConfig)
	f.user(t, 1, "alice@example.com", "OldPass1", entity.RoleCustomer)
	f.db.upsertErrs = []error{goerror.ErrConflict, goerror.ErrConflict}

	// Act
	out, err := f.uc.PasswordForgot(t.Context(), PasswordForgotInput{Email: "alice@example.com"})

	// Assert
	if err != nil || out.OTP == "" {
		t.Fatalf("out = %+v err = %v", out, err)
	}
	if f.db.upserts != 3 {
		t.Fatalf("upserts = %d", f.db.upserts)
	}
}

func TestPasswordForgotGivesUpAfterCollisions(t *testing.T) {
	// Arrange
	f := newFixture(t, testConfig)
	f.user(t, 1, "alice@example.com", "OldPass1", entity.RoleCustomer)
	f.db.upsertErrs = []error{goerror.ErrConflict, goerror.ErrConflict, goerror.ErrConflict, goerror.ErrConflict, goerror.ErrConflict}

	// Act
	_, err := f.uc.PasswordForgot(t.Context(), PasswordForgotInput{Email: "alice@example.com"})

	// Assert
	assertCode(t, err, goerror.CodeInternal)
	if !errors.Is(err, entity.ErrCodeCollision) {
		t.Fatalf("err = %v", err)
	}
	if len(f.mq.events) != 0 {
		t.Fatal("event published without a challenge")
	}
}

func TestPasswordForgotIgnoresPublishFailure(t *testing.T) {
	// Arrange
	f := newFixture(t, testConfig)
	f.user(t, 1, "alice@example.com", "OldPass1", entity.RoleCustomer)
	f.mq.err = errors.New("broker down")

	// Act
	_, err := f.uc.PasswordForgot(t.Context(), PasswordForgotInput{Email: "alice@example.com"})

	// Assert
	if err != nil {
		t.Fatalf("err = %v", err)
	}
}
