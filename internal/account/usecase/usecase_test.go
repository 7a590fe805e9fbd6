package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/gopos/internal/account/entity"
	"github.com/shandysiswandi/gopos/internal/pkg/clock"
	"github.com/shandysiswandi/gopos/internal/pkg/config"
	"github.com/shandysiswandi/gopos/internal/pkg/goerror"
	"github.com/shandysiswandi/gopos/internal/pkg/hash"
	"github.com/shandysiswandi/gopos/internal/pkg/instrument"
	"github.com/shandysiswandi/gopos/internal/pkg/jwt"
	"github.com/shandysiswandi/gopos/internal/pkg/uid"
	"github.com/shandysiswandi/gopos/internal/pkg/validator"
)

var testNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

// fakeDB keeps users and challenges in memory. ConsumeChallenge holds the
// lock for the whole check-and-delete, like the SQL transaction does.
type fakeDB struct {
	mu         sync.Mutex
	users      map[int64]entity.User
	challenges map[int64]entity.Challenge
	upserts    int
	writes     int
	upsertErrs []error
	dbErr      error
}

func newFakeDB(users ...entity.User) *fakeDB {
	db := &fakeDB{users: map[int64]entity.User{}, challenges: map[int64]entity.Challenge{}}
	for _, u := range users {
		db.users[u.ID] = u
	}
	return db
}

func (f *fakeDB) GetUserByEmail(_ context.Context, email string) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.dbErr != nil {
		return nil, f.dbErr
	}
	for _, u := range f.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, goerror.ErrNotFound
}

func (f *fakeDB) GetUserByID(_ context.Context, id int64) (*entity.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[id]
	if !ok {
		return nil, goerror.ErrNotFound
	}
	return &u, nil
}

func (f *fakeDB) CreateUser(_ context.Context, user entity.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == user.Email {
			return goerror.ErrConflict
		}
	}
	f.users[user.ID] = user
	f.writes++
	return nil
}

func (f *fakeDB) UpdateUserPassword(_ context.Context, id int64, h string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u := f.users[id]
	u.PasswordHash = h
	f.users[id] = u
	f.writes++
	return nil
}

func (f *fakeDB) UpsertChallenge(_ context.Context, chal entity.Challenge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upserts++
	if len(f.upsertErrs) > 0 {
		err := f.upsertErrs[0]
		f.upsertErrs = f.upsertErrs[1:]
		if err != nil {
			return err
		}
	}
	for uid, c := range f.challenges {
		if uid != chal.UserID && c.CodeHash == chal.CodeHash {
			return goerror.ErrConflict
		}
	}
	f.challenges[chal.UserID] = chal
	return nil
}

func (f *fakeDB) ConsumeChallenge(_ context.Context, codeHash string, now time.Time, newHash string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for uid, c := range f.challenges {
		if c.CodeHash != codeHash {
			continue
		}
		if c.Expired(now) {
			return 0, entity.ErrOTPExpired
		}
		delete(f.challenges, uid)
		u := f.users[uid]
		u.PasswordHash = newHash
		f.users[uid] = u
		f.writes++
		return uid, nil
	}
	return 0, entity.ErrOTPInvalid
}

type fakeMessaging struct {
	mu     sync.Mutex
	events []PasswordForgotEvent
	err    error
}

func (f *fakeMessaging) PublishPasswordForgot(_ context.Context, msg PasswordForgotEvent) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, msg)
	return f.err
}

type fakeLimiter struct {
	err        error
	recoverErr error
}

func (f fakeLimiter) AllowPasswordForgot(context.Context, string) error { return f.err }

func (f fakeLimiter) AllowPasswordRecover(context.Context, string) error { return f.recoverErr }

// seqOTP hands out codes in order and repeats the last one.
type seqOTP struct {
	mu    sync.Mutex
	codes []string
}

func (s *seqOTP) Generate() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code := s.codes[0]
	if len(s.codes) > 1 {
		s.codes = s.codes[1:]
	}
	return code, nil
}

type seqID struct{ next int64 }

func (s *seqID) Generate() int64 {
	s.next++
	return s.next
}

type fixture struct {
	uc       *Usecase
	db       *fakeDB
	mq       *fakeMessaging
	password hash.Hash
	otpHash  hash.Hash
	otp      *seqOTP
	clock    *clock.Fixed
	tokens   jwt.JWT
}

const testConfig = `
modules:
  account:
    otp_ttl_minutes: 15
    mask_unknown_email: true
    expose_otp: true
`

func newFixture(t *testing.T, cfgYAML string, users ...entity.User) *fixture {
	t.Helper()

	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	cfg, err := config.NewViperFromBytes("yaml", []byte(cfgYAML))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	clk := &clock.Fixed{At: testNow}
	tokens, err := jwt.NewHS512(jwt.Config{
		Secret: []byte("0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"),
		Issuer: "gopos-test",
		Clock:  clk,
		UUID:   uid.NewUUID(),
	})
	if err != nil {
		t.Fatalf("jwt: %v", err)
	}

	f := &fixture{
		db:       newFakeDB(users...),
		mq:       &fakeMessaging{},
		password: hash.NewBcrypt(4, ""),
		otpHash:  hash.NewHMACSHA256("otp-secret"),
		otp:      &seqOTP{codes: []string{"482913"}},
		clock:    clk,
		tokens:   tokens,
	}
	f.uc = New(Dependency{
		RepoDB:        f.db,
		RepoMessaging: f.mq,
		RepoLimiter:   fakeLimiter{},
		Validator:     v,
		Config:        cfg,
		Password:      f.password,
		OTPHash:       f.otpHash,
		OTP:           f.otp,
		UID:           &seqID{next: 100},
		Clock:         clk,
		JWT:           tokens,
		Instrument:    instrument.NewNoop(),
	})
	return f
}

func (f *fixture) user(t *testing.T, id int64, email, password string, role entity.Role) entity.User {
	t.Helper()
	h, err := f.password.Hash(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := entity.User{ID: id, Email: email, FullName: "User " + email, Role: role, IsActive: true, PasswordHash: string(h)}
	f.db.users[id] = u
	return u
}

func session(u entity.User) context.Context {
	return jwt.SetAuth(context.Background(), jwt.Claims{UserID: u.ID, UserEmail: u.Email, Role: string(u.Role)})
}

func assertCode(t *testing.T, err error, want goerror.Code) *goerror.Error {
	t.Helper()
	var ge *goerror.Error
	if !errors.As(err, &ge) {
		t.Fatalf("err = %v, want *goerror.Error", err)
	}
	if ge.Code() != want {
		t.Fatalf("code = %s, want %s (err %v)", ge.Code(), want, err)
	}
	return ge
}
