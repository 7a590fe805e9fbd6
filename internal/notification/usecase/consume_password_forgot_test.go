package usecase

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shandysiswandi/gopos/internal/notification/entity"
	"github.com/shandysiswandi/gopos/internal/pkg/clock"
	"github.com/shandysiswandi/gopos/internal/pkg/config"
	"github.com/shandysiswandi/gopos/internal/pkg/instrument"
	"github.com/shandysiswandi/gopos/internal/pkg/mail"
	"github.com/shandysiswandi/gopos/internal/pkg/validator"
)

type fakeDB struct {
	mu        sync.Mutex
	created   []entity.Delivery
	results   []entity.DeliveryResult
	createErr error
}

func (f *fakeDB) CreateDelivery(_ context.Context, d entity.Delivery) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, d)
	return nil
}

func (f *fakeDB) UpdateDelivery(_ context.Context, r entity.DeliveryResult) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.results = append(f.results, r)
	return nil
}

// flakyMail fails the first failures sends.
type flakyMail struct {
	failures int
	calls    int
	sent     []mail.Message
}

func (f *flakyMail) Send(_ context.Context, msg mail.Message) error {
	f.calls++
	if f.calls <= f.failures {
		return errors.New("smtp: 421 try later")
	}
	f.sent = append(f.sent, msg)
	return nil
}

type seqID struct{ next int64 }

func (s *seqID) Generate() int64 {
	s.next++
	return s.next
}

const testConfig = `
app:
  company_name: GoPOS Test
modules:
  notification:
    retry:
      max_retries: 2
      base_delay_ms: 1
`

func newUsecase(t *testing.T, db *fakeDB, m *flakyMail) *Usecase {
	t.Helper()
	v, err := validator.NewV10Validator()
	if err != nil {
		t.Fatalf("validator: %v", err)
	}
	cfg, err := config.NewViperFromBytes("yaml", []byte(testConfig))
	if err != nil {
		t.Fatalf("config: %v", err)
	}
	return NewNotification(Dependency{
		RepoDB:     db,
		RepoMail:   m,
		Config:     cfg,
		UID:        &seqID{},
		Clock:      clock.Fixed{At: time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)},
		Validator:  v,
		Instrument: instrument.NewNoop(),
	})
}

func aliceInput() ConsumePasswordForgotInput {
	return ConsumePasswordForgotInput{
		UserID:    1,
		Email:     "alice@example.com",
		FullName:  "Alice",
		OTP:       "482913",
		ExpiresAt: time.Date(2026, 3, 1, 9, 15, 0, 0, time.UTC),
	}
}

func TestConsumePasswordForgotSends(t *testing.T) {
	// Arrange
	db := &fakeDB{}
	m := &flakyMail{}
	uc := newUsecase(t, db, m)

	// Act
	err := uc.ConsumePasswordForgot(t.Context(), aliceInput())

	// Assert
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if len(m.sent) != 1 {
		t.Fatalf("sent = %d", len(m.sent))
	}
	msg := m.sent[0]
	if msg.Subject != "Your OTP Code" || msg.To[0] != "alice@example.com" {
		t.Fatalf("msg = %+v", msg)
	}
	if !strings.Contains(msg.TextBody, "Your otp code is 482913") || !strings.Contains(msg.HTMLBody, "482913") {
		t.Fatalf("body = %q", msg.TextBody)
	}
	if len(db.created) != 1 || db.created[0].Status != entity.DeliveryStatusQueued || db.created[0].Kind != entity.KindPasswordForgot {
		t.Fatalf("created = %+v", db.created)
	}
	if len(db.results) != 1 || db.results[0].Status != entity.DeliveryStatusSent || db.results[0].Attempts != 1 {
		t.Fatalf("results = %+v", db.results)
	}
}

func TestConsumePasswordForgotRetries(t *testing.T) {
	// Arrange
	db := &fakeDB{}
	m := &flakyMail{failures: 2}
	uc := newUsecase(t, db, m)

	// Act
	err := uc.ConsumePasswordForgot(t.Context(), aliceInput())

	// Assert
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if m.calls != 3 || len(m.sent) != 1 {
		t.Fatalf("calls = %d sent = %d", m.calls, len(m.sent))
	}
	if db.results[0].Status != entity.DeliveryStatusSent || db.results[0].Attempts != 3 {
		t.Fatalf("result = %+v", db.results[0])
	}
}

func TestConsumePasswordForgotGivesUp(t *testing.T) {
	// Arrange
	db := &fakeDB{}
	m := &flakyMail{failures: 10}
	uc := newUsecase(t, db, m)

	// Act
	err := uc.ConsumePasswordForgot(t.Context(), aliceInput())

	// Assert
	if err != nil {
		t.Fatalf("delivery failure leaked: %v", err)
	}
	if m.calls != 3 {
		t.Fatalf("calls = %d", m.calls)
	}
	r := db.results[0]
	if r.Status != entity.DeliveryStatusFailed || r.Attempts != 3 || !strings.Contains(r.LastError, "421") {
		t.Fatalf("result = %+v", r)
	}
}

func TestConsumePasswordForgotDropsInvalidMessage(t *testing.T) {
	// Arrange
	db := &fakeDB{}
	m := &flakyMail{}
	uc := newUsecase(t, db, m)
	in := aliceInput()
	in.Email = "not-an-email"

	// Act
	err := uc.ConsumePasswordForgot(t.Context(), in)

	// Assert
	if err != nil || m.calls != 0 || len(db.created) != 0 {
		t.Fatalf("err = %v calls = %d created = %d", err, m.calls, len(db.created))
	}
}

func TestConsumePasswordForgotSendsWithoutTracking(t *testing.T) {
	// Arrange
	db := &fakeDB{createErr: errors.New("db down")}
	m := &flakyMail{}
	uc := newUsecase(t, db, m)

	// Act
	err := uc.ConsumePasswordForgot(t.Context(), aliceInput())

	// Assert
	if err != nil || len(m.sent) != 1 || len(db.results) != 0 {
		t.Fatalf("err = %v sent = %d results = %d", err, len(m.sent), len(db.results))
	}
}
