package email

import (
	"context"
	"testing"

	"github.com/shandysiswandi/gopos/internal/pkg/instrument"
	"github.com/shandysiswandi/gopos/internal/pkg/mail"
)

type captureMail struct {
	got mail.Message
}

func (c *captureMail) Send(_ context.Context, msg mail.Message) error {
	c.got = msg
	return nil
}

func (*captureMail) Close() error { return nil }

func TestSendFillsSender(t *testing.T) {
	// Arrange
	c := &captureMail{}
	m := New(c, "no-reply@gopos.local", instrument.NewNoop())

	// Act
	err := m.Send(context.Background(), mail.Message{To: []string{"alice@example.com"}, Subject: "Your OTP Code"})

	// Assert
	if err != nil || c.got.From != "no-reply@gopos.local" {
		t.Fatalf("err = %v from = %q", err, c.got.From)
	}
}
