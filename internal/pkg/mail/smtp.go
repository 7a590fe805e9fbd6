package mail

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/smtp"
	"strconv"
	"strings"
)

var ErrSMTPHostPortRequired = errors.New("mail: smtp host and port are required")

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

type SMTP struct {
	addr string
	from string
	auth smtp.Auth
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewSMTP(cfg SMTPConfig) (*SMTP, error) {
	if cfg.Host == "" || cfg.Port == 0 {
		return nil, ErrSMTPHostPortRequired
	}

	var auth smtp.Auth
	if cfg.Username != "" && cfg.Password != "" {
		auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}

	return &SMTP{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		from: cfg.From,
		auth: auth,
		send: smtp.SendMail,
	}, nil
}

// Send does not honour ctx once the SMTP dialog has started; net/smtp has no
// context support.
func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(msg.To) == 0 {
		return ErrNoRecipients
	}

	from := msg.From
	if from == "" {
		from = s.from
	}
	if from == "" {
		return ErrNoSender
	}

	return s.send(s.addr, s.auth, from, msg.To, compose(from, msg))
}

func (s *SMTP) Close() error { return nil }

func compose(from string, msg Message) []byte {
	body, contentType := buildBody(msg)

	var sb strings.Builder
	writeHeader(&sb, "From", from)
	writeHeader(&sb, "To", strings.Join(msg.To, ", "))
	writeHeader(&sb, "Subject", mime.QEncoding.Encode("utf-8", msg.Subject))
	writeHeader(&sb, "MIME-Version", "1.0")
	writeHeader(&sb, "Content-Type", contentType)
	sb.WriteString("\r\n")
	sb.WriteString(body)

	return []byte(sb.String())
}

// writeHeader strips CR and LF so values cannot inject extra headers.
func writeHeader(sb *strings.Builder, key, value string) {
	value = strings.NewReplacer("\r", "", "\n", "").Replace(value)
	fmt.Fprintf(sb, "%s: %s\r\n", key, value)
}

func buildBody(msg Message) (body, contentType string) {
	switch {
	case msg.HTMLBody != "" && msg.TextBody != "":
		boundary := boundary()
		var sb strings.Builder
		fmt.Fprintf(&sb, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, msg.TextBody)
		fmt.Fprintf(&sb, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, msg.HTMLBody)
		fmt.Fprintf(&sb, "--%s--", boundary)
		return sb.String(), "multipart/alternative; boundary=" + boundary
	case msg.HTMLBody != "":
		return msg.HTMLBody, "text/html; charset=UTF-8"
	default:
		return msg.TextBody, "text/plain; charset=UTF-8"
	}
}

func boundary() string {
	var b [12]byte
	if _, err := rand.Read(b[:]); err != nil {
		return "gopos-boundary"
	}
	return "gopos-" + hex.EncodeToString(b[:])
}
