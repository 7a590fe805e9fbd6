package usecase

import (
	"context"
	"time"

	"github.com/shandysiswandi/gopos/internal/account/entity"
	"github.com/shandysiswandi/gopos/internal/account/policy"
	"github.com/shandysiswandi/gopos/internal/pkg/clock"
	"github.com/shandysiswandi/gopos/internal/pkg/config"
	"github.com/shandysiswandi/gopos/internal/pkg/goerror"
	"github.com/shandysiswandi/gopos/internal/pkg/hash"
	"github.com/shandysiswandi/gopos/internal/pkg/instrument"
	"github.com/shandysiswandi/gopos/internal/pkg/jwt"
	"github.com/shandysiswandi/gopos/internal/pkg/otp"
	"github.com/shandysiswandi/gopos/internal/pkg/uid"
	"github.com/shandysiswandi/gopos/internal/pkg/validator"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultOTPTTL = 15 * time.Minute
	// issue attempts before giving up on a code that collides with another
	// subject's challenge
	maxIssueAttempts = 5
)

type PasswordForgotEvent struct {
	UserID    int64
	Email     string
	FullName  string
	OTP       string
	ExpiresAt time.Time
}

type repoMessaging interface {
	PublishPasswordForgot(ctx context.Context, msg PasswordForgotEvent) error
}

type repoLimiter interface {
	AllowPasswordForgot(ctx context.Context, email string) error
	AllowPasswordRecover(ctx context.Context, ip string) error
}

type repoDB interface {
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	GetUserByID(ctx context.Context, id int64) (*entity.User, error)

	CreateUser(ctx context.Context, user entity.User) error
	UpdateUserPassword(ctx context.Context, id int64, hash string) error

	// UpsertChallenge replaces the subject's challenge. It returns
	// goerror.ErrConflict when the code hash belongs to another subject.
	UpsertChallenge(ctx context.Context, chal entity.Challenge) error
	// ConsumeChallenge deletes the challenge holding codeHash and stores
	// newHash as the owner's password in one transaction. It returns
	// entity.ErrOTPInvalid when no challenge matches and entity.ErrOTPExpired,
	// leaving the challenge in place, when now is past its window.
	ConsumeChallenge(ctx context.Context, codeHash string, now time.Time, newHash string) (int64, error)
}

type Usecase struct {
	repoDB        repoDB
	repoMessaging repoMessaging
	repoLimiter   repoLimiter
	validator     validator.Validator
	cfg           config.Config
	password      hash.Hash
	otpHash       hash.Hash
	otp           otp.Generator
	uid           uid.NumberID
	clock         clock.Clocker
	jwt           jwt.JWT
	ins           instrument.Instrumentation
}

type Dependency struct {
	RepoDB        repoDB
	RepoMessaging repoMessaging
	RepoLimiter   repoLimiter
	Validator     validator.Validator
	Config        config.Config
	Password      hash.Hash
	OTPHash       hash.Hash
	OTP           otp.Generator
	UID           uid.NumberID
	Clock         clock.Clocker
	JWT           jwt.JWT
	Instrument    instrument.Instrumentation
}

func New(dep Dependency) *Usecase {
	return &Usecase{
		repoDB:        dep.RepoDB,
		repoMessaging: dep.RepoMessaging,
		repoLimiter:   dep.RepoLimiter,
		validator:     dep.Validator,
		cfg:           dep.Config,
		password:      dep.Password,
		otpHash:       dep.OTPHash,
		otp:           dep.OTP,
		uid:           dep.UID,
		clock:         dep.Clock,
		jwt:           dep.JWT,
		ins:           dep.Instrument,
	}
}

func (s *Usecase) startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	return s.ins.Tracer("account.usecase").Start(ctx, name)
}

func (s *Usecase) otpTTL() time.Duration {
	if ttl := s.cfg.GetMinute("modules.account.otp_ttl_minutes"); ttl > 0 {
		return ttl
	}
	return defaultOTPTTL
}

// authorize requires a session whose role may perform act.
func (s *Usecase) authorize(ctx context.Context, act entity.Action) (*jwt.Claims, entity.Role, error) {
	clm := jwt.GetAuth(ctx)
	if clm == nil {
		return nil, entity.RoleAnonymous, goerror.NewBusiness("Authentication required", goerror.CodeUnauthorized)
	}

	role, _ := entity.ParseRole(clm.Role)
	if !policy.Authorize(act, role) {
		return nil, role, goerror.NewBusiness("Account not allowed", goerror.CodeForbidden)
	}

	return clm, role, nil
}
