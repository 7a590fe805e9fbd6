package account

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/gopos/internal/account/inbound"
	"github.com/shandysiswandi/gopos/internal/account/outbound/cache"
	"github.com/shandysiswandi/gopos/internal/account/outbound/db"
	"github.com/shandysiswandi/gopos/internal/account/outbound/mq"
	"github.com/shandysiswandi/gopos/internal/account/usecase"
	"github.com/shandysiswandi/gopos/internal/pkg/clock"
	"github.com/shandysiswandi/gopos/internal/pkg/config"
	"github.com/shandysiswandi/gopos/internal/pkg/hash"
	"github.com/shandysiswandi/gopos/internal/pkg/instrument"
	"github.com/shandysiswandi/gopos/internal/pkg/jwt"
	"github.com/shandysiswandi/gopos/internal/pkg/messaging"
	"github.com/shandysiswandi/gopos/internal/pkg/otp"
	"github.com/shandysiswandi/gopos/internal/pkg/ratelimit"
	"github.com/shandysiswandi/gopos/internal/pkg/router"
	"github.com/shandysiswandi/gopos/internal/pkg/uid"
	"github.com/shandysiswandi/gopos/internal/pkg/validator"
)

type Dependency struct {
	DBConn     *pgxpool.Pool              `validate:"required"`
	CacheConn  *redis.Client              `validate:"required"`
	Router     *router.Router             `validate:"required"`
	Messaging  messaging.Messaging        `validate:"required"`
	Config     config.Config              `validate:"required"`
	Instrument instrument.Instrumentation `validate:"required"`
	UID        uid.NumberID               `validate:"required"`
	Password   hash.Hash                  `validate:"required"`
	HMAC       hash.Hash                  `validate:"required"`
	OTP        otp.Generator              `validate:"required"`
	Clock      clock.Clocker              `validate:"required"`
	Validator  validator.Validator        `validate:"required"`
	JWT        jwt.JWT                    `validate:"required"`
}

func New(dep Dependency) error {
	if err := dep.Validator.Validate(dep); err != nil {
		return err
	}

	var forgotLimiter, recoverLimiter *ratelimit.Limiter
	if dep.Config.GetBool("modules.account.rate_limit.enabled") {
		forgotLimiter = ratelimit.New(dep.CacheConn, ratelimit.Config{
			Prefix:   "gopos:account",
			Cooldown: dep.Config.GetSecond("modules.account.rate_limit.cooldown_seconds"),
			Window:   dep.Config.GetSecond("modules.account.rate_limit.window_seconds"),
			Max:      dep.Config.GetInt("modules.account.rate_limit.max"),
		})
		recoverLimiter = ratelimit.New(dep.CacheConn, ratelimit.Config{
			Prefix:   "gopos:account",
			Window:   dep.Config.GetSecond("modules.account.rate_limit.recover.window_seconds"),
			Max:      dep.Config.GetInt("modules.account.rate_limit.recover.max"),
			BlockFor: dep.Config.GetSecond("modules.account.rate_limit.recover.block_seconds"),
		})
	}

	uc := usecase.New(usecase.Dependency{
		RepoDB:        db.NewDB(dep.DBConn, dep.Instrument),
		RepoMessaging: mq.NewMessaging(dep.Messaging, dep.Instrument),
		RepoLimiter:   cache.NewLimiter(forgotLimiter, recoverLimiter, dep.Instrument),
		Validator:     dep.Validator,
		Config:        dep.Config,
		Password:      dep.Password,
		OTPHash:       dep.HMAC,
		OTP:           dep.OTP,
		UID:           dep.UID,
		Clock:         dep.Clock,
		JWT:           dep.JWT,
		Instrument:    dep.Instrument,
	})

	inbound.RegisterHTTPEndpoint(dep.Router, uc)

	return nil
}
