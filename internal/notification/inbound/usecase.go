package inbound

import (
	"context"

	"github.com/shandysiswandi/gopos/internal/notification/usecase"
)

type uc interface {
	ConsumePasswordForgot(ctx context.Context, in usecase.ConsumePasswordForgotInput) error
}
