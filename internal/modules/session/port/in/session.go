package in

import (
	"context"

	"momentum/internal/modules/session/dto"
)

type Usecase interface {
	LogSession(ctx context.Context, input dto.LogSessionInput) (dto.LogSessionOutput, error)
	ListSessions(ctx context.Context) ([]dto.SessionOutput, error)
}
