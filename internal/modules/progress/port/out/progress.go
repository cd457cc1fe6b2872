package out

import (
	"context"
	"time"

	"momentum/internal/modules/progress/domain"
)

type SessionPointSource interface {
	SessionPoints(ctx context.Context) ([]domain.SessionPoint, error)
}

// GoalPointSource evaluates every goal as of asOf. Goals that fail evaluation are
// returned by id in skipped instead of points. GoalPointsFor evaluates against the
// given sessions instead of reading them again.
type GoalPointSource interface {
	GoalPoints(ctx context.Context, asOf time.Time) (points []domain.GoalPoint, skipped []int, err error)
	GoalPointsFor(ctx context.Context, asOf time.Time, sessions []domain.SessionPoint) (points []domain.GoalPoint, skipped []int, err error)
}
