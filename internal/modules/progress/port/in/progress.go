package in

import (
	"context"

	"momentum/internal/modules/progress/dto"
)

type Usecase interface {
	SessionSeries(ctx context.Context, input dto.SeriesInput) (dto.SessionSeriesOutput, error)
	GoalSeries(ctx context.Context, input dto.SeriesInput) (dto.GoalSeriesOutput, error)
	Overview(ctx context.Context, input dto.SeriesInput) (dto.OverviewOutput, error)
}
