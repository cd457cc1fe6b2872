package in

import (
	"context"

	"momentum/internal/modules/progress/dto"
	progressin "momentum/internal/modules/progress/port/in"
)

type CLIHandler struct {
	usecase progressin.Usecase
}

func NewCLIHandler(usecase progressin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Sessions(ctx context.Context, selectors []string, from, to string) (dto.SessionSeriesOutput, error) {
	return h.usecase.SessionSeries(ctx, dto.SeriesInput{Selectors: selectors, From: from, To: to})
}

func (h CLIHandler) Goals(ctx context.Context, selectors []string, from, to string) (dto.GoalSeriesOutput, error) {
	return h.usecase.GoalSeries(ctx, dto.SeriesInput{Selectors: selectors, From: from, To: to})
}

func (h CLIHandler) Overview(ctx context.Context, selectors []string, from, to string) (dto.OverviewOutput, error) {
	return h.usecase.Overview(ctx, dto.SeriesInput{Selectors: selectors, From: from, To: to})
}
