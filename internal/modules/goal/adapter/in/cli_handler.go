package in

import (
	"context"
	"time"

	"momentum/internal/modules/goal/dto"
	goalin "momentum/internal/modules/goal/port/in"
)

type CLIHandler struct {
	usecase goalin.Usecase
}

func NewCLIHandler(usecase goalin.Usecase) CLIHandler {
	return CLIHandler{usecase: usecase}
}

func (h CLIHandler) Evaluate(ctx context.Context, asOf time.Time) ([]dto.EvaluationOutput, error) {
	return h.usecase.EvaluateAll(ctx, dto.EvaluateInput{AsOf: asOf})
}

func (h CLIHandler) List(ctx context.Context, period string, asOf time.Time) ([]dto.EvaluationOutput, error) {
	return h.usecase.ListGoals(ctx, dto.ListGoalsInput{Period: period, AsOf: asOf})
}

func (h CLIHandler) Import(ctx context.Context, path string) (dto.ImportGoalsOutput, error) {
	return h.usecase.ImportGoals(ctx, dto.ImportGoalsInput{Path: path})
}
