package in

import (
	"context"

	"momentum/internal/modules/goal/dto"
)

type Usecase interface {
	EvaluateAll(ctx context.Context, input dto.EvaluateInput) ([]dto.EvaluationOutput, error)
	EvaluateRecords(ctx context.Context, input dto.EvaluateRecordsInput) ([]dto.EvaluationOutput, error)
	ListGoals(ctx context.Context, input dto.ListGoalsInput) ([]dto.EvaluationOutput, error)
	ImportGoals(ctx context.Context, input dto.ImportGoalsInput) (dto.ImportGoalsOutput, error)
}
