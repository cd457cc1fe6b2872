package usecase

import (
	"context"

	"momentum/internal/modules/goal/domain"
	"momentum/internal/modules/goal/dto"
	goalin "momentum/internal/modules/goal/port/in"
	"momentum/internal/modules/goal/service"
	"momentum/internal/platform/category"
)

type Interactor struct {
	svc *service.GoalService
}

func NewInteractor(svc *service.GoalService) goalin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) EvaluateAll(ctx context.Context, input dto.EvaluateInput) ([]dto.EvaluationOutput, error) {
	results, err := i.svc.EvaluateAll(ctx, input.AsOf)
	if err != nil {
		return nil, err
	}
	return toOutputs(results), nil
}

// EvaluateRecords evaluates every stored goal against the given records rather than
// the session store.
func (i *Interactor) EvaluateRecords(ctx context.Context, input dto.EvaluateRecordsInput) ([]dto.EvaluationOutput, error) {
	records := make([]domain.Record, 0, len(input.Records))
	for _, r := range input.Records {
		records = append(records, domain.Record{
			Date:    r.Date,
			Subject: category.Subject{Group: r.Group, Name: r.Name, Keywords: r.Keywords},
		})
	}
	results, err := i.svc.EvaluateRecords(ctx, input.AsOf, records)
	if err != nil {
		return nil, err
	}
	return toOutputs(results), nil
}

func (i *Interactor) ListGoals(ctx context.Context, input dto.ListGoalsInput) ([]dto.EvaluationOutput, error) {
	period, err := domain.ParsePeriod(input.Period)
	if err != nil {
		return nil, err
	}
	results, err := i.svc.List(ctx, period, input.AsOf)
	if err != nil {
		return nil, err
	}
	return toOutputs(results), nil
}

func (i *Interactor) ImportGoals(ctx context.Context, input dto.ImportGoalsInput) (dto.ImportGoalsOutput, error) {
	n, err := i.svc.Import(ctx, input.Path)
	if err != nil {
		return dto.ImportGoalsOutput{}, err
	}
	return dto.ImportGoalsOutput{Count: n}, nil
}

func toOutputs(results []service.Result) []dto.EvaluationOutput {
	out := make([]dto.EvaluationOutput, 0, len(results))
	for _, r := range results {
		out = append(out, dto.EvaluationOutput{
			Goal: dto.GoalOutput{
				ID:         r.Goal.ID,
				Start:      r.Goal.Start,
				End:        r.Goal.End,
				Label:      r.Goal.Label,
				Level:      int(r.Goal.Level),
				Identifier: r.Goal.Identifier,
				Condition:  string(r.Goal.Condition),
				Quantity:   r.Goal.Quantity,
			},
			MatchedCount: r.Evaluation.MatchedCount,
			Satisfied:    r.Evaluation.Satisfied,
			Fraction:     r.Evaluation.Fraction,
			Err:          r.Err,
		})
	}
	return out
}
