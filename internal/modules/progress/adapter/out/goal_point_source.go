package out

import (
	"context"
	"time"

	goaldto "momentum/internal/modules/goal/dto"
	goalin "momentum/internal/modules/goal/port/in"
	"momentum/internal/modules/progress/domain"
	progressout "momentum/internal/modules/progress/port/out"
	"momentum/internal/platform/category"
)

type GoalPointSource struct {
	goals goalin.Usecase
}

func NewGoalPointSource(goals goalin.Usecase) progressout.GoalPointSource {
	return GoalPointSource{goals: goals}
}

func (s GoalPointSource) GoalPoints(ctx context.Context, asOf time.Time) ([]domain.GoalPoint, []int, error) {
	evals, err := s.goals.EvaluateAll(ctx, goaldto.EvaluateInput{AsOf: asOf})
	if err != nil {
		return nil, nil, err
	}
	points, skipped := toGoalPoints(evals)
	return points, skipped, nil
}

func (s GoalPointSource) GoalPointsFor(ctx context.Context, asOf time.Time, sessions []domain.SessionPoint) ([]domain.GoalPoint, []int, error) {
	records := make([]goaldto.RecordInput, 0, len(sessions))
	for _, p := range sessions {
		records = append(records, goaldto.RecordInput{
			Date:     p.Date,
			Group:    p.Subject.Group,
			Name:     p.Subject.Name,
			Keywords: p.Subject.Keywords,
		})
	}
	evals, err := s.goals.EvaluateRecords(ctx, goaldto.EvaluateRecordsInput{AsOf: asOf, Records: records})
	if err != nil {
		return nil, nil, err
	}
	points, skipped := toGoalPoints(evals)
	return points, skipped, nil
}

func toGoalPoints(evals []goaldto.EvaluationOutput) ([]domain.GoalPoint, []int) {
	var (
		points  = make([]domain.GoalPoint, 0, len(evals))
		skipped []int
	)
	for _, e := range evals {
		if e.Err != nil {
			skipped = append(skipped, e.Goal.ID)
			continue
		}
		points = append(points, domain.GoalPoint{
			ID:         e.Goal.ID,
			End:        e.Goal.End,
			Level:      category.Level(e.Goal.Level),
			Identifier: e.Goal.Identifier,
			Satisfied:  e.Satisfied,
		})
	}
	return points, skipped
}
