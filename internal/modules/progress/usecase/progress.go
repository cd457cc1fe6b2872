package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"momentum/internal/modules/progress/domain"
	"momentum/internal/modules/progress/dto"
	progressin "momentum/internal/modules/progress/port/in"
	"momentum/internal/modules/progress/service"
	"momentum/internal/platform/category"
	"momentum/internal/platform/clock"
	apperrors "momentum/internal/platform/errors"
)

type Interactor struct {
	svc *service.ProgressService
}

func NewInteractor(svc *service.ProgressService) progressin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) SessionSeries(ctx context.Context, input dto.SeriesInput) (dto.SessionSeriesOutput, error) {
	selectors, r, err := i.resolve(input)
	if err != nil {
		return dto.SessionSeriesOutput{}, err
	}
	series, err := i.svc.SessionSeries(ctx, selectors, r)
	if err != nil {
		return dto.SessionSeriesOutput{}, err
	}
	return sessionOutput(selectors, series), nil
}

func (i *Interactor) GoalSeries(ctx context.Context, input dto.SeriesInput) (dto.GoalSeriesOutput, error) {
	selectors, r, err := i.resolve(input)
	if err != nil {
		return dto.GoalSeriesOutput{}, err
	}
	series, err := i.svc.GoalSeries(ctx, selectors, r)
	if err != nil {
		return dto.GoalSeriesOutput{}, err
	}
	return goalOutput(selectors, series), nil
}

func (i *Interactor) Overview(ctx context.Context, input dto.SeriesInput) (dto.OverviewOutput, error) {
	selectors, r, err := i.resolve(input)
	if err != nil {
		return dto.OverviewOutput{}, err
	}
	sessions, goals, err := i.svc.Overview(ctx, selectors, r)
	if err != nil {
		return dto.OverviewOutput{}, err
	}
	return dto.OverviewOutput{Sessions: sessionOutput(selectors, sessions), Goals: goalOutput(selectors, goals)}, nil
}

// resolve parses the selectors, dropping repeats while keeping selection order, and
// the optional range bounds.
func (i *Interactor) resolve(input dto.SeriesInput) ([]category.Selector, domain.DateRange, error) {
	parsed, err := category.ParseSelectors(input.Selectors)
	if err != nil {
		return nil, domain.DateRange{}, err
	}
	seen := map[category.Selector]bool{}
	selectors := make([]category.Selector, 0, len(parsed))
	for _, sel := range parsed {
		if !seen[sel] {
			seen[sel] = true
			selectors = append(selectors, sel)
		}
	}
	from, err := optionalDate("from", input.From)
	if err != nil {
		return nil, domain.DateRange{}, err
	}
	to, err := optionalDate("to", input.To)
	if err != nil {
		return nil, domain.DateRange{}, err
	}
	r, err := i.svc.Range(from, to)
	if err != nil {
		return nil, domain.DateRange{}, err
	}
	return selectors, r, nil
}

func optionalDate(name, raw string) (time.Time, error) {
	if strings.TrimSpace(raw) == "" {
		return time.Time{}, nil
	}
	t, err := clock.ParseDate(raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s date %q must be YYYY-MM-DD", apperrors.ErrInvalidInput, name, raw)
	}
	return t, nil
}

func sessionOutput(selectors []category.Selector, series service.SessionSeries) dto.SessionSeriesOutput {
	out := dto.SessionSeriesOutput{Days: series.Range.Days(), Traces: make([]dto.SessionTrace, 0, len(selectors))}
	for _, sel := range selectors {
		out.Traces = append(out.Traces, dto.SessionTrace{
			Selector: sel.String(),
			Counts:   series.Counts[sel],
			Target:   series.Targets[sel],
		})
	}
	return out
}

func goalOutput(selectors []category.Selector, series service.GoalSeries) dto.GoalSeriesOutput {
	out := dto.GoalSeriesOutput{Days: series.Range.Days(), Traces: make([]dto.GoalTrace, 0, len(selectors)), Skipped: series.Skipped}
	for _, sel := range selectors {
		c := series.Counts[sel]
		out.Traces = append(out.Traces, dto.GoalTrace{
			Selector:     sel.String(),
			Total:        c.Total,
			Satisfied:    c.Satisfied,
			NotSatisfied: c.NotSatisfied,
			Fraction:     c.Fraction,
		})
	}
	return out
}
