package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"momentum/internal/modules/progress/domain"
	progressout "momentum/internal/modules/progress/port/out"
	"momentum/internal/platform/category"
	"momentum/internal/platform/clock"
	apperrors "momentum/internal/platform/errors"
)

type SessionSeries struct {
	Range   domain.DateRange
	Counts  map[category.Selector][]int
	Targets map[category.Selector][]float64
}

type GoalSeries struct {
	Range   domain.DateRange
	Counts  map[category.Selector]domain.GoalCounts
	Skipped []int
}

type ProgressService struct {
	clock       clock.Clock
	sessions    progressout.SessionPointSource
	goals       progressout.GoalPointSource
	reportStart time.Time
	targets     map[category.Selector]float64
	log         *zap.Logger
}

func NewProgressService(clk clock.Clock, sessions progressout.SessionPointSource, goals progressout.GoalPointSource, reportStart time.Time, targets map[category.Selector]float64, log *zap.Logger) *ProgressService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ProgressService{
		clock:       clk,
		sessions:    sessions,
		goals:       goals,
		reportStart: clock.Day(reportStart),
		targets:     targets,
		log:         log,
	}
}

// Range resolves optional bounds: a zero from is the report start, a zero to is today.
func (s *ProgressService) Range(from, to time.Time) (domain.DateRange, error) {
	if from.IsZero() {
		from = s.reportStart
	}
	if to.IsZero() {
		to = clock.Today(s.clock)
	}
	return domain.NewDateRange(clock.Day(from), clock.Day(to))
}

func checkSelectors(selectors []category.Selector) error {
	if len(selectors) == 0 {
		return fmt.Errorf("%w: at least one selector is required", apperrors.ErrInvalidInput)
	}
	return nil
}

func (s *ProgressService) SessionSeries(ctx context.Context, selectors []category.Selector, r domain.DateRange) (SessionSeries, error) {
	if err := checkSelectors(selectors); err != nil {
		return SessionSeries{}, err
	}
	points, err := s.sessions.SessionPoints(ctx)
	if err != nil {
		return SessionSeries{}, fmt.Errorf("load sessions: %w", err)
	}
	return s.sessionSeries(selectors, points, r)
}

func (s *ProgressService) GoalSeries(ctx context.Context, selectors []category.Selector, r domain.DateRange) (GoalSeries, error) {
	if err := checkSelectors(selectors); err != nil {
		return GoalSeries{}, err
	}
	points, skipped, err := s.goals.GoalPoints(ctx, r.To)
	if err != nil {
		return GoalSeries{}, fmt.Errorf("load goals: %w", err)
	}
	return s.goalSeries(selectors, points, skipped, r), nil
}

// Overview computes both series from one read of the session log. The session
// series and the goal evaluations run concurrently over that snapshot.
func (s *ProgressService) Overview(ctx context.Context, selectors []category.Selector, r domain.DateRange) (SessionSeries, GoalSeries, error) {
	if err := checkSelectors(selectors); err != nil {
		return SessionSeries{}, GoalSeries{}, err
	}
	points, err := s.sessions.SessionPoints(ctx)
	if err != nil {
		return SessionSeries{}, GoalSeries{}, fmt.Errorf("load sessions: %w", err)
	}
	var (
		sessions   SessionSeries
		goalPoints []domain.GoalPoint
		skipped    []int
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sessions, err = s.sessionSeries(selectors, points, r)
		return err
	})
	g.Go(func() error {
		var err error
		if goalPoints, skipped, err = s.goals.GoalPointsFor(gctx, r.To, points); err != nil {
			return fmt.Errorf("load goals: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return SessionSeries{}, GoalSeries{}, err
	}
	s.log.Debug("overview computed", zap.Int("sessions", len(points)), zap.Int("goals", len(goalPoints)), zap.Int("skipped", len(skipped)))
	return sessions, s.goalSeries(selectors, goalPoints, skipped, r), nil
}

func (s *ProgressService) sessionSeries(selectors []category.Selector, points []domain.SessionPoint, r domain.DateRange) (SessionSeries, error) {
	counts, err := domain.SessionSeries(selectors, points, r)
	if err != nil {
		return SessionSeries{}, err
	}
	days := len(r.Days())
	targets := map[category.Selector][]float64{}
	for _, sel := range selectors {
		if yearly, ok := s.targets[sel]; ok {
			targets[sel] = domain.TargetPace(yearly, days)
		}
	}
	s.log.Debug("session series computed", zap.Int("sessions", len(points)), zap.Int("selectors", len(selectors)), zap.Int("days", days))
	return SessionSeries{Range: r, Counts: counts, Targets: targets}, nil
}

func (s *ProgressService) goalSeries(selectors []category.Selector, points []domain.GoalPoint, skipped []int, r domain.DateRange) GoalSeries {
	if len(skipped) > 0 {
		s.log.Warn("goals left out of the series", zap.Ints("goal_ids", skipped))
	}
	return GoalSeries{Range: r, Counts: domain.GoalSeries(selectors, points, r), Skipped: skipped}
}
