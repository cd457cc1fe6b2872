package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"momentum/internal/modules/goal/domain"
	goalout "momentum/internal/modules/goal/port/out"
	"momentum/internal/platform/clock"
	apperrors "momentum/internal/platform/errors"
)

// Result pairs a goal with its evaluation, or with the error that prevented one.
type Result struct {
	Goal       domain.Goal
	Evaluation domain.Evaluation
	Err        error
}

type GoalService struct {
	clock   clock.Clock
	goals   goalout.GoalStore
	records goalout.RecordSource
	writer  goalout.GoalWriter
	files   goalout.GoalFileReader
	log     *zap.Logger
}

// NewGoalService wires the evaluator. writer and files may be nil when the configured
// store cannot take imported goals.
func NewGoalService(clk clock.Clock, goals goalout.GoalStore, records goalout.RecordSource, writer goalout.GoalWriter, files goalout.GoalFileReader, log *zap.Logger) *GoalService {
	if log == nil {
		log = zap.NewNop()
	}
	return &GoalService{clock: clk, goals: goals, records: records, writer: writer, files: files, log: log}
}

func (s *GoalService) asOf(t time.Time) time.Time {
	if t.IsZero() {
		return clock.Today(s.clock)
	}
	return clock.Day(t)
}

// EvaluateAll evaluates every goal in store order against a fresh snapshot of sessions.
// A goal that fails to evaluate is reported in its Result and does not stop the others.
func (s *GoalService) EvaluateAll(ctx context.Context, asOf time.Time) ([]Result, error) {
	records, err := s.records.Records(ctx)
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	return s.EvaluateRecords(ctx, asOf, records)
}

// EvaluateRecords is EvaluateAll over a caller-supplied snapshot of sessions.
func (s *GoalService) EvaluateRecords(ctx context.Context, asOf time.Time, records []domain.Record) ([]Result, error) {
	asOf = s.asOf(asOf)
	goals, err := s.goals.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("load goals: %w", err)
	}
	s.log.Debug("goal snapshot loaded", zap.Int("goals", len(goals)), zap.Int("sessions", len(records)))

	results := make([]Result, 0, len(goals))
	for _, g := range goals {
		eval, err := domain.Evaluate(g, records, asOf)
		if err != nil {
			s.log.Warn("goal evaluation failed", zap.Int("goal_id", g.ID), zap.Error(err))
		}
		results = append(results, Result{Goal: g, Evaluation: eval, Err: err})
	}
	return results, nil
}

// List returns the goals falling in period as of asOf, earliest end date first.
func (s *GoalService) List(ctx context.Context, period domain.Period, asOf time.Time) ([]Result, error) {
	asOf = s.asOf(asOf)
	all, err := s.EvaluateAll(ctx, asOf)
	if err != nil {
		return nil, err
	}
	var out []Result
	for _, r := range all {
		if period.Includes(r.Goal, asOf) {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Goal.End.Before(out[j].Goal.End) })
	return out, nil
}

// Import replaces the stored goals with the contents of the goal file at path.
func (s *GoalService) Import(ctx context.Context, path string) (int, error) {
	if s.writer == nil || s.files == nil {
		return 0, fmt.Errorf("%w: goal import needs the sqlite store", apperrors.ErrInvalidInput)
	}
	if strings.TrimSpace(path) == "" {
		return 0, fmt.Errorf("%w: goal file path is required", apperrors.ErrInvalidInput)
	}
	goals, err := s.files.Open(path).List(ctx)
	if err != nil {
		return 0, fmt.Errorf("read goal file: %w", err)
	}
	if err := s.writer.Replace(ctx, goals); err != nil {
		return 0, fmt.Errorf("store goals: %w", err)
	}
	s.log.Info("goals imported", zap.String("path", path), zap.Int("count", len(goals)))
	return len(goals), nil
}
