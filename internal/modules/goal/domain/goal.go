package domain

import (
	"fmt"
	"strings"
	"time"

	"momentum/internal/platform/category"
	apperrors "momentum/internal/platform/errors"
)

type ConditionType string

const ConditionCount ConditionType = "Count"

// Goal asks for Quantity matching sessions between Start and End, both inclusive.
type Goal struct {
	ID         int
	Start      time.Time
	End        time.Time
	Label      string
	Level      category.Level
	Identifier string
	Condition  ConditionType
	Quantity   int
}

func (g Goal) Validate() error {
	if err := g.Level.Validate(); err != nil {
		return fmt.Errorf("goal %d: %w", g.ID, err)
	}
	if g.Level != category.LevelTotal && strings.TrimSpace(g.Identifier) == "" {
		return fmt.Errorf("%w: goal %d needs an identifier", apperrors.ErrInvalidGoalDefinition, g.ID)
	}
	if g.End.Before(g.Start) {
		return fmt.Errorf("%w: goal %d ends before it starts", apperrors.ErrInvalidGoalDefinition, g.ID)
	}
	if g.Quantity < 0 {
		return fmt.Errorf("%w: goal %d has negative quantity", apperrors.ErrInvalidGoalDefinition, g.ID)
	}
	return nil
}

// Record is the read-only view of a session that evaluation needs.
type Record struct {
	Date    time.Time
	Subject category.Subject
}

type Evaluation struct {
	MatchedCount int
	Satisfied    bool
	Fraction     float64
}

// Evaluate counts records inside the goal window that match its category.
// A goal is satisfied once its window has closed (asOf on or after End) with enough
// matches. Goals at the total level never report satisfied.
func Evaluate(goal Goal, records []Record, asOf time.Time) (Evaluation, error) {
	if goal.Condition != ConditionCount {
		return Evaluation{}, fmt.Errorf("%w: goal %d uses %q", apperrors.ErrUnsupportedConditionType, goal.ID, string(goal.Condition))
	}
	if err := goal.Validate(); err != nil {
		return Evaluation{}, err
	}

	matched := 0
	for _, r := range records {
		if r.Date.Before(goal.Start) || r.Date.After(goal.End) {
			continue
		}
		ok, err := category.Match(r.Subject, goal.Level, goal.Identifier)
		if err != nil {
			return Evaluation{}, fmt.Errorf("goal %d: %w", goal.ID, err)
		}
		if ok {
			matched++
		}
	}

	eval := Evaluation{MatchedCount: matched, Fraction: 1.0}
	if goal.Quantity != 0 {
		eval.Fraction = float64(matched) / float64(goal.Quantity)
	}
	eval.Satisfied = goal.Level != category.LevelTotal && !asOf.Before(goal.End) && matched >= goal.Quantity
	return eval, nil
}
