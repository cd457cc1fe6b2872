package domain

import (
	"fmt"
	"strings"
	"time"

	apperrors "momentum/internal/platform/errors"
)

type Period string

const (
	PeriodPast   Period = "past"
	PeriodActive Period = "active"
	PeriodFuture Period = "future"
)

func ParsePeriod(raw string) (Period, error) {
	switch p := Period(strings.ToLower(strings.TrimSpace(raw))); p {
	case PeriodPast, PeriodActive, PeriodFuture:
		return p, nil
	default:
		return "", fmt.Errorf("%w: period %q must be past, active or future", apperrors.ErrInvalidInput, raw)
	}
}

// Includes decides membership as of a date. The bounds overlap: a goal
// starting today is both active and future, one ending today is both past and active.
func (p Period) Includes(goal Goal, asOf time.Time) bool {
	switch p {
	case PeriodPast:
		return !asOf.Before(goal.End)
	case PeriodActive:
		return !asOf.Before(goal.Start) && !asOf.After(goal.End)
	case PeriodFuture:
		return !asOf.After(goal.Start)
	default:
		return false
	}
}
