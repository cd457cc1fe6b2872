package domain

import (
	"fmt"
	"strings"
	"time"

	"momentum/internal/platform/category"
	apperrors "momentum/internal/platform/errors"
)

const SchemaVersion = 1

// Session is one logged activity on a calendar day.
type Session struct {
	ID       int
	Date     time.Time
	Group    string
	Name     string
	Keywords []string
	Notes    string
	Duration *float64
}

func (s Session) Subject() category.Subject {
	return category.Subject{Group: s.Group, Name: s.Name, Keywords: s.Keywords}
}

func (s Session) Validate() error {
	if s.ID <= 0 {
		return fmt.Errorf("%w: session id must be positive", apperrors.ErrValidation)
	}
	if s.Date.IsZero() {
		return fmt.Errorf("%w: session date is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(s.Group) == "" {
		return fmt.Errorf("%w: activity group is required", apperrors.ErrValidation)
	}
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("%w: activity name is required", apperrors.ErrValidation)
	}
	if s.Duration != nil && *s.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative", apperrors.ErrValidation)
	}
	return nil
}

// NormalizeKeywords trims entries and drops blanks and repeats, keeping first-seen order.
func NormalizeKeywords(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, kw := range in {
		kw = strings.TrimSpace(kw)
		if kw == "" {
			continue
		}
		if _, ok := seen[kw]; ok {
			continue
		}
		seen[kw] = struct{}{}
		out = append(out, kw)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
