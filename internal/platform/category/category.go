// Package category holds the hierarchy used to file sessions: a grand total, the
// activity group, the activity itself, and highlight keywords.
package category

import (
	"fmt"
	"strconv"
	"strings"

	apperrors "momentum/internal/platform/errors"
)

type Level int

const (
	LevelTotal   Level = 0
	LevelGroup   Level = 1
	LevelName    Level = 2
	LevelKeyword Level = 3
)

func (l Level) Validate() error {
	switch l {
	case LevelTotal, LevelGroup, LevelName, LevelKeyword:
		return nil
	default:
		return fmt.Errorf("%w: unknown hierarchy level %d", apperrors.ErrInvalidGoalDefinition, int(l))
	}
}

func (l Level) String() string {
	switch l {
	case LevelTotal:
		return "total"
	case LevelGroup:
		return "group"
	case LevelName:
		return "activity"
	case LevelKeyword:
		return "keyword"
	default:
		return "level(" + strconv.Itoa(int(l)) + ")"
	}
}

// Subject is the part of a session that category matching looks at.
type Subject struct {
	Group    string
	Name     string
	Keywords []string
}

// Match reports whether subject counts toward (level, identifier).
// The identifier is ignored at the total level.
func Match(subject Subject, level Level, identifier string) (bool, error) {
	switch level {
	case LevelTotal:
		return true, nil
	case LevelGroup:
		return subject.Group == identifier, nil
	case LevelName:
		return subject.Name == identifier, nil
	case LevelKeyword:
		for _, kw := range subject.Keywords {
			if kw == identifier {
				return true, nil
			}
		}
		return false, nil
	default:
		return false, level.Validate()
	}
}

// Selector names one category at one level, e.g. {Climbing, 2}.
type Selector struct {
	Name  string
	Level Level
}

func NewSelector(name string, level Level) (Selector, error) {
	if err := level.Validate(); err != nil {
		return Selector{}, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return Selector{}, fmt.Errorf("%w: selector name is required", apperrors.ErrInvalidInput)
	}
	return Selector{Name: name, Level: level}, nil
}

// String is the flat form: the name followed by a single level digit ("Climbing2").
func (s Selector) String() string {
	return s.Name + strconv.Itoa(int(s.Level))
}

func (s Selector) Matches(subject Subject) (bool, error) {
	return Match(subject, s.Level, s.Name)
}

// ParseSelector reverses Selector.String.
func ParseSelector(raw string) (Selector, error) {
	raw = strings.TrimSpace(raw)
	if len(raw) < 2 {
		return Selector{}, fmt.Errorf("%w: selector %q needs a name and a level digit", apperrors.ErrInvalidInput, raw)
	}
	digit := raw[len(raw)-1]
	if digit < '0' || digit > '9' {
		return Selector{}, fmt.Errorf("%w: selector %q must end with a level digit", apperrors.ErrInvalidInput, raw)
	}
	return NewSelector(raw[:len(raw)-1], Level(digit-'0'))
}

// ParseSelectors parses every entry, failing on the first bad one.
func ParseSelectors(raw []string) ([]Selector, error) {
	out := make([]Selector, 0, len(raw))
	for _, item := range raw {
		sel, err := ParseSelector(item)
		if err != nil {
			return nil, err
		}
		out = append(out, sel)
	}
	return out, nil
}
