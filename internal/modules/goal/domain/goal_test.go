package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum/internal/modules/goal/domain"
	"momentum/internal/platform/category"
	apperrors "momentum/internal/platform/errors"
)

func day(d int) time.Time {
	return time.Date(2025, 1, d, 0, 0, 0, 0, time.UTC)
}

func reading(d int) domain.Record {
	return domain.Record{Date: day(d), Subject: category.Subject{Group: "Culture", Name: "Reading", Keywords: []string{"Fiction"}}}
}

func readingGoal() domain.Goal {
	return domain.Goal{
		ID: 1, Start: day(6), End: day(12), Label: "Read twice",
		Level: category.LevelName, Identifier: "Reading", Condition: domain.ConditionCount, Quantity: 2,
	}
}

func TestEvaluateSatisfiedAfterWindow(t *testing.T) {
	t.Parallel()
	eval, err := domain.Evaluate(readingGoal(), []domain.Record{reading(7), reading(9)}, day(13))
	require.NoError(t, err)
	assert.Equal(t, 2, eval.MatchedCount)
	assert.True(t, eval.Satisfied)
	assert.InDelta(t, 1.0, eval.Fraction, 1e-9)
}

func TestEvaluateNotEnoughSessions(t *testing.T) {
	t.Parallel()
	eval, err := domain.Evaluate(readingGoal(), []domain.Record{reading(7)}, day(13))
	require.NoError(t, err)
	assert.Equal(t, 1, eval.MatchedCount)
	assert.False(t, eval.Satisfied)
	assert.InDelta(t, 0.5, eval.Fraction, 1e-9)
}

func TestEvaluateWindowStillOpen(t *testing.T) {
	t.Parallel()
	eval, err := domain.Evaluate(readingGoal(), []domain.Record{reading(7), reading(9)}, day(10))
	require.NoError(t, err)
	assert.Equal(t, 2, eval.MatchedCount)
	assert.False(t, eval.Satisfied, "a goal is only satisfied once its window has closed")

	onEnd, err := domain.Evaluate(readingGoal(), []domain.Record{reading(7), reading(9)}, day(12))
	require.NoError(t, err)
	assert.True(t, onEnd.Satisfied)
}

func TestEvaluateWindowBoundsInclusive(t *testing.T) {
	t.Parallel()
	records := []domain.Record{reading(5), reading(6), reading(12), reading(13)}
	eval, err := domain.Evaluate(readingGoal(), records, day(20))
	require.NoError(t, err)
	assert.Equal(t, 2, eval.MatchedCount)
}

func TestEvaluateLevels(t *testing.T) {
	t.Parallel()
	climbing := domain.Record{Date: day(8), Subject: category.Subject{Group: "Exercise", Name: "Climbing", Keywords: []string{"Bouldering"}}}
	records := []domain.Record{reading(7), climbing}
	tests := []struct {
		name       string
		level      category.Level
		identifier string
		want       int
	}{
		{name: "group", level: category.LevelGroup, identifier: "Exercise", want: 1},
		{name: "activity", level: category.LevelName, identifier: "Reading", want: 1},
		{name: "keyword", level: category.LevelKeyword, identifier: "Bouldering", want: 1},
		{name: "keyword miss", level: category.LevelKeyword, identifier: "Skate", want: 0},
	}
	for _, tt := range tests {
		g := readingGoal()
		g.Level, g.Identifier = tt.level, tt.identifier
		eval, err := domain.Evaluate(g, records, day(20))
		require.NoError(t, err, tt.name)
		assert.Equal(t, tt.want, eval.MatchedCount, tt.name)
	}
}

func TestEvaluateTotalLevelNeverSatisfied(t *testing.T) {
	t.Parallel()
	g := readingGoal()
	g.Level, g.Identifier, g.Quantity = category.LevelTotal, "", 1
	eval, err := domain.Evaluate(g, []domain.Record{reading(7), reading(8)}, day(20))
	require.NoError(t, err)
	assert.Equal(t, 2, eval.MatchedCount)
	assert.False(t, eval.Satisfied)
	assert.InDelta(t, 2.0, eval.Fraction, 1e-9, "fraction is not clamped")
}

func TestEvaluateZeroQuantity(t *testing.T) {
	t.Parallel()
	g := readingGoal()
	g.Quantity = 0
	eval, err := domain.Evaluate(g, nil, day(20))
	require.NoError(t, err)
	assert.InDelta(t, 1.0, eval.Fraction, 1e-9)
	assert.True(t, eval.Satisfied)
}

func TestEvaluateErrors(t *testing.T) {
	t.Parallel()
	unsupported := readingGoal()
	unsupported.Condition = "Duration"
	_, err := domain.Evaluate(unsupported, nil, day(20))
	require.ErrorIs(t, err, apperrors.ErrUnsupportedConditionType)

	badLevel := readingGoal()
	badLevel.Level = 7
	_, err = domain.Evaluate(badLevel, nil, day(20))
	require.ErrorIs(t, err, apperrors.ErrInvalidGoalDefinition)

	reversed := readingGoal()
	reversed.Start, reversed.End = day(12), day(6)
	_, err = domain.Evaluate(reversed, nil, day(20))
	require.ErrorIs(t, err, apperrors.ErrInvalidGoalDefinition)

	blank := readingGoal()
	blank.Identifier = "  "
	_, err = domain.Evaluate(blank, []domain.Record{reading(7), reading(9)}, day(13))
	require.ErrorIs(t, err, apperrors.ErrInvalidGoalDefinition)

	total := readingGoal()
	total.Level, total.Identifier = category.LevelTotal, ""
	_, err = domain.Evaluate(total, nil, day(13))
	require.NoError(t, err, "the total level ignores the identifier")
}

func TestEvaluateIsDeterministic(t *testing.T) {
	t.Parallel()
	records := []domain.Record{reading(7), reading(9)}
	first, err := domain.Evaluate(readingGoal(), records, day(13))
	require.NoError(t, err)
	second, err := domain.Evaluate(readingGoal(), records, day(13))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPeriodIncludesOverlapsOnBoundaries(t *testing.T) {
	t.Parallel()
	g := readingGoal()
	assert.True(t, domain.PeriodActive.Includes(g, day(6)))
	assert.True(t, domain.PeriodFuture.Includes(g, day(6)))
	assert.False(t, domain.PeriodPast.Includes(g, day(6)))

	assert.True(t, domain.PeriodActive.Includes(g, day(12)))
	assert.True(t, domain.PeriodPast.Includes(g, day(12)))
	assert.False(t, domain.PeriodFuture.Includes(g, day(12)))

	assert.True(t, domain.PeriodFuture.Includes(g, day(1)))
	assert.True(t, domain.PeriodPast.Includes(g, day(30)))
	assert.False(t, domain.PeriodActive.Includes(g, day(30)))
}

func TestParsePeriod(t *testing.T) {
	t.Parallel()
	p, err := domain.ParsePeriod(" Active ")
	require.NoError(t, err)
	assert.Equal(t, domain.PeriodActive, p)
	_, err = domain.ParsePeriod("someday")
	require.ErrorIs(t, err, apperrors.ErrInvalidInput)
}
