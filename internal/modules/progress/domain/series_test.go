package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"momentum/internal/modules/progress/domain"
	"momentum/internal/platform/category"
	apperrors "momentum/internal/platform/errors"
)

func day(m time.Month, d int) time.Time {
	return time.Date(2025, m, d, 0, 0, 0, 0, time.UTC)
}

func sel(name string, level category.Level) category.Selector {
	return category.Selector{Name: name, Level: level}
}

func point(d time.Time, group, name string, keywords ...string) domain.SessionPoint {
	return domain.SessionPoint{Date: d, Subject: category.Subject{Group: group, Name: name, Keywords: keywords}}
}

func TestDateRangeDays(t *testing.T) {
	t.Parallel()
	r, err := domain.NewDateRange(day(2, 27), day(3, 2))
	require.NoError(t, err)
	days := r.Days()
	require.Len(t, days, 4)
	assert.True(t, days[2].Equal(day(3, 1)))

	single, err := domain.NewDateRange(day(1, 1), day(1, 1))
	require.NoError(t, err)
	assert.Len(t, single.Days(), 1)

	_, err = domain.NewDateRange(day(1, 2), day(1, 1))
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
}

func TestSessionSeriesCumulativePerLevel(t *testing.T) {
	t.Parallel()
	points := []domain.SessionPoint{
		point(day(1, 3), "Exercise", "Climbing", "Bouldering"),
		point(day(12, 20), "Exercise", "Climbing", "Lead climbing"),
		point(day(1, 1), "Exercise", "Running"),
		point(day(1, 2), "Culture", "Reading"),
		point(day(1, 3), "Exercise", "Climbing", "Bouldering"),
	}
	r, _ := domain.NewDateRange(day(1, 1), day(1, 4))
	selectors := []category.Selector{
		sel("Total", category.LevelTotal),
		sel("Exercise", category.LevelGroup),
		sel("Climbing", category.LevelName),
		sel("Bouldering", category.LevelKeyword),
	}
	series, err := domain.SessionSeries(selectors, points, r)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2, 4, 4}, series[selectors[0]])
	assert.Equal(t, []int{1, 1, 3, 3}, series[selectors[1]])
	assert.Equal(t, []int{0, 0, 2, 2}, series[selectors[2]])
	assert.Equal(t, []int{0, 0, 2, 2}, series[selectors[3]])
}

func TestSessionSeriesCountsSessionsBeforeRange(t *testing.T) {
	t.Parallel()
	points := []domain.SessionPoint{point(day(1, 1), "Exercise", "Running"), point(day(1, 10), "Exercise", "Running")}
	r, _ := domain.NewDateRange(day(1, 5), day(1, 6))
	series, err := domain.SessionSeries([]category.Selector{sel("Running", category.LevelName)}, points, r)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1}, series[sel("Running", category.LevelName)])
}

func TestSessionSeriesNonDecreasing(t *testing.T) {
	t.Parallel()
	var points []domain.SessionPoint
	for i := 0; i < 40; i++ {
		points = append(points, point(day(1, 1).AddDate(0, 0, (i*7)%31), "Exercise", "Running"))
	}
	r, _ := domain.NewDateRange(day(1, 1), day(2, 15))
	selectors := []category.Selector{sel("Total", category.LevelTotal), sel("Running", category.LevelName)}
	series, err := domain.SessionSeries(selectors, points, r)
	require.NoError(t, err)
	for _, s := range selectors {
		counts := series[s]
		for i := 1; i < len(counts); i++ {
			require.GreaterOrEqual(t, counts[i], counts[i-1], "selector %s day %d", s, i)
		}
		assert.Equal(t, 40, counts[len(counts)-1])
	}
}

func TestSessionSeriesRejectsUnknownLevel(t *testing.T) {
	t.Parallel()
	r, _ := domain.NewDateRange(day(1, 1), day(1, 2))
	_, err := domain.SessionSeries([]category.Selector{sel("x", 5)}, []domain.SessionPoint{point(day(1, 1), "a", "b")}, r)
	assert.ErrorIs(t, err, apperrors.ErrInvalidGoalDefinition)
}

func TestGoalSeries(t *testing.T) {
	t.Parallel()
	goals := []domain.GoalPoint{
		{ID: 1, End: day(1, 2), Level: category.LevelName, Identifier: "Reading", Satisfied: true},
		{ID: 2, End: day(1, 3), Level: category.LevelName, Identifier: "Reading", Satisfied: false},
		{ID: 3, End: day(1, 3), Level: category.LevelGroup, Identifier: "Culture", Satisfied: true},
		{ID: 4, End: day(1, 9), Level: category.LevelTotal, Satisfied: false},
	}
	r, _ := domain.NewDateRange(day(1, 1), day(1, 4))
	reading := sel("Reading", category.LevelName)
	culture := sel("Culture", category.LevelGroup)
	total := sel("Total", category.LevelTotal)
	series := domain.GoalSeries([]category.Selector{reading, culture, total}, goals, r)

	assert.Equal(t, []int{0, 1, 2, 2}, series[reading].Total)
	assert.Equal(t, []int{0, 1, 1, 1}, series[reading].Satisfied)
	assert.Equal(t, []int{0, 0, 1, 1}, series[reading].NotSatisfied)
	assert.Equal(t, []float64{1, 1, 0.5, 0.5}, series[reading].Fraction)

	assert.Equal(t, []int{0, 0, 1, 1}, series[culture].Total, "goals match on level and identifier, not hierarchy")
	assert.Equal(t, []int{0, 1, 3, 3}, series[total].Total, "goal 4 ends after the range")
}

func TestGoalSeriesFractionWithoutConcludedGoals(t *testing.T) {
	t.Parallel()
	r, _ := domain.NewDateRange(day(1, 1), day(1, 3))
	climbing := sel("Climbing", category.LevelName)
	series := domain.GoalSeries([]category.Selector{climbing}, nil, r)
	assert.Equal(t, []float64{1, 1, 1}, series[climbing].Fraction)
	assert.Equal(t, []int{0, 0, 0}, series[climbing].Total)
}

func TestTargetPace(t *testing.T) {
	t.Parallel()
	pace := domain.TargetPace(365, 3)
	assert.Equal(t, []float64{0, 1, 2}, pace)
	assert.InDelta(t, 85.0*100/365, domain.TargetPace(85, 101)[100], 1e-9)
}
