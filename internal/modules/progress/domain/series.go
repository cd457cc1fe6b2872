package domain

import (
	"fmt"
	"sort"
	"time"

	"momentum/internal/platform/category"
	apperrors "momentum/internal/platform/errors"
)

// DateRange is an inclusive span of calendar days.
type DateRange struct {
	From time.Time
	To   time.Time
}

func NewDateRange(from, to time.Time) (DateRange, error) {
	if to.Before(from) {
		return DateRange{}, fmt.Errorf("%w: range ends %s before it starts %s", apperrors.ErrInvalidInput, to.Format("2006-01-02"), from.Format("2006-01-02"))
	}
	return DateRange{From: from, To: to}, nil
}

// Days lists every calendar day from From to To.
func (r DateRange) Days() []time.Time {
	if r.To.Before(r.From) {
		return nil
	}
	var days []time.Time
	for d := r.From; !d.After(r.To); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

type SessionPoint struct {
	Date    time.Time
	Subject category.Subject
}

// GoalPoint is an evaluated goal as the series sees it.
type GoalPoint struct {
	ID         int
	End        time.Time
	Level      category.Level
	Identifier string
	Satisfied  bool
}

// MatchedBy reports whether the goal belongs to sel. The total selector takes every
// goal; any other takes goals defined at exactly its level and name.
func (g GoalPoint) MatchedBy(sel category.Selector) bool {
	if sel.Level == category.LevelTotal {
		return true
	}
	return g.Level == sel.Level && g.Identifier == sel.Name
}

type GoalCounts struct {
	Total        []int
	Satisfied    []int
	NotSatisfied []int
	Fraction     []float64
}

// cumulative counts, for each day, how many of dates fall on or before it.
func cumulative(dates []time.Time, days []time.Time) []int {
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	out := make([]int, len(days))
	n := 0
	for i, d := range days {
		for n < len(dates) && !dates[n].After(d) {
			n++
		}
		out[i] = n
	}
	return out
}

// SessionSeries gives, per selector and per day of r, the number of matching sessions
// dated on or before that day. Sessions before r.From are included in every count.
func SessionSeries(selectors []category.Selector, points []SessionPoint, r DateRange) (map[category.Selector][]int, error) {
	days := r.Days()
	out := make(map[category.Selector][]int, len(selectors))
	for _, sel := range selectors {
		var dates []time.Time
		for _, p := range points {
			ok, err := sel.Matches(p.Subject)
			if err != nil {
				return nil, fmt.Errorf("selector %s: %w", sel, err)
			}
			if ok {
				dates = append(dates, p.Date)
			}
		}
		out[sel] = cumulative(dates, days)
	}
	return out, nil
}

// GoalSeries gives, per selector and per day of r, how many matching goals have ended
// on or before that day and how many of those were satisfied. With no concluded goals
// the fraction is 1.
func GoalSeries(selectors []category.Selector, goals []GoalPoint, r DateRange) map[category.Selector]GoalCounts {
	days := r.Days()
	out := make(map[category.Selector]GoalCounts, len(selectors))
	for _, sel := range selectors {
		var all, satisfied []time.Time
		for _, g := range goals {
			if !g.MatchedBy(sel) {
				continue
			}
			all = append(all, g.End)
			if g.Satisfied {
				satisfied = append(satisfied, g.End)
			}
		}
		counts := GoalCounts{
			Total:        cumulative(all, days),
			Satisfied:    cumulative(satisfied, days),
			NotSatisfied: make([]int, len(days)),
			Fraction:     make([]float64, len(days)),
		}
		for i := range days {
			counts.NotSatisfied[i] = counts.Total[i] - counts.Satisfied[i]
			counts.Fraction[i] = 1.0
			if counts.Total[i] > 0 {
				counts.Fraction[i] = float64(counts.Satisfied[i]) / float64(counts.Total[i])
			}
		}
		out[sel] = counts
	}
	return out
}

// TargetPace spreads a yearly session target evenly: day i of the range (from 0) is
// expected to have reached yearly*i/365.
func TargetPace(yearly float64, days int) []float64 {
	out := make([]float64, days)
	for i := range out {
		out[i] = yearly * float64(i) / 365
	}
	return out
}
