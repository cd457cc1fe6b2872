package clock

import (
	"strings"
	"time"
)

// DateLayout is the ISO calendar date format used at every store boundary.
const DateLayout = "2006-01-02"

// Clock abstracts time to keep usecases deterministic in tests.
type Clock interface {
	Now() time.Time
}

type SystemClock struct{}

func (SystemClock) Now() time.Time {
	return time.Now()
}

// Fixed always reports the same instant.
type Fixed time.Time

func (f Fixed) Now() time.Time {
	return time.Time(f)
}

// Day strips the time of day, keeping the calendar date of t in its own location.
// The result is midnight UTC so dates from different sources compare with Equal/Before.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Today is the current calendar date according to c.
func Today(c Clock) time.Time {
	return Day(c.Now())
}

// ParseDate parses an ISO calendar date. Surrounding whitespace is ignored.
func ParseDate(raw string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(raw))
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

// FormatDate renders a calendar date in ISO form.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}
