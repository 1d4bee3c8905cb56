package streak

import (
	"fmt"
	"time"
)

// DateLayout is the canonical calendar-date form used everywhere in habitkit:
// database columns, the day-off ledger and the completion log all store
// dates as YYYY-MM-DD strings.
const DateLayout = "2006-01-02"

func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q: %w", s, err)
	}
	return t, nil
}

func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Today returns the current local calendar date in canonical form.
func Today() string {
	return FormatDate(time.Now())
}

// DaysBetween returns the whole-day count from one calendar date to another.
// Both arguments must be canonical dates, so time of day never enters the
// calculation. The result is negative when to precedes from.
func DaysBetween(from, to string) (int, error) {
	f, err := ParseDate(from)
	if err != nil {
		return 0, err
	}
	t, err := ParseDate(to)
	if err != nil {
		return 0, err
	}
	return int(t.Sub(f).Hours() / 24), nil
}

// MonthOf returns the YYYY-MM prefix of a canonical date.
func MonthOf(date string) string {
	if len(date) < 7 {
		return date
	}
	return date[:7]
}
