package streak

import "errors"

// ErrBackdated is returned when a completion date precedes the habit's
// recorded last completion. The caller decides how to surface it; the habit
// row is never silently reset.
var ErrBackdated = errors.New("completion date precedes last completion")

// DayOffChecker reports whether a calendar date is exempted from
// streak-breaking. *Ledger satisfies it.
type DayOffChecker interface {
	IsDayOff(date string) bool
}

// Result is the streak state produced by Advance or Retreat. Changed is
// false when the operation was an idempotent no-op.
type Result struct {
	Streak        int
	LastCompleted string
	Changed       bool
}

// Advance computes a habit's new streak when it is marked complete on today.
//
//   - Completing twice on the same date is a no-op.
//   - A habit never completed before starts at 1.
//   - A one-day gap extends the streak.
//   - A longer gap extends the streak by exactly one iff every date strictly
//     between the last completion and today is a day off; otherwise the
//     streak resets to 1.
//   - A completion dated before the last one is rejected with ErrBackdated.
func Advance(streak int, lastCompleted, today string, offs DayOffChecker) (Result, error) {
	if _, err := ParseDate(today); err != nil {
		return Result{}, err
	}
	if lastCompleted == today {
		return Result{Streak: streak, LastCompleted: lastCompleted}, nil
	}
	if lastCompleted == "" {
		return Result{Streak: 1, LastCompleted: today, Changed: true}, nil
	}

	gap, err := DaysBetween(lastCompleted, today)
	if err != nil {
		return Result{}, err
	}
	if gap < 1 {
		return Result{}, ErrBackdated
	}
	if gap == 1 || bridged(lastCompleted, today, offs) {
		return Result{Streak: streak + 1, LastCompleted: today, Changed: true}, nil
	}
	return Result{Streak: 1, LastCompleted: today, Changed: true}, nil
}

// bridged reports whether every date strictly between from and to is a day
// off. Both endpoints are excluded: they are completion days, not gap days.
func bridged(from, to string, offs DayOffChecker) bool {
	f, _ := ParseDate(from)
	t, _ := ParseDate(to)
	for d := f.AddDate(0, 0, 1); d.Before(t); d = d.AddDate(0, 0, 1) {
		if offs == nil || !offs.IsDayOff(FormatDate(d)) {
			return false
		}
	}
	return true
}

// Retreat is the shallow one-step reversal of Advance for a habit completed
// today: it clears the completion date and decrements the streak, floored at
// zero. It cannot reconstruct an increment that bridged a day-off gap, so
// repeated complete/uncomplete cycling across such a gap erodes the stored
// streak below its true historical count. Accepted trade-off; recovering the
// exact value would require replaying the full completion history.
func Retreat(streak int, lastCompleted, today string) Result {
	if lastCompleted != today {
		return Result{Streak: streak, LastCompleted: lastCompleted}
	}
	s := streak - 1
	if s < 0 {
		s = 0
	}
	return Result{Streak: s, LastCompleted: "", Changed: true}
}
