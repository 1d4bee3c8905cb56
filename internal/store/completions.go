package store

import (
	"database/sql"
	"fmt"
	"time"

	"habitkit/internal/streak"
)

// CompleteHabit marks the habit complete on today (canonical date) and
// returns the updated habit. The habit row and the completion log move in
// one transaction: either both record the completion or neither does.
//
// Streak semantics live in streak.Advance; this method only supplies the
// day-off view of the gap and persists the outcome. A completion dated
// before the habit's last completion surfaces streak.ErrBackdated and leaves
// the database untouched.
func (s *Store) CompleteHabit(habitID int64, today string) (*Habit, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	h, err := scanHabit(tx.QueryRow(
		`SELECT `+habitColumns+` FROM habits WHERE id = ?`, habitID,
	))
	if err != nil {
		return nil, fmt.Errorf("complete habit %d: %w", habitID, err)
	}

	offs, err := gapDayOffs(tx, h.LastCompleted, today)
	if err != nil {
		return nil, err
	}
	res, err := streak.Advance(h.Streak, h.LastCompleted, today, offs)
	if err != nil {
		return nil, err
	}

	if res.Changed {
		now := time.Now().UTC().Format(time.RFC3339)
		if _, err := tx.Exec(
			`UPDATE habits SET streak = ?, last_completed = ?, updated_at = ? WHERE id = ?`,
			res.Streak, res.LastCompleted, now, habitID,
		); err != nil {
			return nil, fmt.Errorf("update habit streak: %w", err)
		}
	}

	// Set semantics: logging the same habit/day pair twice is a no-op.
	if _, err := tx.Exec(
		`INSERT OR IGNORE INTO completions (habit_id, day) VALUES (?, ?)`, habitID, today,
	); err != nil {
		return nil, fmt.Errorf("log completion: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetHabit(habitID)
}

// gapDayOffs loads the exempted dates strictly between two completions. For
// a first completion or a same-day repeat there is no gap to inspect.
func gapDayOffs(tx *sql.Tx, lastCompleted, today string) (*streak.Ledger, error) {
	if lastCompleted == "" || lastCompleted >= today {
		return streak.NewLedger(0), nil
	}
	rows, err := tx.Query(
		`SELECT day FROM days_off WHERE day > ? AND day < ?`, lastCompleted, today,
	)
	if err != nil {
		return nil, fmt.Errorf("load gap day-offs: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		dates = append(dates, d)
	}
	return streak.NewLedger(0, dates...), rows.Err()
}

// UncompleteHabit removes today's completion-log entry for the habit. When
// sameDayOnly is set and the habit was last completed today, the streak is
// also rolled back one step (streak.Retreat, a shallow reversal). With
// sameDayOnly false only the log entry goes, which is what historical
// corrections want.
func (s *Store) UncompleteHabit(habitID int64, today string, sameDayOnly bool) (*Habit, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(
		`DELETE FROM completions WHERE habit_id = ? AND day = ?`, habitID, today,
	); err != nil {
		return nil, fmt.Errorf("remove completion: %w", err)
	}

	if sameDayOnly {
		h, err := scanHabit(tx.QueryRow(
			`SELECT `+habitColumns+` FROM habits WHERE id = ?`, habitID,
		))
		if err != nil {
			return nil, fmt.Errorf("uncomplete habit %d: %w", habitID, err)
		}
		if res := streak.Retreat(h.Streak, h.LastCompleted, today); res.Changed {
			now := time.Now().UTC().Format(time.RFC3339)
			if _, err := tx.Exec(
				`UPDATE habits SET streak = ?, last_completed = ?, updated_at = ? WHERE id = ?`,
				res.Streak, res.LastCompleted, now, habitID,
			); err != nil {
				return nil, fmt.Errorf("roll back habit streak: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return s.GetHabit(habitID)
}

// CompletedOn returns the ids of habits with a completion logged on day.
func (s *Store) CompletedOn(day string) (map[int64]bool, error) {
	rows, err := s.db.Query(`SELECT habit_id FROM completions WHERE day = ?`, day)
	if err != nil {
		return nil, fmt.Errorf("completions on %s: %w", day, err)
	}
	defer rows.Close()

	done := make(map[int64]bool)
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		done[id] = true
	}
	return done, rows.Err()
}

// CompletionsOn returns the completion log for one day with names resolved,
// for the history view.
func (s *Store) CompletionsOn(day string) ([]CompletionDetail, error) {
	return s.queryCompletions(`WHERE c.day = ?`, day)
}

// ListCompletions returns the full completion log, newest day first.
func (s *Store) ListCompletions() ([]CompletionDetail, error) {
	return s.queryCompletions(``)
}

func (s *Store) queryCompletions(where string, args ...any) ([]CompletionDetail, error) {
	rows, err := s.db.Query(`
		SELECT c.day, c.habit_id, h.title, r.id, r.name
		FROM completions c
		JOIN habits h ON h.id = c.habit_id
		JOIN routines r ON r.id = h.routine_id
		`+where+`
		ORDER BY c.day DESC, r.name, h.position`, args...)
	if err != nil {
		return nil, fmt.Errorf("query completions: %w", err)
	}
	defer rows.Close()

	var details []CompletionDetail
	for rows.Next() {
		var d CompletionDetail
		if err := rows.Scan(&d.Day, &d.HabitID, &d.HabitTitle, &d.RoutineID, &d.RoutineName); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// DailyCompletionCounts aggregates logged completions per day over
// [from, to), for the history chart.
func (s *Store) DailyCompletionCounts(from, to string) ([]DayCount, error) {
	rows, err := s.db.Query(`
		SELECT day, COUNT(*) FROM completions
		WHERE day >= ? AND day < ?
		GROUP BY day ORDER BY day`, from, to)
	if err != nil {
		return nil, fmt.Errorf("daily completion counts: %w", err)
	}
	defer rows.Close()

	var counts []DayCount
	for rows.Next() {
		var c DayCount
		if err := rows.Scan(&c.Day, &c.Count); err != nil {
			return nil, err
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}
