package store

import (
	"database/sql"
	"fmt"
	"strconv"

	"habitkit/internal/streak"
)

// Day-off persistence. Decisions (quota, dedup, purge) are made by the pure
// streak.Ledger; this file loads it, applies the mutation and writes the
// delta back inside one transaction. The boolean result is the domain
// outcome, the error is storage failure.

func loadLedger(tx *sql.Tx) (*streak.Ledger, error) {
	var v string
	if err := tx.QueryRow(`SELECT value FROM settings WHERE key = 'day_off_limit'`).Scan(&v); err != nil {
		return nil, fmt.Errorf("load day-off limit: %w", err)
	}
	limit, err := strconv.Atoi(v)
	if err != nil {
		return nil, fmt.Errorf("day_off_limit %q: %w", v, err)
	}

	rows, err := tx.Query(`SELECT day FROM days_off`)
	if err != nil {
		return nil, fmt.Errorf("load day-off records: %w", err)
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
	return streak.NewLedger(limit, dates...), rows.Err()
}

// TakeDayOff records today as a day off. Reports false without mutating when
// today is already recorded or the monthly quota is spent.
func (s *Store) TakeDayOff(today string) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	l, err := loadLedger(tx)
	if err != nil {
		return false, err
	}
	if !l.Take(today) {
		return false, nil
	}
	if _, err := tx.Exec(`INSERT INTO days_off (day) VALUES (?)`, today); err != nil {
		return false, fmt.Errorf("insert day off: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("commit: %w", err)
	}
	return true, nil
}

// UndoDayOff removes today's day-off record and reports whether a removal
// occurred.
func (s *Store) UndoDayOff(today string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM days_off WHERE day = ?`, today)
	if err != nil {
		return false, fmt.Errorf("undo day off: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (s *Store) CanTakeDayOff(today string) (bool, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return false, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	l, err := loadLedger(tx)
	if err != nil {
		return false, err
	}
	return l.CanTake(today), nil
}

func (s *Store) IsDayOff(day string) (bool, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM days_off WHERE day = ?`, day).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("is day off: %w", err)
	}
	return n > 0, nil
}

// DayOffStatus reports quota usage for the given month along with the
// recorded dates, for display.
func (s *Store) DayOffStatus(month string) (*DayOffStatus, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	l, err := loadLedger(tx)
	if err != nil {
		return nil, err
	}
	return &DayOffStatus{
		Used:  l.UsedIn(month),
		Limit: l.Limit,
		Dates: l.Dates(),
	}, nil
}

// PurgeStaleDayOffs drops records from months other than month and returns
// how many were removed. Runs once per store initialization; purged
// exemptions are permanently gone, so a gap evaluated later across the month
// boundary no longer sees them.
func (s *Store) PurgeStaleDayOffs(month string) (int, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	l, err := loadLedger(tx)
	if err != nil {
		return 0, err
	}
	removed := l.Purge(month)
	for _, d := range removed {
		if _, err := tx.Exec(`DELETE FROM days_off WHERE day = ?`, d); err != nil {
			return 0, fmt.Errorf("purge day off %s: %w", d, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return len(removed), nil
}

// SetDayOffLimit replaces the monthly quota. Already-taken day-offs stay
// valid even when the new limit is below the used count; the settings view
// shows a warning instead of enforcing.
func (s *Store) SetDayOffLimit(limit int) error {
	if limit < 0 {
		return fmt.Errorf("%w: day-off limit must be non-negative", ErrInvalidInput)
	}
	return s.SetSetting("day_off_limit", strconv.Itoa(limit))
}

func (s *Store) DayOffLimit() (int, error) {
	v, err := s.GetSetting("day_off_limit")
	if err != nil {
		return 0, err
	}
	limit, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("day_off_limit %q: %w", v, err)
	}
	return limit, nil
}
