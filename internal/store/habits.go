package store

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"
)

var clockRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

func validateHabit(title, scheduledAt string) error {
	if strings.TrimSpace(title) == "" {
		return fmt.Errorf("%w: habit title is required", ErrInvalidInput)
	}
	if !clockRe.MatchString(scheduledAt) {
		return fmt.Errorf("%w: scheduled time %q is not HH:MM", ErrInvalidInput, scheduledAt)
	}
	return nil
}

func (s *Store) AddHabit(routineID, title, scheduledAt string) (*Habit, error) {
	if err := validateHabit(title, scheduledAt); err != nil {
		return nil, err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO habits (routine_id, title, scheduled_at, position, created_at, updated_at)
		 VALUES (?, ?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM habits WHERE routine_id = ?), ?, ?)`,
		routineID, strings.TrimSpace(title), scheduledAt, routineID, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert habit: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetHabit(id)
}

const habitColumns = `id, routine_id, title, scheduled_at, position, streak, last_completed, created_at, updated_at`

func scanHabit(row interface{ Scan(...any) error }) (*Habit, error) {
	h := &Habit{}
	var createdAt, updatedAt string
	err := row.Scan(&h.ID, &h.RoutineID, &h.Title, &h.ScheduledAt, &h.Position,
		&h.Streak, &h.LastCompleted, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	h.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	h.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return h, nil
}

func (s *Store) GetHabit(id int64) (*Habit, error) {
	h, err := scanHabit(s.db.QueryRow(
		`SELECT `+habitColumns+` FROM habits WHERE id = ?`, id,
	))
	if err != nil {
		return nil, fmt.Errorf("get habit %d: %w", id, err)
	}
	return h, nil
}

func (s *Store) ListHabits(routineID string) ([]Habit, error) {
	rows, err := s.db.Query(
		`SELECT `+habitColumns+` FROM habits WHERE routine_id = ? ORDER BY position, id`, routineID,
	)
	if err != nil {
		return nil, fmt.Errorf("list habits: %w", err)
	}
	defer rows.Close()

	var habits []Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		habits = append(habits, *h)
	}
	return habits, rows.Err()
}

// ListAllHabits returns every habit joined with its routine name, ordered the
// way the daily checklist shows them: by routine, then scheduled time.
func (s *Store) ListAllHabits() ([]HabitDetail, error) {
	rows, err := s.db.Query(`
		SELECT h.id, h.routine_id, h.title, h.scheduled_at, h.position, h.streak,
		       h.last_completed, h.created_at, h.updated_at, r.name
		FROM habits h
		JOIN routines r ON r.id = h.routine_id
		ORDER BY r.position, r.name, h.scheduled_at, h.position`)
	if err != nil {
		return nil, fmt.Errorf("list all habits: %w", err)
	}
	defer rows.Close()

	var habits []HabitDetail
	for rows.Next() {
		var d HabitDetail
		var createdAt, updatedAt string
		if err := rows.Scan(&d.ID, &d.RoutineID, &d.Title, &d.ScheduledAt, &d.Position,
			&d.Streak, &d.LastCompleted, &createdAt, &updatedAt, &d.RoutineName); err != nil {
			return nil, err
		}
		d.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		d.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		habits = append(habits, d)
	}
	return habits, rows.Err()
}

func (s *Store) UpdateHabit(id int64, title, scheduledAt string) error {
	if err := validateHabit(title, scheduledAt); err != nil {
		return err
	}
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`UPDATE habits SET title = ?, scheduled_at = ?, updated_at = ? WHERE id = ?`,
		strings.TrimSpace(title), scheduledAt, now, id,
	)
	if err != nil {
		return fmt.Errorf("update habit: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update habit %d: %w", id, sql.ErrNoRows)
	}
	return nil
}

// DeleteHabit removes the habit and, via cascade, its completion log.
func (s *Store) DeleteHabit(id int64) error {
	_, err := s.db.Exec(`DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete habit: %w", err)
	}
	return nil
}
