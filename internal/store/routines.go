package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

func (s *Store) CreateRoutine(name string) (*Routine, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: routine name is required", ErrInvalidInput)
	}
	taken, err := s.routineNameTaken(name, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	id := uuid.NewString()
	now := time.Now().UTC().Format(time.RFC3339)
	_, err = s.db.Exec(
		`INSERT INTO routines (id, name, position, created_at, updated_at)
		 VALUES (?, ?, (SELECT COALESCE(MAX(position), -1) + 1 FROM routines), ?, ?)`,
		id, name, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert routine: %w", err)
	}
	return s.GetRoutine(id)
}

// routineNameTaken checks the normalized unique key before any mutation.
// The COLLATE NOCASE unique index backstops it.
func (s *Store) routineNameTaken(name, excludeID string) (bool, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM routines WHERE name = ? COLLATE NOCASE AND id != ?`,
		name, excludeID,
	).Scan(&n)
	if err != nil {
		return false, fmt.Errorf("check routine name: %w", err)
	}
	return n > 0, nil
}

func (s *Store) GetRoutine(id string) (*Routine, error) {
	r := &Routine{}
	var createdAt, updatedAt string
	err := s.db.QueryRow(
		`SELECT id, name, position, created_at, updated_at FROM routines WHERE id = ?`, id,
	).Scan(&r.ID, &r.Name, &r.Position, &createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("get routine %s: %w", id, err)
	}
	r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return r, nil
}

func (s *Store) ListRoutines() ([]Routine, error) {
	rows, err := s.db.Query(
		`SELECT id, name, position, created_at, updated_at FROM routines ORDER BY position, name`,
	)
	if err != nil {
		return nil, fmt.Errorf("list routines: %w", err)
	}
	defer rows.Close()

	var routines []Routine
	for rows.Next() {
		var r Routine
		var createdAt, updatedAt string
		if err := rows.Scan(&r.ID, &r.Name, &r.Position, &createdAt, &updatedAt); err != nil {
			return nil, err
		}
		r.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		r.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
		routines = append(routines, r)
	}
	return routines, rows.Err()
}

func (s *Store) RenameRoutine(id, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: routine name is required", ErrInvalidInput)
	}
	taken, err := s.routineNameTaken(name, id)
	if err != nil {
		return err
	}
	if taken {
		return fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`UPDATE routines SET name = ?, updated_at = ? WHERE id = ?`, name, now, id,
	)
	if err != nil {
		return fmt.Errorf("rename routine: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("rename routine %s: %w", id, sql.ErrNoRows)
	}
	return nil
}

// DeleteRoutine removes the routine; its habits and their completion-log
// entries go with it via ON DELETE CASCADE.
func (s *Store) DeleteRoutine(id string) error {
	_, err := s.db.Exec(`DELETE FROM routines WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete routine: %w", err)
	}
	return nil
}
