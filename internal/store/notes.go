package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// Daily notes are keyed by canonical date. The free-form permanent note
// ("scratchpad") lives in the settings table instead.

// GetDailyNote returns the note for day, or "" when none exists.
func (s *Store) GetDailyNote(day string) (string, error) {
	var body string
	err := s.db.QueryRow(`SELECT body FROM notes WHERE day = ?`, day).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get note %s: %w", day, err)
	}
	return body, nil
}

// SetDailyNote upserts the note for day. An empty body deletes the row so
// blank notes never accumulate.
func (s *Store) SetDailyNote(day, body string) error {
	if body == "" {
		_, err := s.db.Exec(`DELETE FROM notes WHERE day = ?`, day)
		if err != nil {
			return fmt.Errorf("delete note %s: %w", day, err)
		}
		return nil
	}
	_, err := s.db.Exec(
		`INSERT INTO notes (day, body) VALUES (?, ?) ON CONFLICT(day) DO UPDATE SET body = excluded.body`,
		day, body,
	)
	if err != nil {
		return fmt.Errorf("set note %s: %w", day, err)
	}
	return nil
}

// NoteDays lists the dates that have a note, newest first.
func (s *Store) NoteDays() ([]string, error) {
	rows, err := s.db.Query(`SELECT day FROM notes ORDER BY day DESC`)
	if err != nil {
		return nil, fmt.Errorf("list note days: %w", err)
	}
	defer rows.Close()

	var days []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, err
		}
		days = append(days, d)
	}
	return days, rows.Err()
}

func (s *Store) Scratchpad() (string, error) {
	return s.GetSetting("scratchpad")
}

func (s *Store) SetScratchpad(body string) error {
	return s.SetSetting("scratchpad", body)
}
