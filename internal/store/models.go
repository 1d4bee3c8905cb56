package store

import (
	"errors"
	"time"
)

// ErrDuplicateName is returned when a routine name collides with an existing
// one, compared case-insensitively.
var ErrDuplicateName = errors.New("routine name already in use")

// ErrInvalidInput is returned when a required field is missing or malformed.
// Stored state is never touched in that case.
var ErrInvalidInput = errors.New("invalid input")

type Routine struct {
	ID        string
	Name      string
	Position  int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Habit is a single trackable action. Identity is the stable database id,
// never the position within its routine: completions survive reordering
// and deletion of sibling habits.
type Habit struct {
	ID            int64
	RoutineID     string
	Title         string
	ScheduledAt   string // "HH:MM"
	Position      int
	Streak        int
	LastCompleted string // canonical date, empty when never completed
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HabitDetail is a habit joined with its routine name, as the checklist and
// export views want it.
type HabitDetail struct {
	Habit
	RoutineName string
}

// CompletionDetail is one completion-log row joined with the names it
// belongs to.
type CompletionDetail struct {
	Day         string
	HabitID     int64
	HabitTitle  string
	RoutineID   string
	RoutineName string
}

// DayCount is the number of completions logged on one day.
type DayCount struct {
	Day   string
	Count int
}

// DayOffStatus summarizes the ledger for display.
type DayOffStatus struct {
	Used  int
	Limit int
	Dates []string
}

type Setting struct {
	Key   string
	Value string
}
