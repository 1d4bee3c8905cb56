package tui

import (
	"fmt"
	"time"

	"habitkit/internal/store"
)

// viewState represents the currently active view.
type viewState int

const (
	viewToday viewState = iota
	viewRoutines
	viewHistory
	viewNotes
	viewSettings
)

var viewNames = []string{"Today", "Routines", "History", "Notes", "Settings"}

// --- Messages ---

type habitToggledMsg struct {
	habit *store.Habit
}

type dayOffTakenMsg struct {
	ok bool
}

type dayOffUndoneMsg struct {
	ok bool
}

type routineChangedMsg struct{}

type statusMsg struct {
	text    string
	isError bool
}

type tickMsg time.Time

type exportDoneMsg struct {
	path string
}

// --- Helpers ---

// streakBadge renders a streak count the way every view shows it.
func streakBadge(streak int) string {
	if streak <= 0 {
		return ""
	}
	return fmt.Sprintf("🔥%d", streak)
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, word)
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
