package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"habitkit/internal/store"
	"habitkit/internal/streak"
)

// todayModel is the daily checklist: every habit across all routines, with
// completion toggles and the day-off controls.
type todayModel struct {
	store  *store.Store
	width  int
	height int

	day       string // the date being displayed
	habits    []store.HabitDetail
	done      map[int64]bool
	status    *store.DayOffStatus
	todayOff  bool
	showQuote bool
	cursor    int
}

func newTodayModel(s *store.Store) todayModel {
	return todayModel{
		store: s,
		day:   streak.Today(),
		done:  map[int64]bool{},
	}
}

func (m todayModel) Init() tea.Cmd {
	return m.loadData()
}

func (m *todayModel) setSize(w, h int) {
	m.width = w
	m.height = h
}

type todayDataMsg struct {
	day       string
	habits    []store.HabitDetail
	done      map[int64]bool
	status    *store.DayOffStatus
	todayOff  bool
	showQuote bool
}

func (m todayModel) loadData() tea.Cmd {
	return func() tea.Msg {
		day := streak.Today()
		habits, _ := m.store.ListAllHabits()
		done, _ := m.store.CompletedOn(day)
		status, _ := m.store.DayOffStatus(streak.MonthOf(day))
		off, _ := m.store.IsDayOff(day)
		show, _ := m.store.GetSetting("show_quote")
		return todayDataMsg{
			day:       day,
			habits:    habits,
			done:      done,
			status:    status,
			todayOff:  off,
			showQuote: show == "true",
		}
	}
}

func (m todayModel) update(msg tea.Msg) (todayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case todayDataMsg:
		m.day = msg.day
		m.habits = msg.habits
		m.done = msg.done
		m.status = msg.status
		m.todayOff = msg.todayOff
		m.showQuote = msg.showQuote
		if m.cursor >= len(m.habits) {
			m.cursor = max(0, len(m.habits)-1)
		}
		return m, nil

	case tickMsg:
		// Refresh when the calendar date rolls over under us.
		if streak.Today() != m.day {
			return m, m.loadData()
		}
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Down):
			if m.cursor < len(m.habits)-1 {
				m.cursor++
			}
		case key.Matches(msg, keys.Toggle), key.Matches(msg, keys.Enter):
			if len(m.habits) > 0 {
				return m, m.toggle(m.habits[m.cursor].ID)
			}
		case key.Matches(msg, keys.DayOff):
			return m, m.takeDayOff()
		case key.Matches(msg, keys.Undo):
			return m, m.undoDayOff()
		}
	}
	return m, nil
}

func (m todayModel) toggle(habitID int64) tea.Cmd {
	day := m.day
	done := m.done[habitID]
	return func() tea.Msg {
		var h *store.Habit
		var err error
		if done {
			// Same-day reversal: rolls the streak back one step.
			h, err = m.store.UncompleteHabit(habitID, day, true)
		} else {
			h, err = m.store.CompleteHabit(habitID, day)
		}
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return habitToggledMsg{habit: h}
	}
}

func (m todayModel) takeDayOff() tea.Cmd {
	day := m.day
	return func() tea.Msg {
		ok, err := m.store.TakeDayOff(day)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return dayOffTakenMsg{ok: ok}
	}
}

func (m todayModel) undoDayOff() tea.Cmd {
	day := m.day
	return func() tea.Msg {
		ok, err := m.store.UndoDayOff(day)
		if err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		return dayOffUndoneMsg{ok: ok}
	}
}

func (m todayModel) view() string {
	w := m.width - 4

	date, _ := streak.ParseDate(m.day)
	title := titleStyle.Render("Today") + "  " + mutedStyle.Render(date.Format("Mon, Jan 02 2006"))

	var rows []string
	rows = append(rows, title)

	if m.todayOff {
		rows = append(rows, dayOffBannerStyle.Render("☂ Day off: streaks are safe"))
	}
	if m.status != nil {
		line := fmt.Sprintf("Day offs used this month: %d/%d", m.status.Used, m.status.Limit)
		if m.status.Used > m.status.Limit {
			rows = append(rows, warningStyle.Render(line+"  (over limit)"))
		} else {
			rows = append(rows, mutedStyle.Render(line))
		}
	}
	rows = append(rows, "")

	if m.showQuote {
		rows = append(rows, quoteStyle.Render(quoteOfDay(m.day)))
		rows = append(rows, "")
	}

	if len(m.habits) == 0 {
		rows = append(rows, mutedStyle.Render("No habits yet. Press 2 to go to Routines and create some."))
		return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
	}

	lastRoutine := ""
	for i, h := range m.habits {
		if h.RoutineName != lastRoutine {
			lastRoutine = h.RoutineName
			rows = append(rows, highlightStyle.Render(h.RoutineName))
		}

		cursor := "  "
		style := normalItemStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedItemStyle
		}

		check := "▢"
		title := h.Title
		if m.done[h.ID] {
			check = successStyle.Render("✓")
			title = doneStyle.Render(title)
		}

		badge := ""
		if b := streakBadge(h.Streak); b != "" {
			badge = "  " + streakStyle.Render(b)
		}

		rows = append(rows, style.Render(fmt.Sprintf("%s%s %s  ", cursor, check, h.ScheduledAt))+title+badge)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: toggle  o: day off  u: undo day off"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

// doneCount reports how many of today's habits are checked, for the footer.
func (m todayModel) doneCount() (done, total int) {
	for _, h := range m.habits {
		if m.done[h.ID] {
			done++
		}
	}
	return done, len(m.habits)
}
