package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"habitkit/internal/store"
)

type routinesModel struct {
	store  *store.Store
	width  int
	height int

	routines      []store.Routine
	habits        []store.Habit
	cursor        int
	habitCursor   int
	viewingHabits bool // true = viewing habits of selected routine

	formActive bool
	form       *huh.Form
	formType   string // "routine", "rename", "habit", "edit_habit", "delete"

	// Form field pointers (survive value copies)
	formName    *string
	formTime    *string
	formConfirm *bool

	editingHabitID int64
}

func newRoutinesModel(s *store.Store) routinesModel {
	name, at := "", "08:00"
	confirm := false
	return routinesModel{
		store:       s,
		formName:    &name,
		formTime:    &at,
		formConfirm: &confirm,
	}
}

func (r *routinesModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

type routinesDataMsg struct {
	routines []store.Routine
}

type habitsDataMsg struct {
	habits []store.Habit
}

func (r routinesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		routines, _ := r.store.ListRoutines()
		return routinesDataMsg{routines: routines}
	}
}

func (r routinesModel) refreshHabits() tea.Cmd {
	if r.cursor >= len(r.routines) {
		return nil
	}
	id := r.routines[r.cursor].ID
	return func() tea.Msg {
		habits, _ := r.store.ListHabits(id)
		return habitsDataMsg{habits: habits}
	}
}

// changed signals the rest of the app that routines or habits were edited.
func changed() tea.Msg { return routineChangedMsg{} }

func (r routinesModel) update(msg tea.Msg) (routinesModel, tea.Cmd) {
	if r.formActive && r.form != nil {
		return r.updateForm(msg)
	}

	switch msg := msg.(type) {
	case routinesDataMsg:
		r.routines = msg.routines
		if r.cursor >= len(r.routines) {
			r.cursor = max(0, len(r.routines)-1)
		}
		return r, nil

	case habitsDataMsg:
		r.habits = msg.habits
		if r.habitCursor >= len(r.habits) {
			r.habitCursor = max(0, len(r.habits)-1)
		}
		return r, nil

	case tea.KeyMsg:
		if r.viewingHabits {
			return r.updateHabitView(msg)
		}
		return r.updateRoutineList(msg)
	}
	return r, nil
}

func (r routinesModel) updateRoutineList(msg tea.KeyMsg) (routinesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Up):
		if r.cursor > 0 {
			r.cursor--
		}
	case key.Matches(msg, keys.Down):
		if r.cursor < len(r.routines)-1 {
			r.cursor++
		}
	case key.Matches(msg, keys.Enter):
		if len(r.routines) > 0 {
			r.viewingHabits = true
			r.habitCursor = 0
			return r, r.refreshHabits()
		}
	case key.Matches(msg, keys.New):
		return r.showRoutineForm("routine", "")
	case key.Matches(msg, keys.Edit):
		if len(r.routines) > 0 {
			return r.showRoutineForm("rename", r.routines[r.cursor].Name)
		}
	case key.Matches(msg, keys.Delete):
		if len(r.routines) > 0 {
			return r.showDeleteForm()
		}
	}
	return r, nil
}

func (r routinesModel) updateHabitView(msg tea.KeyMsg) (routinesModel, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Back):
		r.viewingHabits = false
		return r, nil
	case key.Matches(msg, keys.Up):
		if r.habitCursor > 0 {
			r.habitCursor--
		}
	case key.Matches(msg, keys.Down):
		if r.habitCursor < len(r.habits)-1 {
			r.habitCursor++
		}
	case key.Matches(msg, keys.New):
		return r.showHabitForm(nil)
	case key.Matches(msg, keys.Edit):
		if len(r.habits) > 0 {
			h := r.habits[r.habitCursor]
			return r.showHabitForm(&h)
		}
	case key.Matches(msg, keys.Delete):
		if len(r.habits) > 0 {
			id := r.habits[r.habitCursor].ID
			return r, func() tea.Msg {
				if err := r.store.DeleteHabit(id); err != nil {
					return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
				}
				return changed()
			}
		}
	}
	return r, nil
}

func (r routinesModel) showRoutineForm(formType, name string) (routinesModel, tea.Cmd) {
	*r.formName = name
	r.formType = formType

	title := "Routine Name"
	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title(title).Value(r.formName),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r routinesModel) showHabitForm(h *store.Habit) (routinesModel, tea.Cmd) {
	if h != nil {
		*r.formName = h.Title
		*r.formTime = h.ScheduledAt
		r.formType = "edit_habit"
		r.editingHabitID = h.ID
	} else {
		*r.formName = ""
		*r.formTime = "08:00"
		r.formType = "habit"
	}

	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Habit").Value(r.formName),
			huh.NewInput().Title("Scheduled At (HH:MM)").Value(r.formTime),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r routinesModel) showDeleteForm() (routinesModel, tea.Cmd) {
	*r.formConfirm = false
	r.formType = "delete"

	name := r.routines[r.cursor].Name
	r.form = huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q and all its habits?", name)).
				Affirmative("Delete").
				Negative("Cancel").
				Value(r.formConfirm),
		),
	).WithShowHelp(true).WithShowErrors(true)

	r.formActive = true
	return r, r.form.Init()
}

func (r routinesModel) updateForm(msg tea.Msg) (routinesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			r.formActive = false
			r.form = nil
			return r, nil
		}
	}

	form, cmd := r.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		r.form = f
	}

	if r.form.State == huh.StateCompleted {
		r.formActive = false
		switch r.formType {
		case "routine":
			name := *r.formName
			return r, tea.Batch(r.submitRoutine(func() error {
				_, err := r.store.CreateRoutine(name)
				return err
			}), r.refresh())
		case "rename":
			name := *r.formName
			id := r.routines[r.cursor].ID
			return r, tea.Batch(r.submitRoutine(func() error {
				return r.store.RenameRoutine(id, name)
			}), r.refresh())
		case "habit":
			title, at := *r.formName, *r.formTime
			id := r.routines[r.cursor].ID
			return r, tea.Batch(r.submitRoutine(func() error {
				_, err := r.store.AddHabit(id, title, at)
				return err
			}), r.refreshHabits())
		case "edit_habit":
			title, at := *r.formName, *r.formTime
			id := r.editingHabitID
			return r, tea.Batch(r.submitRoutine(func() error {
				return r.store.UpdateHabit(id, title, at)
			}), r.refreshHabits())
		case "delete":
			if *r.formConfirm {
				id := r.routines[r.cursor].ID
				return r, tea.Batch(r.submitRoutine(func() error {
					return r.store.DeleteRoutine(id)
				}), r.refresh())
			}
			return r, nil
		}
	}

	return r, cmd
}

// submitRoutine runs a mutation and turns failures into status messages.
func (r routinesModel) submitRoutine(fn func() error) tea.Cmd {
	return func() tea.Msg {
		if err := fn(); err != nil {
			switch {
			case errors.Is(err, store.ErrDuplicateName):
				return statusMsg{text: "A routine with that name already exists", isError: true}
			case errors.Is(err, store.ErrInvalidInput):
				return statusMsg{text: fmt.Sprintf("Invalid input: %v", err), isError: true}
			default:
				return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
			}
		}
		return changed()
	}
}

func (r routinesModel) view() string {
	if r.formActive && r.form != nil {
		title := titleStyle.Render("New Routine")
		switch r.formType {
		case "rename":
			title = titleStyle.Render("Rename Routine")
		case "habit":
			title = titleStyle.Render("New Habit")
		case "edit_habit":
			title = titleStyle.Render("Edit Habit")
		case "delete":
			title = titleStyle.Render("Delete Routine")
		}
		content := lipgloss.JoinVertical(lipgloss.Left, title, "", r.form.View())
		return panelStyle.Width(r.width - 4).Render(content)
	}

	if r.viewingHabits {
		return r.renderHabitView()
	}
	return r.renderRoutineList()
}

func (r routinesModel) renderRoutineList() string {
	w := r.width - 4
	title := titleStyle.Render("Routines")

	if len(r.routines) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No routines yet. Press n to create one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, routine := range r.routines {
		cursor := "  "
		style := normalItemStyle
		if i == r.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s", cursor, routine.Name)))
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new  e: rename  d: delete  enter: habits"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}

func (r routinesModel) renderHabitView() string {
	w := r.width - 4
	routine := r.routines[r.cursor]
	title := titleStyle.Render(routine.Name) + mutedStyle.Render("  habits")

	if len(r.habits) == 0 {
		content := lipgloss.JoinVertical(lipgloss.Left,
			title,
			"",
			mutedStyle.Render("No habits. Press n to add one."),
		)
		return panelStyle.Width(w).Render(content)
	}

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for i, h := range r.habits {
		cursor := "  "
		style := normalItemStyle
		if i == r.habitCursor {
			cursor = "> "
			style = selectedItemStyle
		}
		badge := ""
		if b := streakBadge(h.Streak); b != "" {
			badge = "  " + streakStyle.Render(b)
		}
		rows = append(rows, style.Render(fmt.Sprintf("%s%s  %s", cursor, h.ScheduledAt, h.Title))+badge)
	}

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  n: new habit  e: edit  d: delete  esc: back"))

	return panelStyle.Width(w).Render(strings.Join(rows, "\n"))
}
