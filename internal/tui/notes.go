package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"habitkit/internal/store"
	"habitkit/internal/streak"
)

// notesModel holds per-day journal notes plus a single free-form scratchpad.
type notesModel struct {
	store  *store.Store
	width  int
	height int

	days       []string // days that have a note, today always first
	cursor     int
	scratchpad string
	onScratch  bool // focus on the scratchpad pane

	formActive bool
	form       *huh.Form
	formType   string // "note", "scratchpad"
	formBody   *string
	editingDay string
}

func newNotesModel(s *store.Store) notesModel {
	body := ""
	return notesModel{
		store:    s,
		formBody: &body,
	}
}

func (n *notesModel) setSize(w, h int) {
	n.width = w
	n.height = h
}

type notesDataMsg struct {
	days       []string
	scratchpad string
}

func (n notesModel) refresh() tea.Cmd {
	return func() tea.Msg {
		today := streak.Today()
		noteDays, _ := n.store.NoteDays()

		days := []string{today}
		for _, d := range noteDays {
			if d != today {
				days = append(days, d)
			}
		}

		scratch, _ := n.store.Scratchpad()
		return notesDataMsg{days: days, scratchpad: scratch}
	}
}

func (n notesModel) update(msg tea.Msg) (notesModel, tea.Cmd) {
	if n.formActive && n.form != nil {
		return n.updateForm(msg)
	}

	switch msg := msg.(type) {
	case notesDataMsg:
		n.days = msg.days
		n.scratchpad = msg.scratchpad
		if n.cursor >= len(n.days) {
			n.cursor = max(0, len(n.days)-1)
		}
		return n, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Toggle):
			n.onScratch = !n.onScratch
		case key.Matches(msg, keys.Up):
			if !n.onScratch && n.cursor > 0 {
				n.cursor--
			}
		case key.Matches(msg, keys.Down):
			if !n.onScratch && n.cursor < len(n.days)-1 {
				n.cursor++
			}
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			if n.onScratch {
				return n.showScratchpadForm()
			}
			if len(n.days) > 0 {
				return n.showNoteForm(n.days[n.cursor])
			}
		case key.Matches(msg, keys.Delete):
			if !n.onScratch && len(n.days) > 0 {
				day := n.days[n.cursor]
				return n, func() tea.Msg {
					if err := n.store.SetDailyNote(day, ""); err != nil {
						return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
					}
					return statusMsg{text: "Note deleted"}
				}
			}
		}
	}
	return n, nil
}

func (n notesModel) showNoteForm(day string) (notesModel, tea.Cmd) {
	body, _ := n.store.GetDailyNote(day)
	*n.formBody = body
	n.formType = "note"
	n.editingDay = day

	n.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("Note for " + day).Value(n.formBody).Lines(8),
		),
	).WithShowHelp(true).WithShowErrors(true)

	n.formActive = true
	return n, n.form.Init()
}

func (n notesModel) showScratchpadForm() (notesModel, tea.Cmd) {
	*n.formBody = n.scratchpad
	n.formType = "scratchpad"

	n.form = huh.NewForm(
		huh.NewGroup(
			huh.NewText().Title("Scratchpad").Value(n.formBody).Lines(10),
		),
	).WithShowHelp(true).WithShowErrors(true)

	n.formActive = true
	return n, n.form.Init()
}

func (n notesModel) updateForm(msg tea.Msg) (notesModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			n.formActive = false
			n.form = nil
			return n, nil
		}
	}

	form, cmd := n.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		n.form = f
	}

	if n.form.State == huh.StateCompleted {
		n.formActive = false
		body := *n.formBody
		switch n.formType {
		case "note":
			day := n.editingDay
			return n, tea.Sequence(func() tea.Msg {
				if err := n.store.SetDailyNote(day, body); err != nil {
					return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
				}
				return statusMsg{text: "Note saved"}
			}, n.refresh())
		case "scratchpad":
			return n, tea.Sequence(func() tea.Msg {
				if err := n.store.SetScratchpad(body); err != nil {
					return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
				}
				return statusMsg{text: "Scratchpad saved"}
			}, n.refresh())
		}
	}

	return n, cmd
}

func (n notesModel) view() string {
	w := n.width - 4

	if n.formActive && n.form != nil {
		title := titleStyle.Render("Notes")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", n.form.View()),
		)
	}

	var rows []string

	notesTitle := titleStyle.Render("Daily Notes")
	if !n.onScratch {
		notesTitle = titleStyle.Render("Daily Notes") + "  " + selectedItemStyle.Render("●")
	}
	rows = append(rows, notesTitle)
	rows = append(rows, "")

	today := streak.Today()
	for i, day := range n.days {
		cursor := "  "
		style := normalItemStyle
		if !n.onScratch && i == n.cursor {
			cursor = "> "
			style = selectedItemStyle
		}
		row := style.Render(cursor + day)
		if day == today {
			row += mutedStyle.Render("  (today)")
		}
		rows = append(rows, row)
	}

	rows = append(rows, "")

	scratchTitle := titleStyle.Render("Scratchpad")
	if n.onScratch {
		scratchTitle += "  " + selectedItemStyle.Render("●")
	}
	rows = append(rows, scratchTitle)
	preview := n.scratchpad
	if preview == "" {
		preview = mutedStyle.Render("  (empty)")
	} else {
		lines := strings.Split(preview, "\n")
		if len(lines) > 4 {
			lines = append(lines[:4], mutedStyle.Render("  …"))
		}
		for i := range lines {
			lines[i] = "  " + lines[i]
		}
		preview = strings.Join(lines, "\n")
	}
	rows = append(rows, preview)

	rows = append(rows, "")
	rows = append(rows, mutedStyle.Render("  space: switch pane  enter: edit  d: delete note"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
