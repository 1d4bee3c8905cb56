package tui

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"habitkit/internal/store"
	"habitkit/internal/streak"
)

type settingsModel struct {
	store  *store.Store
	width  int
	height int

	settings   []store.Setting
	dayOffUsed int
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	dayOffLimit *string
	weekStart   *string
	showQuote   *bool
}

func newSettingsModel(s *store.Store) settingsModel {
	limit, ws := "", ""
	quote := true
	return settingsModel{
		store:       s,
		dayOffLimit: &limit,
		weekStart:   &ws,
		showQuote:   &quote,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings   []store.Setting
	dayOffUsed int
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, _ := s.store.GetAllSettings()
		used := 0
		if st, err := s.store.DayOffStatus(streak.MonthOf(streak.Today())); err == nil {
			used = st.Used
		}
		return settingsDataMsg{settings: settings, dayOffUsed: used}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		s.dayOffUsed = msg.dayOffUsed
		return s, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.Edit):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.dayOffLimit = s.getVal("day_off_limit", "3")
	*s.weekStart = s.getVal("week_start", "monday")
	*s.showQuote = s.getVal("show_quote", "true") == "true"

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Title("Day offs per month").Value(s.dayOffLimit).
				Validate(func(v string) error {
					n, err := strconv.Atoi(v)
					if err != nil || n < 0 {
						return fmt.Errorf("must be a non-negative number")
					}
					return nil
				}),
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Monday", "monday"),
					huh.NewOption("Sunday", "sunday"),
				).Value(s.weekStart),
			huh.NewConfirm().Title("Show quote of the day").
				Affirmative("Yes").
				Negative("No").
				Value(s.showQuote),
		),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, tea.Batch(s.saveSettings(), s.refresh())
	}

	return s, cmd
}

func (s settingsModel) saveSettings() tea.Cmd {
	limit, _ := strconv.Atoi(*s.dayOffLimit)
	weekStart := *s.weekStart
	quote := "false"
	if *s.showQuote {
		quote = "true"
	}
	return func() tea.Msg {
		if err := s.store.SetDayOffLimit(limit); err != nil {
			return statusMsg{text: fmt.Sprintf("Error: %v", err), isError: true}
		}
		s.store.SetSetting("week_start", weekStart)
		s.store.SetSetting("show_quote", quote)
		return statusMsg{text: "Settings saved"}
	}
}

func (s settingsModel) getVal(k, fallback string) string {
	v, err := s.store.GetSetting(k)
	if err != nil || v == "" {
		return fallback
	}
	return v
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		if setting.Key == "scratchpad" {
			continue
		}
		label := lipgloss.NewStyle().Width(24).Render(setting.Key)
		value := highlightStyle.Render(setting.Value)
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	if limit, err := strconv.Atoi(s.getVal("day_off_limit", "3")); err == nil && s.dayOffUsed > limit {
		rows = append(rows, "")
		rows = append(rows, warningStyle.Render(fmt.Sprintf(
			"  %d day offs already taken this month exceed the new limit of %d; they stay recorded",
			s.dayOffUsed, limit)))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
