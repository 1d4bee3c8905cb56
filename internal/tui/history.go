package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"habitkit/internal/store"
	"habitkit/internal/streak"
)

// historyModel shows one week of completion counts as a bar chart plus the
// completion log for a selected day.
type historyModel struct {
	store  *store.Store
	width  int
	height int

	weekStart string // "monday" or "sunday"
	offset    int    // weeks back from the current week (0 = current)
	selected  int    // index of the selected day within the window

	counts   []store.DayCount
	daysOff  map[string]bool
	dayLog   []store.CompletionDetail
	chart    barchart.Model
}

func newHistoryModel(s *store.Store) historyModel {
	return historyModel{
		store:     s,
		weekStart: "monday",
		selected:  6,
		daysOff:   map[string]bool{},
		chart:     barchart.New(60, 10),
	}
}

func (h *historyModel) setSize(w, ht int) {
	h.width = w
	h.height = ht
}

type historyDataMsg struct {
	weekStart string
	counts    []store.DayCount
	daysOff   map[string]bool
}

type dayLogMsg struct {
	log []store.CompletionDetail
}

func (h historyModel) refresh() tea.Cmd {
	return func() tea.Msg {
		weekStart, _ := h.store.GetSetting("week_start")
		if weekStart == "" {
			weekStart = "monday"
		}

		from, to := weekRange(weekStart, h.offset)
		counts, _ := h.store.DailyCompletionCounts(
			from.Format(streak.DateLayout), to.Format(streak.DateLayout))

		daysOff := map[string]bool{}
		for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
			day := d.Format(streak.DateLayout)
			if off, _ := h.store.IsDayOff(day); off {
				daysOff[day] = true
			}
		}

		return historyDataMsg{weekStart: weekStart, counts: counts, daysOff: daysOff}
	}
}

func (h historyModel) refreshDayLog() tea.Cmd {
	day := h.selectedDay()
	return func() tea.Msg {
		log, _ := h.store.CompletionsOn(day)
		return dayLogMsg{log: log}
	}
}

// weekRange returns the half-open [from, to) window for the week at the given
// offset, honoring the configured first day of the week.
func weekRange(weekStart string, offset int) (time.Time, time.Time) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	weekday := int(today.Weekday()) // Sunday = 0
	var back int
	if weekStart == "sunday" {
		back = weekday
	} else {
		back = weekday - 1
		if back < 0 {
			back = 6
		}
	}
	start := today.AddDate(0, 0, -back-7*offset)
	return start, start.AddDate(0, 0, 7)
}

func (h historyModel) selectedDay() string {
	from, _ := weekRange(h.weekStart, h.offset)
	return from.AddDate(0, 0, h.selected).Format(streak.DateLayout)
}

func (h historyModel) update(msg tea.Msg) (historyModel, tea.Cmd) {
	switch msg := msg.(type) {
	case historyDataMsg:
		h.weekStart = msg.weekStart
		h.counts = msg.counts
		h.daysOff = msg.daysOff
		h.buildChart()
		return h, h.refreshDayLog()

	case dayLogMsg:
		h.dayLog = msg.log
		return h, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			if h.selected > 0 {
				h.selected--
				return h, h.refreshDayLog()
			}
			h.offset++
			h.selected = 6
			return h, h.refresh()
		case key.Matches(msg, keys.Right):
			if h.selected < 6 {
				h.selected++
				return h, h.refreshDayLog()
			}
			if h.offset > 0 {
				h.offset--
				h.selected = 0
				return h, h.refresh()
			}
		case key.Matches(msg, keys.Up):
			h.offset++
			return h, h.refresh()
		case key.Matches(msg, keys.Down):
			if h.offset > 0 {
				h.offset--
				return h, h.refresh()
			}
		}
	}
	return h, nil
}

func (h *historyModel) buildChart() {
	chartWidth := h.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 10
	if h.height > 30 {
		chartHeight = 14
	}

	h.chart = barchart.New(chartWidth, chartHeight)

	byDay := make(map[string]int, len(h.counts))
	for _, c := range h.counts {
		byDay[c.Day] = c.Count
	}

	from, to := weekRange(h.weekStart, h.offset)

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		day := d.Format(streak.DateLayout)
		label := d.Format("Mon 02")

		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if h.daysOff[day] {
			style = lipgloss.NewStyle().Foreground(colorWarning)
		}

		value := float64(byDay[day])
		if value == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}

		bars = append(bars, barchart.BarData{
			Label:  label,
			Values: []barchart.BarValue{{Name: day, Value: value, Style: style}},
		})
	}

	h.chart.PushAll(bars)
	h.chart.Draw()
}

func (h historyModel) view() string {
	w := h.width - 4

	from, to := weekRange(h.weekStart, h.offset)
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s to %s",
		from.Format("Jan 02"), to.Add(-24*time.Hour).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("History"), "  ", dateLabel,
	)

	chartView := h.chart.View()
	logView := h.renderDayLog(w)
	nav := mutedStyle.Render("  ←/→: select day  ↑/↓: change week")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", chartView, "", logView, "", nav,
		),
	)
}

func (h historyModel) renderDayLog(w int) string {
	day := h.selectedDay()
	date, _ := streak.ParseDate(day)

	heading := highlightStyle.Render(date.Format("Mon, Jan 02"))
	if h.daysOff[day] {
		heading += "  " + warningStyle.Render("☂ day off")
	}

	var rows []string
	rows = append(rows, heading)

	if len(h.dayLog) == 0 {
		rows = append(rows, mutedStyle.Render("  Nothing completed on this day"))
		return strings.Join(rows, "\n")
	}

	rows = append(rows, mutedStyle.Render("  "+strings.Repeat("─", min(w-6, 40))))
	for _, c := range h.dayLog {
		rows = append(rows, fmt.Sprintf("  %s %s",
			successStyle.Render("✓"),
			c.HabitTitle)+mutedStyle.Render("  "+c.RoutineName))
	}
	rows = append(rows, mutedStyle.Render(fmt.Sprintf("  %s completed", plural(len(h.dayLog), "habit"))))

	return strings.Join(rows, "\n")
}
