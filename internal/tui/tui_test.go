package tui

import (
	"testing"
	"time"

	"habitkit/internal/store"
	"habitkit/internal/streak"
)

func newTestStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Today model
// ============================================================

func TestTodayLoadData(t *testing.T) {
	s := newTestStore(t)
	r, _ := s.CreateRoutine("Morning")
	s.AddHabit(r.ID, "Meditate", "07:00")
	s.AddHabit(r.ID, "Stretch", "07:30")

	m := newTodayModel(s)
	msg := m.loadData()()
	data, ok := msg.(todayDataMsg)
	if !ok {
		t.Fatalf("expected todayDataMsg, got %T", msg)
	}
	if len(data.habits) != 2 {
		t.Fatalf("expected 2 habits, got %d", len(data.habits))
	}
	if data.day != streak.Today() {
		t.Fatalf("expected today, got %s", data.day)
	}
	if !data.showQuote {
		t.Fatal("quote should default to on")
	}
	if data.status == nil || data.status.Limit != 3 {
		t.Fatal("day off status should report the default limit")
	}
}

func TestTodayToggleCompletes(t *testing.T) {
	s := newTestStore(t)
	r, _ := s.CreateRoutine("Morning")
	h, _ := s.AddHabit(r.ID, "Meditate", "07:00")

	m := newTodayModel(s)
	m = applyToday(t, m)

	msg := m.toggle(h.ID)()
	toggled, ok := msg.(habitToggledMsg)
	if !ok {
		t.Fatalf("expected habitToggledMsg, got %T", msg)
	}
	if toggled.habit == nil || toggled.habit.Streak != 1 {
		t.Fatal("first completion should start a streak of 1")
	}

	done, _ := s.CompletedOn(streak.Today())
	if !done[h.ID] {
		t.Fatal("completion should be recorded")
	}
}

func TestTodayToggleUndoes(t *testing.T) {
	s := newTestStore(t)
	r, _ := s.CreateRoutine("Morning")
	h, _ := s.AddHabit(r.ID, "Meditate", "07:00")
	s.CompleteHabit(h.ID, streak.Today())

	m := newTodayModel(s)
	m = applyToday(t, m)

	msg := m.toggle(h.ID)()
	toggled, ok := msg.(habitToggledMsg)
	if !ok {
		t.Fatalf("expected habitToggledMsg, got %T", msg)
	}
	if toggled.habit.Streak != 0 {
		t.Fatalf("undo should roll the streak back to 0, got %d", toggled.habit.Streak)
	}
}

func TestTodayDayOffRoundTrip(t *testing.T) {
	s := newTestStore(t)
	m := newTodayModel(s)
	m = applyToday(t, m)

	msg := m.takeDayOff()()
	taken, ok := msg.(dayOffTakenMsg)
	if !ok || !taken.ok {
		t.Fatalf("expected successful dayOffTakenMsg, got %#v", msg)
	}

	// Second take on the same day is refused.
	msg = m.takeDayOff()()
	if taken, ok := msg.(dayOffTakenMsg); !ok || taken.ok {
		t.Fatalf("second take should be refused, got %#v", msg)
	}

	msg = m.undoDayOff()()
	undone, ok := msg.(dayOffUndoneMsg)
	if !ok || !undone.ok {
		t.Fatalf("expected successful dayOffUndoneMsg, got %#v", msg)
	}
}

func TestTodayCursorClamp(t *testing.T) {
	s := newTestStore(t)
	r, _ := s.CreateRoutine("Morning")
	s.AddHabit(r.ID, "Meditate", "07:00")

	m := newTodayModel(s)
	m.cursor = 5
	m = applyToday(t, m)
	if m.cursor != 0 {
		t.Fatalf("cursor should clamp to 0, got %d", m.cursor)
	}
}

func TestTodayDoneCount(t *testing.T) {
	s := newTestStore(t)
	r, _ := s.CreateRoutine("Morning")
	h1, _ := s.AddHabit(r.ID, "Meditate", "07:00")
	s.AddHabit(r.ID, "Stretch", "07:30")
	s.CompleteHabit(h1.ID, streak.Today())

	m := newTodayModel(s)
	m = applyToday(t, m)

	done, total := m.doneCount()
	if done != 1 || total != 2 {
		t.Fatalf("expected 1/2, got %d/%d", done, total)
	}
}

func applyToday(t *testing.T, m todayModel) todayModel {
	t.Helper()
	msg := m.loadData()()
	m, _ = m.update(msg)
	return m
}

// ============================================================
// Routines model
// ============================================================

func TestRoutinesRefresh(t *testing.T) {
	s := newTestStore(t)
	s.CreateRoutine("Morning")
	s.CreateRoutine("Evening")

	m := newRoutinesModel(s)
	msg := m.refresh()()
	data, ok := msg.(routinesDataMsg)
	if !ok {
		t.Fatalf("expected routinesDataMsg, got %T", msg)
	}
	if len(data.routines) != 2 {
		t.Fatalf("expected 2 routines, got %d", len(data.routines))
	}
}

func TestRoutinesRefreshHabits(t *testing.T) {
	s := newTestStore(t)
	r, _ := s.CreateRoutine("Morning")
	s.AddHabit(r.ID, "Meditate", "07:00")

	m := newRoutinesModel(s)
	m, _ = m.update(m.refresh()())

	msg := m.refreshHabits()()
	data, ok := msg.(habitsDataMsg)
	if !ok {
		t.Fatalf("expected habitsDataMsg, got %T", msg)
	}
	if len(data.habits) != 1 {
		t.Fatalf("expected 1 habit, got %d", len(data.habits))
	}
}

func TestRoutinesSubmitDuplicateName(t *testing.T) {
	s := newTestStore(t)
	s.CreateRoutine("Morning")

	m := newRoutinesModel(s)
	msg := m.submitRoutine(func() error {
		_, err := s.CreateRoutine("morning")
		return err
	})()
	status, ok := msg.(statusMsg)
	if !ok || !status.isError {
		t.Fatalf("duplicate name should yield an error status, got %#v", msg)
	}
}

func TestRoutinesSubmitSuccess(t *testing.T) {
	s := newTestStore(t)

	m := newRoutinesModel(s)
	msg := m.submitRoutine(func() error {
		_, err := s.CreateRoutine("Morning")
		return err
	})()
	if _, ok := msg.(routineChangedMsg); !ok {
		t.Fatalf("expected routineChangedMsg, got %T", msg)
	}
}

// ============================================================
// History model
// ============================================================

func TestWeekRangeSpansSevenDays(t *testing.T) {
	for _, start := range []string{"monday", "sunday"} {
		from, to := weekRange(start, 0)
		if to.Sub(from) != 7*24*time.Hour {
			t.Fatalf("%s week should span 7 days, got %v", start, to.Sub(from))
		}
	}
}

func TestWeekRangeStartDay(t *testing.T) {
	from, _ := weekRange("monday", 0)
	if from.Weekday() != time.Monday {
		t.Fatalf("monday weeks should start on Monday, got %v", from.Weekday())
	}
	from, _ = weekRange("sunday", 0)
	if from.Weekday() != time.Sunday {
		t.Fatalf("sunday weeks should start on Sunday, got %v", from.Weekday())
	}
}

func TestWeekRangeOffset(t *testing.T) {
	cur, _ := weekRange("monday", 0)
	prev, _ := weekRange("monday", 1)
	if cur.Sub(prev) != 7*24*time.Hour {
		t.Fatalf("offset 1 should move back one week, got %v", cur.Sub(prev))
	}
}

func TestWeekRangeContainsToday(t *testing.T) {
	from, to := weekRange("monday", 0)
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if today.Before(from) || !today.Before(to) {
		t.Fatalf("today %v outside current week [%v, %v)", today, from, to)
	}
}

func TestHistorySelectedDay(t *testing.T) {
	s := newTestStore(t)
	h := newHistoryModel(s)
	h.selected = 0
	from, _ := weekRange(h.weekStart, h.offset)
	if h.selectedDay() != from.Format(streak.DateLayout) {
		t.Fatalf("selected 0 should be the window start, got %s", h.selectedDay())
	}
}

func TestHistoryRefresh(t *testing.T) {
	s := newTestStore(t)
	r, _ := s.CreateRoutine("Morning")
	habit, _ := s.AddHabit(r.ID, "Meditate", "07:00")
	s.CompleteHabit(habit.ID, streak.Today())

	h := newHistoryModel(s)
	h.width = 80
	msg := h.refresh()()
	data, ok := msg.(historyDataMsg)
	if !ok {
		t.Fatalf("expected historyDataMsg, got %T", msg)
	}
	found := false
	for _, c := range data.counts {
		if c.Day == streak.Today() && c.Count == 1 {
			found = true
		}
	}
	if !found {
		t.Fatal("current week should include today's completion")
	}
}

// ============================================================
// Notes model
// ============================================================

func TestNotesRefreshTodayFirst(t *testing.T) {
	s := newTestStore(t)
	s.SetDailyNote("2000-01-01", "old note")

	n := newNotesModel(s)
	msg := n.refresh()()
	data, ok := msg.(notesDataMsg)
	if !ok {
		t.Fatalf("expected notesDataMsg, got %T", msg)
	}
	if len(data.days) != 2 {
		t.Fatalf("expected 2 days, got %d", len(data.days))
	}
	if data.days[0] != streak.Today() {
		t.Fatalf("today should be listed first, got %s", data.days[0])
	}
}

func TestNotesRefreshNoDuplicateToday(t *testing.T) {
	s := newTestStore(t)
	s.SetDailyNote(streak.Today(), "today's note")

	n := newNotesModel(s)
	msg := n.refresh()()
	data := msg.(notesDataMsg)
	if len(data.days) != 1 {
		t.Fatalf("today should appear once, got %v", data.days)
	}
}

func TestNotesRefreshScratchpad(t *testing.T) {
	s := newTestStore(t)
	s.SetScratchpad("remember the milk")

	n := newNotesModel(s)
	msg := n.refresh()()
	data := msg.(notesDataMsg)
	if data.scratchpad != "remember the milk" {
		t.Fatalf("scratchpad not loaded, got %q", data.scratchpad)
	}
}

// ============================================================
// Settings model
// ============================================================

func TestSettingsRefresh(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)

	msg := m.refresh()()
	data, ok := msg.(settingsDataMsg)
	if !ok {
		t.Fatalf("expected settingsDataMsg, got %T", msg)
	}
	if len(data.settings) == 0 {
		t.Fatal("seeded settings should be listed")
	}
}

func TestSettingsGetValFallback(t *testing.T) {
	s := newTestStore(t)
	m := newSettingsModel(s)

	if got := m.getVal("day_off_limit", "9"); got != "3" {
		t.Fatalf("seeded value should win, got %q", got)
	}
	if got := m.getVal("missing_key", "fallback"); got != "fallback" {
		t.Fatalf("missing key should fall back, got %q", got)
	}
}

// ============================================================
// Quote of the day
// ============================================================

func TestQuoteOfDayDeterministic(t *testing.T) {
	a := quoteOfDay("2025-06-01")
	b := quoteOfDay("2025-06-01")
	if a != b {
		t.Fatal("same day should give the same quote")
	}
}

func TestQuoteOfDayFromSet(t *testing.T) {
	got := quoteOfDay("2025-06-01")
	for _, q := range quotes {
		if q == got {
			return
		}
	}
	t.Fatalf("quote %q not in the rotation", got)
}

// ============================================================
// Helper functions
// ============================================================

func TestStreakBadge(t *testing.T) {
	if streakBadge(0) != "" {
		t.Fatal("zero streak should have no badge")
	}
	if streakBadge(-1) != "" {
		t.Fatal("negative streak should have no badge")
	}
	if streakBadge(5) != "🔥5" {
		t.Fatalf("unexpected badge: %q", streakBadge(5))
	}
}

func TestPlural(t *testing.T) {
	if plural(1, "habit") != "1 habit" {
		t.Fatalf("got %q", plural(1, "habit"))
	}
	if plural(2, "habit") != "2 habits" {
		t.Fatalf("got %q", plural(2, "habit"))
	}
	if plural(0, "habit") != "0 habits" {
		t.Fatalf("got %q", plural(0, "habit"))
	}
}

func TestMinMax(t *testing.T) {
	if min(3, 5) != 3 {
		t.Fatal("min(3,5) should be 3")
	}
	if min(5, 3) != 3 {
		t.Fatal("min(5,3) should be 3")
	}
	if max(3, 5) != 5 {
		t.Fatal("max(3,5) should be 5")
	}
	if max(5, 3) != 5 {
		t.Fatal("max(5,3) should be 5")
	}
}

// ============================================================
// View state
// ============================================================

func TestViewNames(t *testing.T) {
	if len(viewNames) != 5 {
		t.Fatalf("expected 5 view names, got %d", len(viewNames))
	}
	expected := []string{"Today", "Routines", "History", "Notes", "Settings"}
	for i, name := range expected {
		if viewNames[i] != name {
			t.Fatalf("viewNames[%d] = %q, want %q", i, viewNames[i], name)
		}
	}
}

func TestViewStateConstants(t *testing.T) {
	if viewToday != 0 || viewRoutines != 1 || viewHistory != 2 || viewNotes != 3 || viewSettings != 4 {
		t.Fatal("view state constants out of order")
	}
}

// ============================================================
// App model
// ============================================================

func TestNewApp(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.activeView != viewToday {
		t.Fatal("default view should be today")
	}
	if app.showHelp {
		t.Fatal("help should be hidden by default")
	}
	if app.exportPicking {
		t.Fatal("export picker should be hidden by default")
	}
}

func TestAppIsFormActiveDefault(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)

	if app.isFormActive() {
		t.Fatal("no forms should be active initially")
	}
}

func TestAppViewStates(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	// Test all views render without panic
	views := []viewState{viewToday, viewRoutines, viewHistory, viewNotes, viewSettings}
	for _, v := range views {
		app.activeView = v
		output := app.View()
		if output == "" {
			t.Fatalf("view %d rendered empty", v)
		}
	}
}

func TestAppRenderHeaderContainsAllTabs(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40

	header := app.renderHeader()
	for _, name := range viewNames {
		if !stringContains(header, name) {
			t.Fatalf("header missing tab %q", name)
		}
	}
}

func TestAppLoadingState(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	// Width 0 means not yet sized
	output := app.View()
	if output != "Loading..." {
		t.Fatalf("expected 'Loading...', got %q", output)
	}
}

func TestAppStatusMessage(t *testing.T) {
	s := newTestStore(t)
	app := NewApp(s)
	app.width = 120
	app.height = 40
	app.status = "test status"

	footer := app.renderFooter()
	if !stringContains(footer, "test status") {
		t.Fatal("footer should contain status message")
	}
}

func TestAppExportCSV(t *testing.T) {
	s := newTestStore(t)
	r, _ := s.CreateRoutine("Morning")
	h, _ := s.AddHabit(r.ID, "Meditate", "07:00")
	s.CompleteHabit(h.ID, streak.Today())

	app := NewApp(s)
	t.Setenv("HOME", t.TempDir())

	msg := app.doExport(0)()
	done, ok := msg.(exportDoneMsg)
	if !ok {
		t.Fatalf("expected exportDoneMsg, got %#v", msg)
	}
	if done.path == "" {
		t.Fatal("export path should be set")
	}
}

func stringContains(s, substr string) bool {
	for i := 0; i <= len(s)-len(substr); i++ {
		if s[i:i+len(substr)] == substr {
			return true
		}
	}
	return false
}

// ============================================================
// Key bindings
// ============================================================

func TestKeyMapShortHelp(t *testing.T) {
	bindings := keys.ShortHelp()
	if len(bindings) == 0 {
		t.Fatal("short help should have bindings")
	}
}

func TestKeyMapFullHelp(t *testing.T) {
	groups := keys.FullHelp()
	if len(groups) == 0 {
		t.Fatal("full help should have groups")
	}
	for i, g := range groups {
		if len(g) == 0 {
			t.Fatalf("full help group %d is empty", i)
		}
	}
}

// ============================================================
// Styles (smoke test, just verify they don't panic)
// ============================================================

func TestStylesRender(t *testing.T) {
	styles := []struct {
		name string
		fn   func() string
	}{
		{"activeTab", func() string { return activeTabStyle.Render("test") }},
		{"inactiveTab", func() string { return inactiveTabStyle.Render("test") }},
		{"panel", func() string { return panelStyle.Render("test") }},
		{"activePanel", func() string { return activePanelStyle.Render("test") }},
		{"title", func() string { return titleStyle.Render("test") }},
		{"accent", func() string { return accentStyle.Render("test") }},
		{"success", func() string { return successStyle.Render("test") }},
		{"warning", func() string { return warningStyle.Render("test") }},
		{"error", func() string { return errorStyle.Render("test") }},
		{"muted", func() string { return mutedStyle.Render("test") }},
		{"highlight", func() string { return highlightStyle.Render("test") }},
		{"streak", func() string { return streakStyle.Render("test") }},
		{"done", func() string { return doneStyle.Render("test") }},
		{"dayOffBanner", func() string { return dayOffBannerStyle.Render("test") }},
		{"quote", func() string { return quoteStyle.Render("test") }},
		{"header", func() string { return headerStyle.Render("test") }},
		{"footer", func() string { return footerStyle.Render("test") }},
		{"selectedItem", func() string { return selectedItemStyle.Render("test") }},
		{"normalItem", func() string { return normalItemStyle.Render("test") }},
	}

	for _, s := range styles {
		result := s.fn()
		if result == "" {
			t.Fatalf("style %q rendered empty", s.name)
		}
	}
}
