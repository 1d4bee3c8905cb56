package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"habitkit/internal/config"
	"habitkit/internal/store"
	"habitkit/internal/tui"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error loading config: %v\n", err)
		os.Exit(1)
	}

	dbPath := cfg.General.DatabasePath
	if dbPath == "" {
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	// The config file seeds the day-off quota on first run only; after
	// that the setting in the database is authoritative.
	_, statErr := os.Stat(dbPath)
	firstRun := os.IsNotExist(statErr)

	s, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error opening database: %v\n", err)
		os.Exit(1)
	}
	defer s.Close()

	if firstRun && cfg.General.DayOffLimit >= 0 {
		if err := s.SetDayOffLimit(cfg.General.DayOffLimit); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}

	app := tui.NewApp(s)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
