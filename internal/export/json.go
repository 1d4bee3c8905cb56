package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"habitkit/internal/store"
)

type jsonExport struct {
	ExportedAt  string           `json:"exported_at"`
	Count       int              `json:"count"`
	Completions []jsonCompletion `json:"completions"`
}

type jsonCompletion struct {
	Date    string `json:"date"`
	Routine string `json:"routine"`
	Habit   string `json:"habit"`
	HabitID int64  `json:"habit_id"`
}

func ToJSON(completions []store.CompletionDetail, path string) error {
	export := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(completions),
	}

	for _, c := range completions {
		export.Completions = append(export.Completions, jsonCompletion{
			Date:    c.Day,
			Routine: c.RoutineName,
			Habit:   c.HabitTitle,
			HabitID: c.HabitID,
		})
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
