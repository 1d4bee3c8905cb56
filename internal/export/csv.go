package export

import (
	"encoding/csv"
	"fmt"
	"os"

	"habitkit/internal/store"
)

func ToCSV(completions []store.CompletionDetail, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	// Header
	if err := w.Write([]string{"Date", "Routine", "Habit"}); err != nil {
		return err
	}

	for _, c := range completions {
		row := []string{c.Day, c.RoutineName, c.HabitTitle}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
