package export

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"habitkit/internal/store"
)

func sampleCompletions() []store.CompletionDetail {
	return []store.CompletionDetail{
		{Day: "2025-01-11", HabitID: 2, HabitTitle: "Read", RoutineID: "r2", RoutineName: "Evening"},
		{Day: "2025-01-10", HabitID: 1, HabitTitle: "Stretch", RoutineID: "r1", RoutineName: "Morning"},
	}
}

// ============================================================
// CSV
// ============================================================

func TestToCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ToCSV(sampleCompletions(), path); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "Date" || records[0][2] != "Habit" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][0] != "2025-01-11" || records[1][1] != "Evening" || records[1][2] != "Read" {
		t.Fatalf("unexpected row: %v", records[1])
	}
}

func TestToCSVEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.csv")
	if err := ToCSV(nil, path); err != nil {
		t.Fatal(err)
	}

	f, _ := os.Open(path)
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected header only, got %d rows", len(records))
	}
}

func TestToCSVBadPath(t *testing.T) {
	if err := ToCSV(sampleCompletions(), "/nonexistent-dir/out.csv"); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}

// ============================================================
// JSON
// ============================================================

func TestToJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ToJSON(sampleCompletions(), path); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	var parsed jsonExport
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatal(err)
	}
	if parsed.Count != 2 || len(parsed.Completions) != 2 {
		t.Fatalf("unexpected export: %+v", parsed)
	}
	if parsed.ExportedAt == "" {
		t.Fatal("ExportedAt should be set")
	}
	c := parsed.Completions[0]
	if c.Date != "2025-01-11" || c.Routine != "Evening" || c.Habit != "Read" || c.HabitID != 2 {
		t.Fatalf("unexpected completion: %+v", c)
	}
}

func TestToJSONEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	if err := ToJSON(nil, path); err != nil {
		t.Fatal(err)
	}

	data, _ := os.ReadFile(path)
	var parsed jsonExport
	if err := json.Unmarshal(data, &parsed); err != nil {
		t.Fatal(err)
	}
	if parsed.Count != 0 {
		t.Fatalf("expected count 0, got %d", parsed.Count)
	}
}

func TestToJSONBadPath(t *testing.T) {
	if err := ToJSON(sampleCompletions(), "/nonexistent-dir/out.json"); err == nil {
		t.Fatal("expected error for unwritable path")
	}
}
