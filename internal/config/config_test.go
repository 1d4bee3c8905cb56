package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.DayOffLimit != 3 {
		t.Fatalf("expected default limit 3, got %d", cfg.General.DayOffLimit)
	}
	if cfg.General.DatabasePath != "" {
		t.Fatalf("expected empty db path, got %q", cfg.General.DatabasePath)
	}
}

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := "[general]\ndatabase_path = \"/tmp/habits.db\"\nday_off_limit = 5\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.DatabasePath != "/tmp/habits.db" {
		t.Fatalf("unexpected db path: %q", cfg.General.DatabasePath)
	}
	if cfg.General.DayOffLimit != 5 {
		t.Fatalf("unexpected limit: %d", cfg.General.DayOffLimit)
	}
}

func TestLoadFromPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[general]\nday_off_limit = 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.General.DayOffLimit != 4 || cfg.General.DatabasePath != "" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestLoadFromBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadFrom(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestDirHonorsXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/xdg")
	if Dir() != "/custom/xdg/habitkit" {
		t.Fatalf("unexpected dir: %s", Dir())
	}
}
