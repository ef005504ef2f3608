package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadMigrations(t *testing.T) {
	t.Run("embedded fallback", func(t *testing.T) {
		files, err := loadMigrations("")
		if err != nil {
			t.Fatalf("loadMigrations: %v", err)
		}
		if len(files) == 0 || files[0].name != "001_init.sql" {
			t.Fatalf("files = %+v", files)
		}
		if !strings.Contains(string(files[0].data), "UNIQUE (survey_id, respondent)") {
			t.Error("init migration is missing the one-response-per-respondent constraint")
		}
	})

	t.Run("missing dir uses embedded", func(t *testing.T) {
		files, err := loadMigrations(filepath.Join(t.TempDir(), "missing"))
		if err != nil {
			t.Fatalf("loadMigrations: %v", err)
		}
		if len(files) == 0 {
			t.Fatal("expected embedded migrations")
		}
	})

	t.Run("dir sorted by name", func(t *testing.T) {
		dir := t.TempDir()
		for name, body := range map[string]string{
			"002_b.sql": "SELECT 2;",
			"001_a.sql": "SELECT 1;",
			"notes.txt": "ignored",
		} {
			if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o600); err != nil {
				t.Fatal(err)
			}
		}

		files, err := loadMigrations(dir)
		if err != nil {
			t.Fatalf("loadMigrations: %v", err)
		}
		if len(files) != 2 || files[0].name != "001_a.sql" || files[1].name != "002_b.sql" {
			t.Errorf("files = %+v", files)
		}
	})
}
