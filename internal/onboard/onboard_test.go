package onboard

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vocabmark/vocabmark/internal/config"
	"github.com/vocabmark/vocabmark/internal/notes"
)

func setupTestEnv(t *testing.T) string {
	t.Helper()
	tmp := t.TempDir()
	t.Setenv("VOCABMARK_CONFIG_DIR", tmp)
	t.Setenv("LC_ALL", "")
	t.Setenv("LANGUAGE", "")
	t.Setenv("LANG", "en_US.UTF-8")
	return tmp
}

func run(t *testing.T, input string) (*Result, string) {
	t.Helper()
	var out bytes.Buffer
	r := &Runner{
		Stdin:  strings.NewReader(input),
		Stdout: &out,
	}
	result, err := r.Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	return result, out.String()
}

func TestIsFirstRun_NoConfig(t *testing.T) {
	setupTestEnv(t)
	if !config.IsFirstRun() {
		t.Error("should be first run with no config")
	}
}

func TestSetup_Defaults(t *testing.T) {
	tmp := setupTestEnv(t)

	result, out := run(t, "\n\n\n")

	if result.Color != notes.DefaultHighlightColor {
		t.Errorf("color = %q, want %q", result.Color, notes.DefaultHighlightColor)
	}
	if result.Config.Store.Backend != config.BackendJSON {
		t.Errorf("backend = %q, want json", result.Config.Store.Backend)
	}
	if result.Config.Lookup.Language != "English" {
		t.Errorf("language = %q, want English", result.Config.Lookup.Language)
	}
	if _, err := os.Stat(filepath.Join(tmp, "config.yaml")); err != nil {
		t.Errorf("config.yaml not created: %v", err)
	}
	if config.IsFirstRun() {
		t.Error("should not be first run after setup")
	}
	if !strings.Contains(out, "Setup complete!") {
		t.Errorf("output missing completion line:\n%s", out)
	}
}

func TestSetup_CustomColorPersisted(t *testing.T) {
	tmp := setupTestEnv(t)

	result, _ := run(t, "#00FF00\n\n\n")

	if result.Color != "#00FF00" {
		t.Errorf("color = %q, want #00FF00", result.Color)
	}

	store := notes.NewFileStore(filepath.Join(tmp, "data"))
	got, err := store.HighlightColor()
	if err != nil {
		t.Fatalf("HighlightColor() error: %v", err)
	}
	if got != "#00FF00" {
		t.Errorf("stored color = %q, want #00FF00", got)
	}
}

func TestSetup_InvalidColorKeepsDefault(t *testing.T) {
	setupTestEnv(t)

	result, out := run(t, "not-a-color\n\n\n")

	if result.Color != notes.DefaultHighlightColor {
		t.Errorf("color = %q, want default", result.Color)
	}
	if !strings.Contains(out, "is not a color") {
		t.Errorf("output should explain the rejected color:\n%s", out)
	}
}

func TestSetup_SQLiteBackend(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"by number", "\n2\n\n"},
		{"by name", "\nsqlite\n\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmp := setupTestEnv(t)

			result, _ := run(t, tt.input)

			if result.Config.Store.Backend != config.BackendSQLite {
				t.Errorf("backend = %q, want sqlite", result.Config.Store.Backend)
			}
			if _, err := os.Stat(filepath.Join(tmp, "data", "store.sqlite")); err != nil {
				t.Errorf("store.sqlite not created: %v", err)
			}

			cfg, err := config.Load()
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if cfg.Store.Backend != config.BackendSQLite {
				t.Errorf("saved backend = %q, want sqlite", cfg.Store.Backend)
			}
		})
	}
}

func TestSetup_Language(t *testing.T) {
	setupTestEnv(t)

	result, _ := run(t, "\n\nDeutsch\n")

	if result.Config.Lookup.Language != "Deutsch" {
		t.Errorf("language = %q, want Deutsch", result.Config.Lookup.Language)
	}
	if got := result.Config.LookupEndpoint(); !strings.Contains(got, "hl=de") {
		t.Errorf("LookupEndpoint() = %q, want hl=de", got)
	}
}

func TestSetup_EmptyInput(t *testing.T) {
	setupTestEnv(t)

	result, _ := run(t, "")

	if result.Color != notes.DefaultHighlightColor || result.Config.Store.Backend != config.BackendJSON {
		t.Errorf("result = %+v, want defaults", result)
	}
}
