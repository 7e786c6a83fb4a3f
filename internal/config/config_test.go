package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultConfigFileName)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_FileOverDefaults(t *testing.T) {
	path := writeConfig(t, `
[logger]
level = "debug"
disable_tags = ["event"]

[editor]
tab_width = 8
start_mode = "Normal"

[keys.normal]
"ctrl-x" = "editor.quit"

[theme.styles.Gutter]
fg = "red"
`)
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != path {
		t.Fatalf("Path = %q, want %q", cfg.Path, path)
	}
	if got, want := cfg.Editor.TabWidth, 8; got != want {
		t.Fatalf("TabWidth = %d, want %d", got, want)
	}
	// Untouched keys keep their defaults.
	if got, want := cfg.Editor.ScrollOff, DefaultScrollOff; got != want {
		t.Fatalf("ScrollOff = %d, want %d", got, want)
	}
	if cfg.Editor.StartMode != "normal" {
		t.Fatalf("StartMode = %q", cfg.Editor.StartMode)
	}
	if cfg.Logger.Level != "debug" || len(cfg.Logger.DisabledTags) != 1 {
		t.Fatalf("logger = %+v", cfg.Logger)
	}
	if cfg.Keys.Normal["ctrl-x"] != "editor.quit" {
		t.Fatalf("keys = %+v", cfg.Keys)
	}
	if _, ok := cfg.Theme.Styles["Gutter"]; !ok {
		t.Fatalf("theme styles = %+v", cfg.Theme.Styles)
	}
	if len(cfg.Warnings) != 0 {
		t.Fatalf("unexpected warnings: %v", cfg.Warnings)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"), nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Path != "" {
		t.Fatalf("Path = %q, want empty", cfg.Path)
	}
	if got, want := cfg.Editor.HistoryLimit, DefaultHistoryLimit; got != want {
		t.Fatalf("HistoryLimit = %d, want %d", got, want)
	}
}

func TestLoad_BadTOML(t *testing.T) {
	path := writeConfig(t, "[editor\ntab_width = ")
	if _, err := Load(path, nil); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestLoad_WarningsForUnknownAndInvalid(t *testing.T) {
	path := writeConfig(t, `
[editor]
tab_width = -2
start_mode = "visual"
colour = "blue"
`)
	cfg, err := Load(path, nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Editor.TabWidth != DefaultTabWidth || cfg.Editor.StartMode != DefaultStartMode {
		t.Fatalf("invalid values not reset: %+v", cfg.Editor)
	}
	joined := strings.Join(cfg.Warnings, "\n")
	for _, want := range []string{"editor.colour", "tab_width", "start_mode"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("warnings %q missing %q", joined, want)
		}
	}
}

func TestFlags_OverrideOnlyWhenSet(t *testing.T) {
	path := writeConfig(t, "[editor]\ntab_width = 8\nscroll_off = 5\n")
	f := NewFlags("ebb", io.Discard)
	rest, err := f.Parse([]string{"-config", path, "-tabwidth", "2", "-log-tags", "keymap, buffer", "notes.txt"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(rest) != 1 || rest[0] != "notes.txt" {
		t.Fatalf("rest = %v", rest)
	}
	cfg, err := Load("", f)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := cfg.Editor.TabWidth, 2; got != want {
		t.Fatalf("TabWidth = %d, want %d", got, want)
	}
	if got, want := cfg.Editor.ScrollOff, 5; got != want {
		t.Fatalf("ScrollOff = %d, want %d (flag not set)", got, want)
	}
	if len(cfg.Logger.EnabledTags) != 2 || cfg.Logger.EnabledTags[1] != "buffer" {
		t.Fatalf("EnabledTags = %v", cfg.Logger.EnabledTags)
	}
}

func TestLogFilePath(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Path = filepath.Join("home", "me", ".config", "ebb", "config.toml")
	if got, want := cfg.LogFilePath(), filepath.Join("home", "me", ".config", "ebb", DefaultLogFileName); got != want {
		t.Fatalf("LogFilePath = %q, want %q", got, want)
	}
	cfg.Logger.FilePath = "-"
	if cfg.LogFilePath() != "-" {
		t.Fatalf("explicit path ignored")
	}
}
