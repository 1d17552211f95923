package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "loupe.yaml"), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadDefaultsOnly(t *testing.T) {
	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("expected default theme auto, got %q", cfg.UI.Theme)
	}
	if cfg.Search.DebounceMs != 1000 {
		t.Errorf("expected default debounce 1000ms, got %d", cfg.Search.DebounceMs)
	}
	if cfg.Session.Persist == nil || !*cfg.Session.Persist {
		t.Error("expected session persistence on by default")
	}
}

func TestLoadMergesFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "ui:\n  theme: dark\nsearch:\n  debounce_ms: 250\n")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Theme != "dark" {
		t.Errorf("expected theme dark, got %q", cfg.UI.Theme)
	}
	if cfg.Search.DebounceMs != 250 {
		t.Errorf("expected debounce 250, got %d", cfg.Search.DebounceMs)
	}
	// Untouched fields keep defaults.
	if cfg.UI.LogScrollSpeed != 3 {
		t.Errorf("expected default scroll speed 3, got %d", cfg.UI.LogScrollSpeed)
	}
}

func TestLoadBoolPointerOverride(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "session:\n  persist: false\ntelemetry:\n  enabled: false\n")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Session.Persist == nil || *cfg.Session.Persist {
		t.Error("expected persist=false to override the default")
	}
	if cfg.Telemetry.Enabled == nil || *cfg.Telemetry.Enabled {
		t.Error("expected telemetry disabled")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "ui: [not a map\n")

	if _, err := LoadFrom(dir); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestValidateRejectsBadTheme(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "ui:\n  theme: solarized\n")

	if _, err := LoadFrom(dir); err == nil {
		t.Error("expected validation error for unknown theme")
	}
}

func TestValidateRejectsNonPositiveDebounce(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "search:\n  debounce_ms: -5\n")

	if _, err := LoadFrom(dir); err == nil {
		t.Error("expected validation error for negative debounce")
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("LOUPE_THEME", "light")
	t.Setenv("LOUPE_DEBOUNCE_MS", "500")
	t.Setenv("LOUPE_NO_TELEMETRY", "1")

	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("expected env theme light, got %q", cfg.UI.Theme)
	}
	if cfg.Search.DebounceMs != 500 {
		t.Errorf("expected env debounce 500, got %d", cfg.Search.DebounceMs)
	}
	if cfg.Telemetry.Enabled == nil || *cfg.Telemetry.Enabled {
		t.Error("expected LOUPE_NO_TELEMETRY to disable telemetry")
	}
}

func TestEnvOverrideInvalidIntIgnored(t *testing.T) {
	t.Setenv("LOUPE_DEBOUNCE_MS", "soon")

	cfg, err := LoadFrom(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Search.DebounceMs != 1000 {
		t.Errorf("expected invalid env int ignored, got %d", cfg.Search.DebounceMs)
	}
}

func TestEnvOverridesBeatFile(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "ui:\n  theme: dark\n")
	t.Setenv("LOUPE_THEME", "light")

	cfg, err := LoadFrom(dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UI.Theme != "light" {
		t.Errorf("expected env to beat file, got %q", cfg.UI.Theme)
	}
}
