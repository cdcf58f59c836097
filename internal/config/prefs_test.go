package config

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
)

func TestLoadPrefsMissingFile(t *testing.T) {
	p, err := LoadPrefs(filepath.Join(t.TempDir(), "prefs.yaml"))
	if err != nil {
		t.Fatalf("LoadPrefs() error = %v", err)
	}
	if p.Theme != "dark" || !p.ShowHelp {
		t.Errorf("LoadPrefs() = %+v, want defaults", p)
	}
}

func TestSaveAndLoadPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "prefs.yaml")
	want := Prefs{
		Theme:          "light",
		Favorites:      []string{"es", "ja"},
		ActiveLanguage: "ja",
		ShowHelp:       false,
	}

	if err := SavePrefs(path, want); err != nil {
		t.Fatalf("SavePrefs() error = %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Errorf("temp file left behind: %v", err)
	}

	got, err := LoadPrefs(path)
	if err != nil {
		t.Fatalf("LoadPrefs() error = %v", err)
	}
	if got.Theme != want.Theme || got.ActiveLanguage != want.ActiveLanguage || got.ShowHelp != want.ShowHelp {
		t.Errorf("LoadPrefs() = %+v, want %+v", got, want)
	}
	if !slices.Equal(got.Favorites, want.Favorites) {
		t.Errorf("Favorites = %v, want %v", got.Favorites, want.Favorites)
	}
}

func TestLoadPrefsUnknownTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	if err := os.WriteFile(path, []byte("theme: neon\n"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPrefs(path)
	if err != nil {
		t.Fatalf("LoadPrefs() error = %v", err)
	}
	if p.Theme != "dark" {
		t.Errorf("Theme = %q, want dark", p.Theme)
	}
	// show_help is absent from the file and keeps its default.
	if !p.ShowHelp {
		t.Error("ShowHelp should default to true")
	}
}

func TestLoadPrefsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	if err := os.WriteFile(path, []byte("favorites: {"), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadPrefs(path)
	if err == nil {
		t.Error("LoadPrefs() should fail on malformed YAML")
	}
	if p.Theme != "dark" {
		t.Errorf("LoadPrefs() on error should return defaults, got %+v", p)
	}
}
