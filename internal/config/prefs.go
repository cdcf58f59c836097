package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Prefs is the UI state persisted between runs.
type Prefs struct {
	Theme          string   `yaml:"theme"` // "dark" or "light"
	Favorites      []string `yaml:"favorites"`
	ActiveLanguage string   `yaml:"active_language"`
	ShowHelp       bool     `yaml:"show_help"`
}

// DefaultPrefs returns the preferences of a first run.
func DefaultPrefs() Prefs {
	return Prefs{
		Theme:    "dark",
		ShowHelp: true,
	}
}

// LoadPrefs reads preferences from path. A missing or unreadable file
// yields the defaults; only a malformed file is an error.
func LoadPrefs(path string) (Prefs, error) {
	p := DefaultPrefs()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return p, nil
	}
	if err != nil {
		return p, fmt.Errorf("reading prefs file: %w", err)
	}

	if err := yaml.Unmarshal(data, &p); err != nil {
		return DefaultPrefs(), fmt.Errorf("parsing prefs file: %w", err)
	}
	if p.Theme != "light" {
		p.Theme = "dark"
	}
	return p, nil
}

// SavePrefs writes preferences to path atomically.
func SavePrefs(path string, p Prefs) error {
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encoding prefs: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating prefs dir: %w", err)
	}

	tmpPath := path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("writing prefs file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("replacing prefs file: %w", err)
	}
	return nil
}
