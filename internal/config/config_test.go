package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Transcribe.Backend != "whisper" {
		t.Errorf("Transcribe.Backend = %q, want %q", cfg.Transcribe.Backend, "whisper")
	}
	if !strings.HasSuffix(cfg.Transcribe.ModelPath, "ggml-medium.bin") {
		t.Errorf("Transcribe.ModelPath = %q, want ggml-medium.bin", cfg.Transcribe.ModelPath)
	}
	if cfg.Hotkey.Mode != "toggle" {
		t.Errorf("Hotkey.Mode = %q, want %q", cfg.Hotkey.Mode, "toggle")
	}
	if strings.Join(cfg.Hotkey.Keys, "+") != "cmd+shift+j" {
		t.Errorf("Hotkey.Keys = %v, want [cmd shift j]", cfg.Hotkey.Keys)
	}
	if cfg.Audio.SampleRate != 16000 {
		t.Errorf("Audio.SampleRate = %d, want 16000", cfg.Audio.SampleRate)
	}
	if cfg.Audio.Channels != 1 {
		t.Errorf("Audio.Channels = %d, want 1", cfg.Audio.Channels)
	}
	if cfg.Audio.SilenceThreshold != 0.01 {
		t.Errorf("Audio.SilenceThreshold = %v, want 0.01", cfg.Audio.SilenceThreshold)
	}
	if cfg.Output.Inject != "none" {
		t.Errorf("Output.Inject = %q, want %q", cfg.Output.Inject, "none")
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "info")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Default().Validate() error = %v", err)
	}
}

func TestLoad(t *testing.T) {
	yamlContent := `
transcribe:
  backend: openai
  openai:
    base_url: http://localhost:8000/v1
    model: large-v3
hotkey:
  keys: ["alt", "d"]
  mode: hold
audio:
  sample_rate: 44100
  channels: 2
  device: usb
  silence_threshold: 0.02
output:
  inject: paste
log_level: debug
`
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Transcribe.Backend != "openai" {
		t.Errorf("Transcribe.Backend = %q, want %q", cfg.Transcribe.Backend, "openai")
	}
	if cfg.Transcribe.OpenAI.BaseURL != "http://localhost:8000/v1" {
		t.Errorf("Transcribe.OpenAI.BaseURL = %q", cfg.Transcribe.OpenAI.BaseURL)
	}
	if cfg.Transcribe.OpenAI.Model != "large-v3" {
		t.Errorf("Transcribe.OpenAI.Model = %q, want %q", cfg.Transcribe.OpenAI.Model, "large-v3")
	}
	// Fields absent from the file keep their defaults.
	if cfg.Transcribe.OpenAI.APIKeyEnv != "OPENAI_API_KEY" {
		t.Errorf("Transcribe.OpenAI.APIKeyEnv = %q, want default", cfg.Transcribe.OpenAI.APIKeyEnv)
	}
	if cfg.Hotkey.Mode != "hold" {
		t.Errorf("Hotkey.Mode = %q, want %q", cfg.Hotkey.Mode, "hold")
	}
	if len(cfg.Hotkey.Keys) != 2 || cfg.Hotkey.Keys[0] != "alt" || cfg.Hotkey.Keys[1] != "d" {
		t.Errorf("Hotkey.Keys = %v, want [alt d]", cfg.Hotkey.Keys)
	}
	if cfg.Audio.SampleRate != 44100 {
		t.Errorf("Audio.SampleRate = %d, want 44100", cfg.Audio.SampleRate)
	}
	if cfg.Audio.Channels != 2 {
		t.Errorf("Audio.Channels = %d, want 2", cfg.Audio.Channels)
	}
	if cfg.Audio.Device != "usb" {
		t.Errorf("Audio.Device = %q, want %q", cfg.Audio.Device, "usb")
	}
	if cfg.Audio.SilenceThreshold != 0.02 {
		t.Errorf("Audio.SilenceThreshold = %v, want 0.02", cfg.Audio.SilenceThreshold)
	}
	if cfg.Output.Inject != "paste" {
		t.Errorf("Output.Inject = %q, want %q", cfg.Output.Inject, "paste")
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, "debug")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestLoadExpandsTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home directory")
	}

	yamlContent := `
transcribe:
  model_path: ~/models/test.bin
prefs_path: ~/dictaria/prefs.yaml
`
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(cfgPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := Load(cfgPath)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := filepath.Join(home, "models/test.bin")
	if cfg.Transcribe.ModelPath != expected {
		t.Errorf("Transcribe.ModelPath = %q, want %q", cfg.Transcribe.ModelPath, expected)
	}
	expected = filepath.Join(home, "dictaria/prefs.yaml")
	if cfg.PrefsPath != expected {
		t.Errorf("PrefsPath = %q, want %q", cfg.PrefsPath, expected)
	}
}

func TestLoadFileNotFound(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("Load() should return error for nonexistent file")
	}
}

func TestLoadMalformed(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(cfgPath, []byte("hotkey: [unclosed"), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}
	if _, err := Load(cfgPath); err == nil {
		t.Error("Load() should return error for malformed YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "unknown backend",
			modify:  func(c *Config) { c.Transcribe.Backend = "vosk" },
			wantErr: true,
		},
		{
			name:    "whisper without model path",
			modify:  func(c *Config) { c.Transcribe.ModelPath = "" },
			wantErr: true,
		},
		{
			name:    "whisper needs 16kHz",
			modify:  func(c *Config) { c.Audio.SampleRate = 44100 },
			wantErr: true,
		},
		{
			name: "openai at 44.1kHz",
			modify: func(c *Config) {
				c.Transcribe.Backend = "openai"
				c.Audio.SampleRate = 44100
			},
			wantErr: false,
		},
		{
			name: "openai without model",
			modify: func(c *Config) {
				c.Transcribe.Backend = "openai"
				c.Transcribe.OpenAI.Model = ""
			},
			wantErr: true,
		},
		{
			name: "openai without key env",
			modify: func(c *Config) {
				c.Transcribe.Backend = "openai"
				c.Transcribe.OpenAI.APIKeyEnv = ""
			},
			wantErr: true,
		},
		{
			name:    "invalid hotkey mode",
			modify:  func(c *Config) { c.Hotkey.Mode = "invalid" },
			wantErr: true,
		},
		{
			name:    "empty hotkey keys",
			modify:  func(c *Config) { c.Hotkey.Keys = nil },
			wantErr: true,
		},
		{
			name:    "zero channels",
			modify:  func(c *Config) { c.Audio.Channels = 0 },
			wantErr: true,
		},
		{
			name:    "silence threshold too high",
			modify:  func(c *Config) { c.Audio.SilenceThreshold = 1 },
			wantErr: true,
		},
		{
			name:    "negative silence threshold",
			modify:  func(c *Config) { c.Audio.SilenceThreshold = -0.1 },
			wantErr: true,
		},
		{
			name:    "invalid inject method",
			modify:  func(c *Config) { c.Output.Inject = "invalid" },
			wantErr: true,
		},
		{
			name:    "copy inject method",
			modify:  func(c *Config) { c.Output.Inject = "copy" },
			wantErr: false,
		},
		{
			name:    "invalid log level",
			modify:  func(c *Config) { c.LogLevel = "invalid" },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestWriteDefault_CreatesFile(t *testing.T) {
	// Use a temp dir as fake home to avoid touching real config
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	path, err := WriteDefault()
	if err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}

	expectedPath := filepath.Join(tmpHome, ".config", "dictaria", "config.yaml")
	if path != expectedPath {
		t.Errorf("WriteDefault() path = %q, want %q", path, expectedPath)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read written config: %v", err)
	}

	if !strings.HasPrefix(string(data), "# dictaria") {
		t.Error("written config should start with header comment")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		t.Fatalf("written config is not valid YAML: %v", err)
	}
	if cfg.Hotkey.Mode != "toggle" {
		t.Errorf("written config Hotkey.Mode = %q, want %q", cfg.Hotkey.Mode, "toggle")
	}
	if cfg.Audio.SampleRate != 16000 {
		t.Errorf("written config Audio.SampleRate = %d, want 16000", cfg.Audio.SampleRate)
	}
}

func TestWriteDefault_NoOpIfExists(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	configDir := filepath.Join(tmpHome, ".config", "dictaria")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatalf("failed to create config dir: %v", err)
	}
	existingContent := []byte("log_level: debug\n")
	configPath := filepath.Join(configDir, "config.yaml")
	if err := os.WriteFile(configPath, existingContent, 0644); err != nil {
		t.Fatalf("failed to write existing config: %v", err)
	}

	path, err := WriteDefault()
	if err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	if path != "" {
		t.Errorf("WriteDefault() path = %q, want empty string for existing file", path)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		t.Fatalf("failed to read config: %v", err)
	}
	if string(data) != string(existingContent) {
		t.Error("WriteDefault() should not overwrite existing config file")
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"unknown", slog.LevelInfo}, // defaults to info
		{"", slog.LevelInfo},        // defaults to info
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseLogLevel(tt.input)
			if got != tt.want {
				t.Errorf("ParseLogLevel(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
