package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Transcribe TranscribeConfig `yaml:"transcribe"`
	Hotkey     HotkeyConfig     `yaml:"hotkey"`
	Audio      AudioConfig      `yaml:"audio"`
	Output     OutputConfig     `yaml:"output"`
	LogLevel   string           `yaml:"log_level"`
	LogFile    string           `yaml:"log_file"`
	PrefsPath  string           `yaml:"prefs_path"`
}

// TranscribeConfig selects and configures the speech-to-text backend.
type TranscribeConfig struct {
	Backend   string       `yaml:"backend"` // "whisper" or "openai"
	ModelPath string       `yaml:"model_path"`
	Threads   uint         `yaml:"threads"` // 0 lets whisper.cpp decide
	OpenAI    OpenAIConfig `yaml:"openai"`
}

// OpenAIConfig configures an OpenAI-compatible transcription endpoint.
type OpenAIConfig struct {
	BaseURL   string `yaml:"base_url"` // empty uses the public API
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
}

// HotkeyConfig holds hotkey-related settings.
type HotkeyConfig struct {
	Keys []string `yaml:"keys"`
	Mode string   `yaml:"mode"` // "toggle" or "hold"
}

// AudioConfig holds audio capture settings.
type AudioConfig struct {
	SampleRate       uint32  `yaml:"sample_rate"`
	Channels         uint32  `yaml:"channels"`
	Device           string  `yaml:"device"` // substring of the device name, empty for default
	SilenceThreshold float32 `yaml:"silence_threshold"`
}

// OutputConfig controls where transcripts go besides the display.
type OutputConfig struct {
	Inject string `yaml:"inject"` // "none", "type", "paste" or "copy"
}

// DefaultConfigDir returns the default config directory path.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "dictaria")
}

// DefaultConfigPath returns the default config file path.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.yaml")
}

// DefaultModelsDir returns the directory whisper models are downloaded to.
func DefaultModelsDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "models"
	}
	return filepath.Join(home, ".local", "share", "dictaria", "models")
}

// DefaultLogFile returns the log file used while the TUI owns the terminal.
func DefaultLogFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "dictaria.log"
	}
	return filepath.Join(home, ".local", "state", "dictaria", "dictaria.log")
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Transcribe: TranscribeConfig{
			Backend:   "whisper",
			ModelPath: filepath.Join(DefaultModelsDir(), "ggml-medium.bin"),
			OpenAI: OpenAIConfig{
				Model:     "whisper-1",
				APIKeyEnv: "OPENAI_API_KEY",
			},
		},
		Hotkey: HotkeyConfig{
			Keys: []string{"cmd", "shift", "j"},
			Mode: "toggle",
		},
		Audio: AudioConfig{
			SampleRate:       16000,
			Channels:         1,
			SilenceThreshold: 0.01,
		},
		Output: OutputConfig{
			Inject: "none",
		},
		LogLevel:  "info",
		LogFile:   DefaultLogFile(),
		PrefsPath: filepath.Join(DefaultConfigDir(), "prefs.yaml"),
	}
}

// Load reads and parses a YAML config file. Missing fields are filled
// with defaults. A leading ~ in paths is expanded to the user's home directory.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.Transcribe.ModelPath = expandTilde(cfg.Transcribe.ModelPath)
	cfg.LogFile = expandTilde(cfg.LogFile)
	cfg.PrefsPath = expandTilde(cfg.PrefsPath)

	return cfg, nil
}

// Validate checks the config for invalid values.
func (c *Config) Validate() error {
	switch c.Transcribe.Backend {
	case "whisper":
		if c.Transcribe.ModelPath == "" {
			return fmt.Errorf("transcribe.model_path must not be empty for the whisper backend")
		}
		if c.Audio.SampleRate != 16000 {
			return fmt.Errorf("audio.sample_rate must be 16000 for the whisper backend, got %d", c.Audio.SampleRate)
		}
	case "openai":
		if c.Transcribe.OpenAI.Model == "" {
			return fmt.Errorf("transcribe.openai.model must not be empty")
		}
		if c.Transcribe.OpenAI.APIKeyEnv == "" {
			return fmt.Errorf("transcribe.openai.api_key_env must not be empty")
		}
	default:
		return fmt.Errorf("transcribe.backend must be \"whisper\" or \"openai\", got %q", c.Transcribe.Backend)
	}

	if len(c.Hotkey.Keys) == 0 {
		return fmt.Errorf("hotkey.keys must not be empty")
	}

	switch c.Hotkey.Mode {
	case "hold", "toggle":
	default:
		return fmt.Errorf("hotkey.mode must be \"hold\" or \"toggle\", got %q", c.Hotkey.Mode)
	}

	if c.Audio.SampleRate == 0 {
		return fmt.Errorf("audio.sample_rate must be > 0")
	}

	if c.Audio.Channels == 0 {
		return fmt.Errorf("audio.channels must be > 0")
	}

	if c.Audio.SilenceThreshold < 0 || c.Audio.SilenceThreshold >= 1 {
		return fmt.Errorf("audio.silence_threshold must be in [0, 1), got %v", c.Audio.SilenceThreshold)
	}

	switch c.Output.Inject {
	case "none", "type", "paste", "copy":
	default:
		return fmt.Errorf("output.inject must be none, type, paste, or copy, got %q", c.Output.Inject)
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
	}

	return nil
}

// ParseLogLevel maps a log_level string to a slog level. Unknown values
// map to info.
func ParseLogLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

const defaultHeader = `# dictaria configuration
# transcribe.backend: whisper (local model) or openai (OpenAI-compatible API)
# hotkey.mode: toggle (press to start, press again to stop) or hold
# output.inject: none, type, paste, or copy
`

// WriteDefault writes the default config to DefaultConfigPath if no file
// exists there. It returns the written path, or "" if a config already exists.
func WriteDefault() (string, error) {
	path := DefaultConfigPath()
	if _, err := os.Stat(path); err == nil {
		return "", nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating config dir: %w", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return "", fmt.Errorf("encoding default config: %w", err)
	}

	if err := os.WriteFile(path, append([]byte(defaultHeader), data...), 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}

// expandTilde replaces a leading ~ with the user's home directory.
func expandTilde(path string) string {
	if !strings.HasPrefix(path, "~") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[1:])
}
