// Command dictaria is a push-to-talk dictation tool: toggle recording from
// the terminal UI or a global hotkey and the transcript appears on screen.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/chaz8081/dictaria/internal/audio"
	"github.com/chaz8081/dictaria/internal/config"
	"github.com/chaz8081/dictaria/internal/controller"
	"github.com/chaz8081/dictaria/internal/hotkey"
	"github.com/chaz8081/dictaria/internal/inject"
	"github.com/chaz8081/dictaria/internal/lang"
	"github.com/chaz8081/dictaria/internal/models"
	"github.com/chaz8081/dictaria/internal/output"
	"github.com/chaz8081/dictaria/internal/silence"
	"github.com/chaz8081/dictaria/internal/transcribe"
	"github.com/chaz8081/dictaria/internal/tui"
)

type flags struct {
	configPath    string
	initConfig    bool
	downloadModel string
	listDevices   bool
	headless      bool
	language      string
	noHotkey      bool
}

func main() {
	var f flags
	flag.StringVar(&f.configPath, "config", "", "path to config file (default: ~/.config/dictaria/config.yaml)")
	flag.BoolVar(&f.initConfig, "init-config", false, "write the default config file and exit")
	flag.StringVar(&f.downloadModel, "download-model", "", "download a whisper model ("+strings.Join(models.Names, ", ")+") and exit")
	flag.BoolVar(&f.listDevices, "list-devices", false, "list capture devices and exit")
	flag.BoolVar(&f.headless, "headless", false, "run without the terminal UI; transcripts go to stdout")
	flag.StringVar(&f.language, "lang", "", "language to dictate in (e.g. es, en, ja)")
	flag.BoolVar(&f.noHotkey, "no-hotkey", false, "do not register the global hotkey")
	flag.Parse()

	os.Exit(run(f))
}

func run(f flags) int {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "warning: .env: %v\n", err)
	}

	switch {
	case f.initConfig:
		path, err := config.WriteDefault()
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			return 1
		}
		if path == "" {
			fmt.Printf("Config already exists at %s\n", config.DefaultConfigPath())
		} else {
			fmt.Printf("Wrote %s\n", path)
		}
		return 0

	case f.downloadModel != "":
		return downloadModel(f.downloadModel)
	}

	cfg, err := loadConfig(f.configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		return 1
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config validation: %v\n", err)
		return 1
	}

	if f.listDevices {
		return printDevices(cfg)
	}

	closeLog, err := setupLogging(cfg, f.headless)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logging: %v\n", err)
		return 1
	}
	defer closeLog()

	queue := audio.NewFrameQueue()
	capture, err := audio.NewCapture(queue, audio.CaptureConfig{
		SampleRate: cfg.Audio.SampleRate,
		Channels:   cfg.Audio.Channels,
		Device:     cfg.Audio.Device,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize audio capture: %v\n\nEnsure microphone access is granted and audio.device matches a device from -list-devices.\n", err)
		return 1
	}
	defer capture.Close()

	prefs, err := config.LoadPrefs(cfg.PrefsPath)
	if err != nil {
		slog.Warn("ignoring preferences", "path", cfg.PrefsPath, "error", err)
	}
	langs := lang.NewSelection(prefs.Favorites, prefs.ActiveLanguage)
	if f.language != "" {
		if err := langs.SetActive(f.language); err != nil {
			fmt.Fprintf(os.Stderr, "-lang %s: %v\n", f.language, err)
			return 1
		}
	}

	fmt.Fprintf(os.Stderr, "Loading %s transcriber...\n", cfg.Transcribe.Backend)
	slog.Info("loading transcriber", "backend", cfg.Transcribe.Backend)
	loadStart := time.Now()
	transcriber, err := transcribe.New(&cfg.Transcribe)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load transcriber: %v\n\nCheck transcribe.model_path, or run 'dictaria -download-model medium'.\n", err)
		return 1
	}
	defer transcriber.Close()
	slog.Info("transcriber ready", "elapsed", time.Since(loadStart).Round(time.Millisecond))

	var injector output.Injector
	if cfg.Output.Inject != inject.MethodNone {
		inj, err := inject.NewInjector(cfg.Output.Inject)
		if err != nil {
			fmt.Fprintf(os.Stderr, "output: %v\n", err)
			return 1
		}
		injector = inj
	}

	opts := controller.Options{
		Capture:     capture,
		Queue:       queue,
		Gate:        silence.NewGate(cfg.Audio.SilenceThreshold),
		Transcriber: transcriber,
		Languages:   langs,
		SampleRate:  cfg.Audio.SampleRate,
	}

	var listener *hotkey.Listener
	if !f.noHotkey {
		listener = hotkey.NewListener(cfg.Hotkey.Keys, cfg.Hotkey.Mode)
	}

	if f.headless {
		return runHeadless(cfg, opts, injector, listener, langs)
	}
	return runTUI(cfg, opts, injector, listener, langs, prefs)
}

// runTUI owns the terminal until the user quits.
func runTUI(cfg *config.Config, opts controller.Options, injector output.Injector, listener *hotkey.Listener, langs *lang.Selection, prefs config.Prefs) int {
	var ctrl *controller.Controller

	hotkeyLabel := ""
	if listener != nil {
		hotkeyLabel = hotkey.Describe(cfg.Hotkey.Keys)
	}

	var onReady func()
	if listener != nil {
		// Hotkey toggles Send into the program, so they start only once
		// the event loop is running.
		onReady = func() { startHotkey(listener, ctrl) }
	}

	p := tea.NewProgram(tui.New(tui.Options{
		Toggle:    func() { ctrl.Toggle() },
		OnReady:   onReady,
		Languages: langs,
		Prefs:     prefs,
		PrefsPath: cfg.PrefsPath,
		Hotkey:    hotkeyLabel,
		Backend:   cfg.Transcribe.Backend,
	}), tea.WithAltScreen())

	display := tui.NewDisplay(p)
	opts.Sink = output.NewFanout(display, injector)
	opts.OnStateChange = display.SetRecording
	ctrl = controller.New(opts)

	_, err := p.Run()

	ctrl.Shutdown()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ui: %v\n", err)
		return 1
	}
	return 0
}

// runHeadless prints transcripts to stdout. Enter on stdin toggles
// recording, as does the global hotkey.
func runHeadless(cfg *config.Config, opts controller.Options, injector output.Injector, listener *hotkey.Listener, langs *lang.Selection) int {
	opts.Sink = output.NewFanout(output.NewWriter(os.Stdout), injector)
	opts.OnStateChange = func(recording bool) {
		if recording {
			fmt.Fprintln(os.Stderr, tui.MsgListening)
		}
	}
	ctrl := controller.New(opts)

	hint := "Press Enter"
	if listener != nil {
		startHotkey(listener, ctrl)
		hint += " or " + hotkey.Describe(cfg.Hotkey.Keys)
	}
	if langs.Active() == "" {
		fmt.Fprintln(os.Stderr, "No language selected; pass -lang to choose one.")
	}
	fmt.Fprintf(os.Stderr, "%s to dictate. Ctrl+C to quit.\n", hint)

	stdinDone := make(chan struct{})
	go func() {
		defer close(stdinDone)
		scanner := bufio.NewScanner(os.Stdin)
		for scanner.Scan() {
			ctrl.Toggle()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		slog.Info("shutting down", "signal", sig)
	case <-stdinDone:
		slog.Info("stdin closed, shutting down")
	}

	// Skip listener.Stop: gohook's C cleanup can crash, and the OS
	// reclaims the event hook on exit.
	ctrl.Shutdown()
	return 0
}

func startHotkey(listener *hotkey.Listener, ctrl *controller.Controller) {
	go listener.Start()
	go func() {
		for ev := range listener.Events() {
			hotkey.Dispatch(ev, ctrl)
		}
	}()
}

// loadConfig loads the config from the specified path, or falls back to
// the default config path, or uses built-in defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.Load(path)
	}

	defaultPath := config.DefaultConfigPath()
	if _, err := os.Stat(defaultPath); err == nil {
		cfg, err := config.Load(defaultPath)
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", defaultPath, err)
		}
		return cfg, nil
	}

	return config.Default(), nil
}

// setupLogging installs the default slog logger and returns its cleanup.
// The TUI owns the terminal, so in that mode logs go to cfg.LogFile.
func setupLogging(cfg *config.Config, headless bool) (func() error, error) {
	opts := &slog.HandlerOptions{Level: config.ParseLogLevel(cfg.LogLevel)}

	if headless {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, opts)))
		return func() error { return nil }, nil
	}

	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0755); err != nil {
		return nil, fmt.Errorf("creating log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("opening log file: %w", err)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(f, opts)))
	return f.Close, nil
}

func downloadModel(name string) int {
	d := models.NewDownloader(config.DefaultModelsDir())
	d.Progress = os.Stdout

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Downloading whisper model %q...\n", name)
	path, err := d.Download(ctx, name)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	fmt.Printf("Model ready: %s\n", path)
	fmt.Printf("Set transcribe.model_path to this file in %s\n", config.DefaultConfigPath())
	return 0
}

func printDevices(cfg *config.Config) int {
	capture, err := audio.NewCapture(audio.NewFrameQueue(), audio.CaptureConfig{
		SampleRate: cfg.Audio.SampleRate,
		Channels:   cfg.Audio.Channels,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	defer capture.Close()

	devices, err := capture.Devices()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return 1
	}
	for _, d := range devices {
		marker := " "
		if d.Default {
			marker = "*"
		}
		fmt.Printf("%s %s\n", marker, d.Name)
	}
	return 0
}
