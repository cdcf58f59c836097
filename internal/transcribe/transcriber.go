// Package transcribe provides speech-to-text backends.
//
// Supported backends:
//   - whisper: whisper.cpp via Go bindings (default), samples passed in memory
//   - openai: any OpenAI-compatible /v1/audio/transcriptions endpoint
//
// Every backend decodes deterministically (greedy, temperature 0, no
// conditioning on previous text) with an explicit language hint.
package transcribe

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/chaz8081/dictaria/internal/config"
	"github.com/chaz8081/dictaria/internal/stt"
)

// Transcriber converts a clip to text.
type Transcriber interface {
	// Transcribe returns the trimmed transcript, which may be empty when no
	// speech was recognized. Failures are *stt.EngineError.
	Transcribe(ctx context.Context, req stt.Request) (string, error)
	// Close releases backend resources.
	Close() error
}

// New creates a Transcriber based on the config backend setting.
func New(cfg *config.TranscribeConfig) (Transcriber, error) {
	switch cfg.Backend {
	case "openai":
		return NewOpenAITranscriber(cfg.OpenAI.BaseURL, os.Getenv(cfg.OpenAI.APIKeyEnv), cfg.OpenAI.Model)
	case "whisper", "":
		return NewWhisperTranscriber(cfg.ModelPath, cfg.Threads)
	default:
		return nil, fmt.Errorf("transcribe: unknown backend %q (supported: whisper, openai)", cfg.Backend)
	}
}

// joinSegments trims each segment, drops empty ones and joins the rest
// with single spaces.
func joinSegments(segments []string) string {
	parts := make([]string, 0, len(segments))
	for _, s := range segments {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
