package transcribe

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sashabaranov/go-openai"

	"github.com/chaz8081/dictaria/internal/audio"
	"github.com/chaz8081/dictaria/internal/stt"
)

// transcriptionClient is the part of *openai.Client used here.
type transcriptionClient interface {
	CreateTranscription(ctx context.Context, req openai.AudioRequest) (openai.AudioResponse, error)
}

// OpenAITranscriber sends clips to an OpenAI-compatible transcription
// endpoint. Each clip is written to a temporary WAV file for the upload.
type OpenAITranscriber struct {
	client  transcriptionClient
	model   string
	tempDir string // "" uses os.TempDir
}

// NewOpenAITranscriber creates a transcriber for baseURL. An empty baseURL
// targets the public OpenAI API, which requires apiKey; self-hosted
// servers may accept an empty key.
func NewOpenAITranscriber(baseURL, apiKey, model string) (*OpenAITranscriber, error) {
	if baseURL == "" && apiKey == "" {
		return nil, errors.New("transcribe: openai backend needs an API key (set it in the environment or .env)")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return &OpenAITranscriber{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}, nil
}

// Close is a no-op; the HTTP client holds no resources that need releasing.
func (t *OpenAITranscriber) Close() error {
	return nil
}

// Transcribe uploads the clip and returns the joined transcript. The
// temporary WAV file is removed on every path.
func (t *OpenAITranscriber) Transcribe(ctx context.Context, req stt.Request) (string, error) {
	f, err := os.CreateTemp(t.tempDir, "dictaria-*.wav")
	if err != nil {
		return "", t.fail(fmt.Errorf("create temp file: %w", err))
	}
	path := f.Name()
	defer func() {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			slog.Warn("[openai] could not remove temp file", "path", path, "error", err)
		}
	}()

	if err := audio.EncodeWAV(f, req.Clip); err != nil {
		f.Close()
		return "", t.fail(err)
	}
	if err := f.Close(); err != nil {
		return "", t.fail(fmt.Errorf("close temp file: %w", err))
	}

	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:       t.model,
		FilePath:    path,
		Language:    req.Language,
		Temperature: 0,
		Format:      openai.AudioResponseFormatJSON,
	})
	if err != nil {
		return "", t.fail(err)
	}

	if len(resp.Segments) > 0 {
		segments := make([]string, len(resp.Segments))
		for i, s := range resp.Segments {
			segments[i] = s.Text
		}
		return joinSegments(segments), nil
	}
	return strings.TrimSpace(resp.Text), nil
}

func (t *OpenAITranscriber) fail(err error) error {
	return &stt.EngineError{Backend: "openai", Err: err}
}
