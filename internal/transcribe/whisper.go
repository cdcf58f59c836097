//go:build !nowhisper

package transcribe

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	whisper "github.com/ggerganov/whisper.cpp/bindings/go/pkg/whisper"

	"github.com/chaz8081/dictaria/internal/stt"
)

// WhisperTranscriber wraps a whisper.cpp model for speech-to-text.
type WhisperTranscriber struct {
	model   whisper.Model
	threads uint

	// whisper.cpp decodes one clip at a time per model.
	mu sync.Mutex
}

// NewWhisperTranscriber loads a whisper model from the given path.
// threads of 0 keeps the whisper.cpp default. The caller must call Close() when done.
func NewWhisperTranscriber(modelPath string, threads uint) (*WhisperTranscriber, error) {
	model, err := whisper.New(modelPath)
	if err != nil {
		return nil, fmt.Errorf("transcribe: load whisper model %q: %w", modelPath, err)
	}
	return &WhisperTranscriber{model: model, threads: threads}, nil
}

// Close releases the whisper model resources.
func (t *WhisperTranscriber) Close() error {
	if t.model != nil {
		return t.model.Close()
	}
	return nil
}

// Transcribe decodes mono 16kHz samples with the requested language.
func (t *WhisperTranscriber) Transcribe(ctx context.Context, req stt.Request) (string, error) {
	if req.Clip.SampleRate != whisperSampleRate {
		return "", t.fail(fmt.Errorf("sample rate %d, want %d", req.Clip.SampleRate, whisperSampleRate))
	}
	if err := ctx.Err(); err != nil {
		return "", t.fail(err)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	wctx, err := t.model.NewContext()
	if err != nil {
		return "", t.fail(fmt.Errorf("create context: %w", err))
	}

	if err := applyDecodeParams(wctx, req.Language, t.threads); err != nil {
		return "", t.fail(err)
	}

	if err := wctx.Process(req.Clip.Samples, nil, nil, nil); err != nil {
		return "", t.fail(fmt.Errorf("process: %w", err))
	}

	var segments []string
	for {
		seg, err := wctx.NextSegment()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", t.fail(fmt.Errorf("next segment: %w", err))
		}
		segments = append(segments, seg.Text)
	}

	text := joinSegments(segments)
	slog.Debug("[whisper] transcribed", "language", req.Language, "segments", len(segments), "chars", len(text))
	return text, nil
}

func (t *WhisperTranscriber) fail(err error) error {
	return &stt.EngineError{Backend: "whisper", Err: err}
}
