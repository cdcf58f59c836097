//go:build nowhisper

package transcribe

import (
	"context"
	"errors"

	"github.com/chaz8081/dictaria/internal/stt"
)

var errNoWhisper = errors.New("whisper backend not built (rebuild without -tags nowhisper)")

// WhisperTranscriber is unavailable in builds tagged nowhisper.
type WhisperTranscriber struct{}

// NewWhisperTranscriber always fails in builds tagged nowhisper.
func NewWhisperTranscriber(modelPath string, threads uint) (*WhisperTranscriber, error) {
	return nil, errNoWhisper
}

func (t *WhisperTranscriber) Transcribe(context.Context, stt.Request) (string, error) {
	return "", &stt.EngineError{Backend: "whisper", Err: errNoWhisper}
}

func (t *WhisperTranscriber) Close() error {
	return nil
}
