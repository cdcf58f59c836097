// Package stt holds the request and error types shared by the recording
// controller and the speech-to-text backends. It has no native dependencies.
package stt

import (
	"fmt"

	"github.com/chaz8081/dictaria/internal/audio"
)

// Request is one finished clip and the language to decode it in.
type Request struct {
	Clip     audio.Clip
	Language string
}

// EngineError reports a failed model invocation.
type EngineError struct {
	Backend string
	Err     error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("transcribe: %s: %v", e.Backend, e.Err)
}

func (e *EngineError) Unwrap() error {
	return e.Err
}
