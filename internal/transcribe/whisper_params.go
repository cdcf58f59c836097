package transcribe

import "fmt"

const whisperSampleRate = 16000

// decodeParams is the subset of a whisper.cpp context used to set up a decode.
type decodeParams interface {
	SetLanguage(string) error
	SetTranslate(bool)
	SetBeamSize(n int)
	SetTemperature(t float32)
	SetTemperatureFallback(t float32)
	SetMaxContext(n int)
	SetThreads(uint)
}

// applyDecodeParams configures greedy decoding at temperature 0 with no
// temperature fallback and no conditioning on previous text, so the same
// clip always yields the same transcript.
func applyDecodeParams(p decodeParams, language string, threads uint) error {
	if err := p.SetLanguage(language); err != nil {
		return fmt.Errorf("set language %q: %w", language, err)
	}
	p.SetTranslate(false)
	p.SetBeamSize(1)
	p.SetTemperature(0)
	p.SetTemperatureFallback(0)
	p.SetMaxContext(0)
	if threads > 0 {
		p.SetThreads(threads)
	}
	return nil
}
