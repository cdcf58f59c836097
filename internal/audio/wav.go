package audio

import (
	"errors"
	"fmt"
	"io"
	"os"

	goaudio "github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavBitDepth = 16

// EncodeWAV writes clip as 16-bit mono PCM WAV.
func EncodeWAV(w io.WriteSeeker, clip Clip) error {
	if clip.Empty() {
		return errors.New("audio: encode wav: empty clip")
	}

	enc := wav.NewEncoder(w, int(clip.SampleRate), wavBitDepth, 1, 1)
	buf := &goaudio.IntBuffer{
		Format: &goaudio.Format{
			NumChannels: 1,
			SampleRate:  int(clip.SampleRate),
		},
		Data:           make([]int, len(clip.Samples)),
		SourceBitDepth: wavBitDepth,
	}
	for i, s := range clip.Samples {
		buf.Data[i] = floatToPCM16(s)
	}

	if err := enc.Write(buf); err != nil {
		_ = enc.Close()
		return fmt.Errorf("audio: encode wav: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("audio: finalize wav: %w", err)
	}
	return nil
}

// WriteWAVFile encodes clip into a new file at path.
func WriteWAVFile(path string, clip Clip) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("audio: create %s: %w", path, err)
	}
	if err := EncodeWAV(f, clip); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// floatToPCM16 scales a [-1, 1] sample to a signed 16-bit value, clamping
// anything outside the range.
func floatToPCM16(s float32) int {
	switch {
	case s >= 1:
		return 32767
	case s <= -1:
		return -32768
	}
	return int(s * 32767)
}
