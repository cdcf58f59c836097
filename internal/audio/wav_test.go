package audio

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/wav"
)

func TestWriteWAVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clip.wav")
	clip := Clip{Samples: []float32{0, 0.5, -0.5, 1.5, -2}, SampleRate: 16000}

	if err := WriteWAVFile(path, clip); err != nil {
		t.Fatalf("WriteWAVFile() error = %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open written wav: %v", err)
	}
	defer func() { _ = f.Close() }()

	dec := wav.NewDecoder(f)
	buf, err := dec.FullPCMBuffer()
	if err != nil {
		t.Fatalf("decode written wav: %v", err)
	}

	if dec.SampleRate != 16000 {
		t.Errorf("SampleRate = %d, want 16000", dec.SampleRate)
	}
	if dec.NumChans != 1 {
		t.Errorf("NumChans = %d, want 1", dec.NumChans)
	}

	want := []int{0, 16383, -16383, 32767, -32768}
	if len(buf.Data) != len(want) {
		t.Fatalf("decoded %d samples, want %d", len(buf.Data), len(want))
	}
	for i := range want {
		if buf.Data[i] != want[i] {
			t.Errorf("sample[%d] = %d, want %d", i, buf.Data[i], want[i])
		}
	}
}

func TestEncodeWAVEmptyClip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.wav")
	if err := WriteWAVFile(path, Clip{SampleRate: 16000}); err == nil {
		t.Error("WriteWAVFile() with empty clip should return error")
	}
}
