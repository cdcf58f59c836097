package audio

import "time"

// Clip is a finished mono recording. It is not modified after Concat
// produces it.
type Clip struct {
	Samples    []float32
	SampleRate uint32
}

// Concat joins chunks, in the order given, into a single clip.
func Concat(chunks []Chunk, sampleRate uint32) Clip {
	n := 0
	for _, c := range chunks {
		n += len(c.Samples)
	}

	samples := make([]float32, 0, n)
	for _, c := range chunks {
		samples = append(samples, c.Samples...)
	}

	return Clip{Samples: samples, SampleRate: sampleRate}
}

// Empty reports whether the clip holds no samples.
func (c Clip) Empty() bool {
	return len(c.Samples) == 0
}

// Duration returns the playback length of the clip.
func (c Clip) Duration() time.Duration {
	if c.SampleRate == 0 {
		return 0
	}
	return time.Duration(len(c.Samples)) * time.Second / time.Duration(c.SampleRate)
}
