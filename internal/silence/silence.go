// Package silence decides whether a finished recording carries usable signal.
//
// The check is a peak-amplitude heuristic. It only filters total silence and
// disconnected or misconfigured microphones; it is not a voice activity
// detector.
package silence

import (
	"math"

	"github.com/chaz8081/dictaria/internal/audio"
)

// DefaultThreshold is the minimum peak on a [-1, 1] scale for a clip to be
// transcribed.
const DefaultThreshold = 0.01

// Gate rejects empty and near-silent clips.
type Gate struct {
	Threshold float32
}

// NewGate returns a Gate using threshold, or DefaultThreshold when
// threshold is not positive.
func NewGate(threshold float32) *Gate {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Gate{Threshold: threshold}
}

// Accept reports whether clip should be sent for transcription.
func (g *Gate) Accept(clip audio.Clip) bool {
	if clip.Empty() {
		return false
	}
	return Peak(clip.Samples) >= g.Threshold
}

// Peak returns the largest absolute sample value.
func Peak(samples []float32) float32 {
	var peak float32
	for _, s := range samples {
		if a := float32(math.Abs(float64(s))); a > peak {
			peak = a
		}
	}
	return peak
}
