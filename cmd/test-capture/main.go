// Command test-capture is a manual test for microphone capture and the
// silence gate. It records for a few seconds, then prints the clip length,
// its peak amplitude, and whether it would be transcribed.
//
// Usage:
//
//	go run ./cmd/test-capture [--seconds 3] [--device name] [--out clip.wav]
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/chaz8081/dictaria/internal/audio"
	"github.com/chaz8081/dictaria/internal/silence"
)

const sampleRate = 16000

func main() {
	seconds := flag.Int("seconds", 3, "recording length")
	device := flag.String("device", "", "capture device name (substring), empty for default")
	threshold := flag.Float64("threshold", silence.DefaultThreshold, "silence gate threshold")
	out := flag.String("out", "", "write the clip to this WAV file")
	flag.Parse()

	os.Exit(run(*seconds, *device, float32(*threshold), *out))
}

// run records and reports, returning the process exit code so deferred
// cleanup runs before exit.
func run(seconds int, device string, threshold float32, out string) int {
	queue := audio.NewFrameQueue()
	capture, err := audio.NewCapture(queue, audio.CaptureConfig{
		SampleRate: sampleRate,
		Channels:   1,
		Device:     device,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer capture.Close()

	if err := capture.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	fmt.Printf("Recording for %ds, say something...\n", seconds)
	time.Sleep(time.Duration(seconds) * time.Second)
	if err := capture.Stop(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	if err := report(os.Stdout, queue.DrainAll(), threshold, out); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// report prints the clip summary and gate verdict, and writes the clip to
// out when it is set.
func report(w io.Writer, chunks []audio.Chunk, threshold float32, out string) error {
	clip := audio.Concat(chunks, sampleRate)
	gate := silence.NewGate(threshold)

	fmt.Fprintf(w, "  Chunks:   %d\n", len(chunks))
	fmt.Fprintf(w, "  Duration: %s\n", clip.Duration().Round(time.Millisecond))
	fmt.Fprintf(w, "  Peak:     %.4f\n", silence.Peak(clip.Samples))
	fmt.Fprintf(w, "  Accepted: %v (threshold %.4f)\n", gate.Accept(clip), gate.Threshold)

	if out == "" {
		return nil
	}
	if err := audio.WriteWAVFile(out, clip); err != nil {
		return err
	}
	fmt.Fprintf(w, "  Wrote %s\n", out)
	return nil
}
