// Package output holds the sinks transcripts and notices are delivered to
// outside the interactive display.
package output

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Sink receives transcripts and notices. Implementations must be safe for
// concurrent use.
type Sink interface {
	AppendText(text string)
	AppendNotice(notice string)
}

// Injector delivers a transcript to another application.
type Injector interface {
	Inject(text string) error
}

// Writer writes one line per transcript or notice to an io.Writer.
type Writer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewWriter returns a Writer sink over w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// AppendText writes text followed by a newline.
func (s *Writer) AppendText(text string) {
	s.writeLine(text)
}

// AppendNotice writes notice followed by a newline.
func (s *Writer) AppendNotice(notice string) {
	s.writeLine(notice)
}

func (s *Writer) writeLine(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := fmt.Fprintln(s.w, line); err != nil {
		slog.Warn("[output] write failed", "error", err)
	}
}

// Fanout shows everything on a display sink and additionally hands
// transcripts to an injector. Injections run one at a time so keystrokes
// from overlapping transcriptions never interleave.
type Fanout struct {
	display  Sink
	injector Injector

	mu sync.Mutex
}

// NewFanout returns a Fanout. A nil injector makes it a plain passthrough.
func NewFanout(display Sink, injector Injector) *Fanout {
	return &Fanout{display: display, injector: injector}
}

// AppendText shows text and injects it.
func (f *Fanout) AppendText(text string) {
	f.display.AppendText(text)
	if f.injector == nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.injector.Inject(text); err != nil {
		slog.Error("[output] inject failed", "error", err)
	}
}

// AppendNotice shows notice. Notices are never injected.
func (f *Fanout) AppendNotice(notice string) {
	f.display.AppendNotice(notice)
}
