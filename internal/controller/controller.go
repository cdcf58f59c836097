// Package controller coordinates recording sessions: it starts and stops
// capture on Toggle, gates the finished clip, and dispatches accepted clips
// to the transcriber in the background.
package controller

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/chaz8081/dictaria/internal/audio"
	"github.com/chaz8081/dictaria/internal/silence"
	"github.com/chaz8081/dictaria/internal/stt"
)

// Notices pushed to the Sink.
const (
	MsgSelectLanguage  = "[Please choose a language before recording]"
	MsgNoAudio         = "[No useful audio recorded]"
	MsgNoText          = "[No text recognized]"
	MsgTranscribingFmt = "[Transcribing / Transcribiendo (%s)...]"
	MsgDeviceError     = "[Could not open the microphone]"
)

var (
	// ErrNoLanguage means Toggle was called with no active language.
	ErrNoLanguage = errors.New("controller: no language selected")
	// ErrSilentCapture means the finished clip was empty or below the gate threshold.
	ErrSilentCapture = errors.New("controller: empty or silent capture")
)

// State is the recording state of the controller. Transcription runs in the
// background and does not have a state of its own.
type State int

const (
	Idle State = iota
	Recording
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Sink displays transcripts and notices. Both methods are called from
// background goroutines and must keep the order of calls from one goroutine.
type Sink interface {
	AppendText(text string)
	AppendNotice(notice string)
}

// Capture is the microphone stream.
type Capture interface {
	Start() error
	Stop() error
}

// Queue holds the chunks captured since the last drain.
type Queue interface {
	DrainAll() []audio.Chunk
}

// Gate decides whether a clip is worth transcribing.
type Gate interface {
	Accept(clip audio.Clip) bool
}

// Transcriber turns an accepted clip into text.
type Transcriber interface {
	Transcribe(ctx context.Context, req stt.Request) (string, error)
}

// Languages reports the active language code, "" when none is selected.
type Languages interface {
	Active() string
}

// Session is one start-to-stop recording cycle.
type Session struct {
	ID       string
	Started  time.Time
	Language string
}

// Options wires a Controller to its collaborators. All fields except
// OnStateChange are required.
type Options struct {
	Capture     Capture
	Queue       Queue
	Gate        Gate
	Transcriber Transcriber
	Sink        Sink
	Languages   Languages
	SampleRate  uint32

	// OnStateChange is called with the new state after every transition,
	// while the controller lock is held. It must not call back into the
	// Controller.
	OnStateChange func(recording bool)
}

// Controller is the recording state machine. Toggle may be called
// concurrently from any number of input sources.
type Controller struct {
	opts Options

	mu      sync.Mutex
	state   State
	session *Session

	tasks sync.WaitGroup
}

// New returns an idle Controller.
func New(opts Options) *Controller {
	return &Controller{opts: opts}
}

// Toggle starts a recording when idle and finishes it when recording.
// It never blocks on transcription.
func (c *Controller) Toggle() {
	c.mu.Lock()
	var notice string
	switch c.state {
	case Idle:
		notice = c.startLocked()
	case Recording:
		notice = c.stopLocked()
	}
	c.mu.Unlock()

	if notice != "" {
		c.opts.Sink.AppendNotice(notice)
	}
}

// IsRecording reports whether a session is active.
func (c *Controller) IsRecording() bool {
	return c.State() == Recording
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Wait blocks until every dispatched transcription has delivered its result.
func (c *Controller) Wait() {
	c.tasks.Wait()
}

// Shutdown discards an active recording and waits for pending transcriptions.
func (c *Controller) Shutdown() {
	c.mu.Lock()
	if c.state == Recording {
		if err := c.opts.Capture.Stop(); err != nil {
			slog.Warn("[controller] stop capture on shutdown failed", "error", err)
		}
		c.opts.Queue.DrainAll()
		slog.Info("[controller] recording discarded on shutdown", "session", c.session.ID)
		c.session = nil
		c.setStateLocked(Idle)
	}
	c.mu.Unlock()

	c.Wait()
}

// startLocked returns the notice to show, if any.
func (c *Controller) startLocked() string {
	lang := c.opts.Languages.Active()
	if lang == "" {
		slog.Info("[controller] not recording", "error", ErrNoLanguage)
		return MsgSelectLanguage
	}

	if stale := c.opts.Queue.DrainAll(); len(stale) > 0 {
		slog.Debug("[controller] discarded stale chunks", "count", len(stale))
	}

	if err := c.opts.Capture.Start(); err != nil {
		slog.Error("[controller] could not start capture", "error", err)
		return MsgDeviceError
	}

	c.session = &Session{
		ID:       uuid.NewString(),
		Started:  time.Now(),
		Language: lang,
	}
	c.setStateLocked(Recording)
	slog.Info("[controller] recording started", "session", c.session.ID, "language", lang)
	return ""
}

// stopLocked returns the notice to show, if any.
func (c *Controller) stopLocked() string {
	sess := c.session
	c.session = nil
	c.setStateLocked(Idle)

	stopErr := c.opts.Capture.Stop()
	chunks := c.opts.Queue.DrainAll()
	if stopErr != nil {
		slog.Error("[controller] could not stop capture, recording discarded",
			"session", sess.ID, "chunks", len(chunks), "error", stopErr)
		return MsgDeviceError
	}

	clip := audio.Concat(chunks, c.opts.SampleRate)
	slog.Info("[controller] recording stopped",
		"session", sess.ID,
		"elapsed", time.Since(sess.Started).Round(time.Millisecond),
		"audio", clip.Duration().Round(time.Millisecond),
		"chunks", len(chunks))

	if !c.opts.Gate.Accept(clip) {
		slog.Info("[controller] clip rejected",
			"session", sess.ID, "peak", silence.Peak(clip.Samples), "error", ErrSilentCapture)
		return MsgNoAudio
	}

	c.tasks.Add(1)
	go c.transcribe(sess, clip)
	return ""
}

func (c *Controller) setStateLocked(s State) {
	c.state = s
	if c.opts.OnStateChange != nil {
		c.opts.OnStateChange(s == Recording)
	}
}

// transcribe runs one clip to completion and reports the outcome to the sink.
func (c *Controller) transcribe(sess *Session, clip audio.Clip) {
	defer c.tasks.Done()

	c.opts.Sink.AppendNotice(fmt.Sprintf(MsgTranscribingFmt, sess.Language))

	start := time.Now()
	text, err := c.runEngine(stt.Request{Clip: clip, Language: sess.Language})
	elapsed := time.Since(start).Round(time.Millisecond)
	if err != nil {
		slog.Error("[controller] transcription failed", "session", sess.ID, "elapsed", elapsed, "error", err)
		text = ""
	}

	if text == "" {
		slog.Info("[controller] no text recognized", "session", sess.ID, "elapsed", elapsed)
		c.opts.Sink.AppendNotice(MsgNoText)
		return
	}

	slog.Info("[controller] transcribed", "session", sess.ID, "elapsed", elapsed, "chars", len(text))
	c.opts.Sink.AppendText(text)
}

// runEngine calls the transcriber, converting a panic into an error.
func (c *Controller) runEngine(req stt.Request) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &stt.EngineError{Backend: "unknown", Err: fmt.Errorf("panic: %v", r)}
		}
	}()
	return c.opts.Transcriber.Transcribe(context.Background(), req)
}
