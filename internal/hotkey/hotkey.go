// Package hotkey provides a global hotkey listener using gohook.
// In "toggle" mode every press toggles recording; in "hold" mode the key
// press starts a recording and the release finishes it.
package hotkey

import (
	"strings"
	"sync"

	hook "github.com/robotn/gohook"
)

// EventType is the kind of hotkey activity.
type EventType int

const (
	// EventToggle is a key press in toggle mode.
	EventToggle EventType = iota
	// EventPress is a key press in hold mode.
	EventPress
	// EventRelease is a key release in hold mode.
	EventRelease
)

func (t EventType) String() string {
	switch t {
	case EventToggle:
		return "toggle"
	case EventPress:
		return "press"
	case EventRelease:
		return "release"
	default:
		return "unknown"
	}
}

// Event is emitted on the channel returned by Events.
type Event struct {
	Type EventType
}

// Recorder is the recording state machine driven by hotkey events.
type Recorder interface {
	Toggle()
	IsRecording() bool
}

// Dispatch applies ev to r. Press and release only toggle when the state
// needs to change, so key auto-repeat is harmless.
func Dispatch(ev Event, r Recorder) {
	switch ev.Type {
	case EventToggle:
		r.Toggle()
	case EventPress:
		if !r.IsRecording() {
			r.Toggle()
		}
	case EventRelease:
		if r.IsRecording() {
			r.Toggle()
		}
	}
}

// Describe renders a key combo the way users type it, e.g. "cmd+shift+j".
func Describe(keys []string) string {
	return strings.Join(keys, "+")
}

// Listener manages a global hotkey and emits events.
type Listener struct {
	keys []string
	mode string // "hold" or "toggle"
	ch   chan Event
	done chan struct{}
	once sync.Once
}

// NewListener creates a Listener for the given key combo and mode.
// keys should be lowercase key names (e.g., ["ctrl", "shift", "r"]).
func NewListener(keys []string, mode string) *Listener {
	return &Listener{
		keys: keys,
		mode: mode,
		ch:   make(chan Event, 16),
		done: make(chan struct{}),
	}
}

// Events returns the channel that receives hotkey events.
// The channel is closed when the listener stops.
func (l *Listener) Events() <-chan Event {
	return l.ch
}

// Start begins listening for the global hotkey.
// It blocks until Stop is called. Run it in a goroutine.
func (l *Listener) Start() {
	if l.mode == "hold" {
		hook.Register(hook.KeyDown, l.keys, func(hook.Event) { l.emit(EventPress) })
		hook.Register(hook.KeyUp, l.keys, func(hook.Event) { l.emit(EventRelease) })
	} else {
		hook.Register(hook.KeyDown, l.keys, func(hook.Event) { l.emit(EventToggle) })
	}

	evChan := hook.Start()
	go func() {
		<-l.done
		hook.End()
	}()
	<-hook.Process(evChan)
	close(l.ch)
}

// emit never blocks the hook thread; events are dropped when the
// consumer falls behind.
func (l *Listener) emit(t EventType) {
	select {
	case l.ch <- Event{Type: t}:
	default:
	}
}

// Stop terminates the hotkey listener.
// It is safe to call multiple times.
func (l *Listener) Stop() {
	l.once.Do(func() {
		close(l.done)
	})
}
