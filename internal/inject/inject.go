// Package inject delivers transcripts to the focused application, either
// by simulating keystrokes with robotgo or through the system clipboard.
package inject

import (
	"fmt"
	"runtime"

	"github.com/atotto/clipboard"
	"github.com/go-vgo/robotgo"
)

// Methods accepted by NewInjector.
const (
	MethodNone  = "none"
	MethodType  = "type"
	MethodPaste = "paste"
	MethodCopy  = "copy"
)

// backend is the OS surface the injector drives.
type backend struct {
	typeText  func(text string)
	keyTap    func(key string, mods ...interface{}) error
	readClip  func() (string, error)
	writeClip func(text string) error
}

var systemBackend = backend{
	typeText:  func(text string) { robotgo.Type(text) },
	keyTap:    robotgo.KeyTap,
	readClip:  clipboard.ReadAll,
	writeClip: clipboard.WriteAll,
}

// Injector types, pastes, or copies text.
type Injector struct {
	method string
	sys    backend
}

// NewInjector creates an Injector for method, one of "none", "type",
// "paste" or "copy".
func NewInjector(method string) (*Injector, error) {
	return newInjector(method, systemBackend)
}

func newInjector(method string, sys backend) (*Injector, error) {
	switch method {
	case MethodNone, MethodType, MethodPaste, MethodCopy:
	default:
		return nil, fmt.Errorf("inject: unknown method %q", method)
	}
	return &Injector{method: method, sys: sys}, nil
}

// Method returns the configured method.
func (inj *Injector) Method() string {
	return inj.method
}

// Inject sends text using the configured method. Empty text is ignored.
func (inj *Injector) Inject(text string) error {
	if text == "" {
		return nil
	}

	switch inj.method {
	case MethodType:
		inj.sys.typeText(text)
		return nil
	case MethodPaste:
		return inj.paste(text)
	case MethodCopy:
		if err := inj.sys.writeClip(text); err != nil {
			return fmt.Errorf("inject: write to clipboard: %w", err)
		}
		return nil
	default:
		return nil
	}
}

// paste puts text on the clipboard, sends the paste shortcut and restores
// the previous clipboard contents.
func (inj *Injector) paste(text string) error {
	prev, _ := inj.sys.readClip()

	if err := inj.sys.writeClip(text); err != nil {
		return fmt.Errorf("inject: write to clipboard: %w", err)
	}

	if err := inj.sys.keyTap("v", pasteModifier()); err != nil {
		return fmt.Errorf("inject: key tap paste: %w", err)
	}

	// Best effort.
	_ = inj.sys.writeClip(prev)

	return nil
}

func pasteModifier() string {
	if runtime.GOOS == "darwin" {
		return "cmd"
	}
	return "ctrl"
}
