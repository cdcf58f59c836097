// Command test-hotkey is a manual test for the global hotkey listener.
// Run it, then press the hotkey to see events.
// Press Ctrl+C to exit.
//
// Usage:
//
//	go run ./cmd/test-hotkey [--mode hold|toggle] [--keys cmd+shift+j]
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/chaz8081/dictaria/internal/hotkey"
)

// recorder prints the state changes Dispatch would cause.
type recorder struct {
	recording bool
}

func (r *recorder) Toggle() {
	r.recording = !r.recording
	if r.recording {
		fmt.Println(">>> START (recording)")
	} else {
		fmt.Println("<<< STOP  (stopped)")
	}
}

func (r *recorder) IsRecording() bool { return r.recording }

func main() {
	mode := flag.String("mode", "toggle", "hotkey mode: hold or toggle")
	combo := flag.String("keys", "cmd+shift+j", "key combo, keys joined with +")
	flag.Parse()

	keys := strings.Split(*combo, "+")
	fmt.Printf("Listening for %s in %q mode...\n", hotkey.Describe(keys), *mode)
	fmt.Println("Press Ctrl+C to exit.")

	listener := hotkey.NewListener(keys, *mode)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sig
		fmt.Println("\nShutting down...")
		listener.Stop()
	}()

	go func() {
		r := &recorder{}
		for ev := range listener.Events() {
			fmt.Printf("    event: %s\n", ev.Type)
			hotkey.Dispatch(ev, r)
		}
		fmt.Println("Event channel closed.")
	}()

	// Blocks until stopped
	listener.Start()
	fmt.Println("Done.")
}
