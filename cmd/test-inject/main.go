// Command test-inject is a manual test for transcript delivery.
// It waits 3 seconds, then types, pastes, or copies test text.
// Focus a text editor before the countdown finishes.
//
// Usage:
//
//	go run ./cmd/test-inject [--method type|paste|copy] [--text "..."]
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/chaz8081/dictaria/internal/inject"
)

func main() {
	method := flag.String("method", inject.MethodType, "inject method: type, paste or copy")
	text := flag.String("text", "Hola desde dictaria!", "text to deliver")
	flag.Parse()

	inj, err := inject.NewInjector(*method)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Will deliver %q using %q method in 3 seconds...\n", *text, inj.Method())
	fmt.Println("Focus a text editor now!")

	for i := 3; i > 0; i-- {
		fmt.Printf("%d...\n", i)
		time.Sleep(time.Second)
	}

	if err := inj.Inject(*text); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("\nDone!")
}
