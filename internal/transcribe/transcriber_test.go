package transcribe

import (
	"testing"

	"github.com/chaz8081/dictaria/internal/config"
)

func TestJoinSegments(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want string
	}{
		{"none", nil, ""},
		{"single", []string{" Hello. "}, "Hello."},
		{"several", []string{" Hola,", " ¿qué tal?", "  Bien."}, "Hola, ¿qué tal? Bien."},
		{"blank segments", []string{"", "  ", "word"}, "word"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := joinSegments(tt.in); got != tt.want {
				t.Errorf("joinSegments(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNewUnknownBackend(t *testing.T) {
	_, err := New(&config.TranscribeConfig{Backend: "vosk"})
	if err == nil {
		t.Error("New() with unknown backend should fail")
	}
}

func TestNewOpenAIBackend(t *testing.T) {
	t.Setenv("TEST_DICTARIA_KEY", "sk-test")
	tr, err := New(&config.TranscribeConfig{
		Backend: "openai",
		OpenAI:  config.OpenAIConfig{Model: "whisper-1", APIKeyEnv: "TEST_DICTARIA_KEY"},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if _, ok := tr.(*OpenAITranscriber); !ok {
		t.Errorf("New() = %T, want *OpenAITranscriber", tr)
	}
}
