package summary

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func TestNewGeminiGeneratorWithoutKey(t *testing.T) {
	g, err := NewGeminiGenerator(context.Background(), zerolog.Nop(), "", "gemini-2.5-flash")
	if err != nil {
		t.Fatalf("new generator: %v", err)
	}

	_, err = g.Generate(context.Background(), "prompt")
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
