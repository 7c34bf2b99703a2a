// Package summary turns a prompt into generated text through a hosted model.
package summary

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"google.golang.org/genai"
)

var ErrNotConfigured = errors.New("summary generator is not configured")

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

type geminiGenerator struct {
	logger zerolog.Logger
	client *genai.Client
	model  string
}

// NewGeminiGenerator returns a generator backed by the Gemini API. With an
// empty apiKey every call fails with ErrNotConfigured.
func NewGeminiGenerator(ctx context.Context, logger zerolog.Logger, apiKey, model string) (Generator, error) {
	if apiKey == "" {
		logger.Warn().Msg("no gemini api key, summaries are disabled")
		return disabledGenerator{}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	return &geminiGenerator{
		logger: logger,
		client: client,
		model:  model,
	}, nil
}

func (g *geminiGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(
		ctx,
		g.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			ThinkingConfig: &genai.ThinkingConfig{
				ThinkingBudget: genai.Ptr[int32](0),
			},
		},
	)
	if err != nil {
		g.logger.Error().
			Err(err).
			Str("model", g.model).
			Msg("failed to generate content")
		return "", err
	}

	text := resp.Text()
	g.logger.Debug().
		Str("model", g.model).
		Int("prompt_length", len(prompt)).
		Int("text_length", len(text)).
		Msg("generated content")
	return text, nil
}

type disabledGenerator struct{}

func (disabledGenerator) Generate(context.Context, string) (string, error) {
	return "", ErrNotConfigured
}
