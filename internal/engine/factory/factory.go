// Package factory builds the configured engine backend.
package factory

import (
	"context"
	"fmt"
	"strings"

	"codeberg.org/snonux/anuvad/internal/engine"
	"codeberg.org/snonux/anuvad/internal/engine/gemini"
	"codeberg.org/snonux/anuvad/internal/engine/hfhub"
	"codeberg.org/snonux/anuvad/internal/engine/openaicompat"
)

// Backends lists the backend names New understands.
var Backends = []string{"hf", "openai", "gemini"}

// Config selects and configures a backend.
type Config struct {
	Backend string

	HF     hfhub.Config
	OpenAI openaicompat.Config
	Gemini gemini.Config
}

// New returns the engine for config.Backend. An unknown backend yields an
// engine whose IsAvailable reports a *engine.MissingDependencyError.
func New(ctx context.Context, config *Config) engine.Engine {
	switch strings.ToLower(strings.TrimSpace(config.Backend)) {
	case "", "hf":
		return hfhub.New(&config.HF)
	case "openai":
		return openaicompat.New(&config.OpenAI)
	case "gemini":
		return gemini.New(ctx, &config.Gemini)
	default:
		return unavailable{backend: config.Backend}
	}
}

// unavailable stands in for a backend that does not exist.
type unavailable struct {
	backend string
}

func (u unavailable) Name() string {
	return u.backend
}

func (u unavailable) IsAvailable() error {
	return &engine.MissingDependencyError{
		Backend:  u.backend,
		Err:      fmt.Errorf("unknown backend"),
		Guidance: fmt.Sprintf("Choose one of: %s\n\n    anuvad --backend hf", strings.Join(Backends, ", ")),
	}
}

func (u unavailable) LoadTokenizer(ctx context.Context, modelName string) (engine.Tokenizer, error) {
	return nil, u.IsAvailable()
}

func (u unavailable) LoadModel(ctx context.Context, modelName string) (engine.Model, error) {
	return nil, u.IsAvailable()
}
