// Package openaicompat implements the "openai" engine backend against any
// server that speaks the OpenAI HTTP API and hosts the opus-mt models under
// their plain names (LocalAI, vLLM and friends).
package openaicompat

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/sashabaranov/go-openai"

	"codeberg.org/snonux/anuvad/internal/engine"
)

// Config holds the openai backend settings.
type Config struct {
	BaseURL   string // e.g. http://localhost:8080/v1
	APIKey    string // Optional for most self-hosted servers
	MaxTokens int
}

// Engine resolves and runs models on an OpenAI-compatible server.
type Engine struct {
	config *Config
	client *openai.Client
}

// New creates the engine.
func New(config *Config) *Engine {
	if config == nil {
		config = &Config{}
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 512
	}

	clientConfig := openai.DefaultConfig(config.APIKey)
	if config.BaseURL != "" {
		clientConfig.BaseURL = config.BaseURL
	}

	return &Engine{
		config: config,
		client: openai.NewClientWithConfig(clientConfig),
	}
}

// Name implements engine.Engine.
func (e *Engine) Name() string {
	return "openai"
}

// IsAvailable implements engine.Engine.
func (e *Engine) IsAvailable() error {
	if e.config.BaseURL == "" {
		return &engine.MissingDependencyError{
			Backend:  e.Name(),
			Err:      errors.New("no server URL configured"),
			Guidance: "Point anuvad at an OpenAI-compatible server hosting the opus-mt models:\n\n    anuvad --backend openai --openai-base-url http://localhost:8080/v1\n\nor set engine.openai_base_url in ~/.anuvad.yaml.",
		}
	}
	return nil
}

// LoadTokenizer implements engine.Engine.
func (e *Engine) LoadTokenizer(ctx context.Context, modelName string) (engine.Tokenizer, error) {
	if err := e.resolve(ctx, modelName); err != nil {
		return nil, err
	}
	return engine.RuneTokenizer{}, nil
}

// LoadModel implements engine.Engine.
func (e *Engine) LoadModel(ctx context.Context, modelName string) (engine.Model, error) {
	if err := e.resolve(ctx, modelName); err != nil {
		return nil, err
	}

	return engine.NewTextModel(modelName, func(ctx context.Context, text string) (string, error) {
		return e.complete(ctx, modelName, text)
	}), nil
}

func (e *Engine) resolve(ctx context.Context, modelName string) error {
	if _, err := e.client.GetModel(ctx, modelName); err != nil {
		if isNotFound(err) {
			return &engine.NotFoundError{Model: modelName, Detail: err.Error()}
		}
		return fmt.Errorf("OpenAI API error: %w", err)
	}
	return nil
}

func (e *Engine) complete(ctx context.Context, modelName, text string) (string, error) {
	resp, err := e.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       modelName,
		Prompt:      text,
		MaxTokens:   e.config.MaxTokens,
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no translation returned")
	}

	return resp.Choices[0].Text, nil
}

func isNotFound(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusNotFound
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusNotFound
	}

	return false
}
