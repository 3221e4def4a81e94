// Package gemini implements the "gemini" engine backend. A general purpose
// Gemini model is instructed to act as the opus-mt model for each configured
// direction; directions that are not configured are reported as unknown
// models so the orchestrator can chain through English.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"codeberg.org/snonux/anuvad/internal/engine"
	"codeberg.org/snonux/anuvad/internal/lang"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// Config holds the gemini backend settings.
type Config struct {
	APIKey  string
	Model   string
	BaseURL string // Override for tests and proxies

	// Directions served by this backend, in short form ("hi-bn").
	// Empty means all supported directions.
	Directions []string
}

// Engine runs translations through the Gemini API.
type Engine struct {
	config     *Config
	client     *genai.Client
	directions map[lang.Pair]bool
	initErr    error
}

// New creates the engine. Configuration problems are reported by IsAvailable.
func New(ctx context.Context, config *Config) *Engine {
	if config == nil {
		config = &Config{}
	}
	if config.Model == "" {
		config.Model = DefaultModel
	}

	e := &Engine{config: config, directions: make(map[lang.Pair]bool)}

	if len(config.Directions) == 0 {
		for _, p := range lang.SupportedPairs() {
			e.directions[p] = true
		}
	}
	for _, d := range config.Directions {
		p, err := lang.ParsePair(d)
		if err != nil {
			e.initErr = err
			return e
		}
		e.directions[p] = true
	}

	if config.APIKey == "" {
		e.initErr = errors.New("Gemini API key is required")
		return e
	}

	clientConfig := &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if config.BaseURL != "" {
		clientConfig.HTTPOptions = genai.HTTPOptions{BaseURL: config.BaseURL}
	}

	client, err := genai.NewClient(ctx, clientConfig)
	if err != nil {
		e.initErr = fmt.Errorf("failed to create Gemini client: %w", err)
		return e
	}
	e.client = client

	return e
}

// Name implements engine.Engine.
func (e *Engine) Name() string {
	return "gemini"
}

// IsAvailable implements engine.Engine.
func (e *Engine) IsAvailable() error {
	if e.initErr != nil {
		return &engine.MissingDependencyError{
			Backend:  e.Name(),
			Err:      e.initErr,
			Guidance: "Set GEMINI_API_KEY (or engine.gemini_key in ~/.anuvad.yaml) and restart the application.",
		}
	}
	return nil
}

// LoadTokenizer implements engine.Engine.
func (e *Engine) LoadTokenizer(ctx context.Context, modelName string) (engine.Tokenizer, error) {
	if _, err := e.resolve(ctx, modelName); err != nil {
		return nil, err
	}
	return engine.RuneTokenizer{}, nil
}

// LoadModel implements engine.Engine.
func (e *Engine) LoadModel(ctx context.Context, modelName string) (engine.Model, error) {
	pair, err := e.resolve(ctx, modelName)
	if err != nil {
		return nil, err
	}

	instruction := fmt.Sprintf(
		"You are a translation engine. Translate the user's text from %s to %s. "+
			"Respond with only the translation, nothing else.",
		pair.Source.Name(), pair.Target.Name())

	return engine.NewTextModel(modelName, func(ctx context.Context, text string) (string, error) {
		return e.generate(ctx, instruction, text)
	}), nil
}

// resolve maps an opus-mt model name onto a served direction and checks that
// the configured Gemini model exists.
func (e *Engine) resolve(ctx context.Context, modelName string) (lang.Pair, error) {
	if e.client == nil {
		return lang.Pair{}, e.IsAvailable()
	}

	short := strings.TrimPrefix(modelName, engine.ModelFamily+"-")
	pair, err := lang.ParsePair(short)
	if err != nil || !e.directions[pair] {
		return lang.Pair{}, &engine.NotFoundError{Model: modelName, Detail: "direction not served by " + e.config.Model}
	}

	if _, err := e.client.Models.Get(ctx, e.config.Model, nil); err != nil {
		return lang.Pair{}, fmt.Errorf("Gemini model %s: %w", e.config.Model, err)
	}

	return pair, nil
}

func (e *Engine) generate(ctx context.Context, instruction, text string) (string, error) {
	resp, err := e.client.Models.GenerateContent(ctx, e.config.Model, genai.Text(text), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
		Temperature:       genai.Ptr[float32](0),
	})
	if err != nil {
		return "", fmt.Errorf("Gemini API error: %w", err)
	}

	out := resp.Text()
	if out == "" {
		return "", fmt.Errorf("no translation returned")
	}
	return out, nil
}
