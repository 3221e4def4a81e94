// Package hfhub implements the "hf" engine backend: model identifiers are
// resolved against the Hugging Face hub API and inference runs on the
// Hugging Face inference endpoint.
package hfhub

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker"

	"codeberg.org/snonux/anuvad/internal"
	"codeberg.org/snonux/anuvad/internal/engine"
)

const (
	DefaultHubURL       = "https://huggingface.co"
	DefaultInferenceURL = "https://api-inference.huggingface.co"
	DefaultNamespace    = "Helsinki-NLP"
)

// Config holds the hf backend settings.
type Config struct {
	HubURL       string
	InferenceURL string
	Namespace    string // Model namespace on the hub, "Helsinki-NLP"
	Token        string // Optional access token
	Timeout      time.Duration

	// Circuit breaker around inference calls
	BreakerFailures uint32
	BreakerTimeout  time.Duration
}

// DefaultConfig returns the public Hugging Face endpoints.
func DefaultConfig() *Config {
	return &Config{
		HubURL:          DefaultHubURL,
		InferenceURL:    DefaultInferenceURL,
		Namespace:       DefaultNamespace,
		Timeout:         2 * time.Minute,
		BreakerFailures: 3,
		BreakerTimeout:  30 * time.Second,
	}
}

// Engine talks to the Hugging Face hub and inference API.
type Engine struct {
	config  *Config
	http    *resty.Client
	breaker *gobreaker.CircuitBreaker
}

// statusError is a non-2xx reply from the inference endpoint.
type statusError struct {
	Status int
	Body   string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("inference returned %d: %s", e.Status, e.Body)
}

// New creates the engine. Missing config fields take their defaults.
func New(config *Config) *Engine {
	defaults := DefaultConfig()
	if config == nil {
		config = defaults
	}
	if config.HubURL == "" {
		config.HubURL = defaults.HubURL
	}
	if config.InferenceURL == "" {
		config.InferenceURL = defaults.InferenceURL
	}
	if config.Namespace == "" {
		config.Namespace = defaults.Namespace
	}
	if config.Timeout == 0 {
		config.Timeout = defaults.Timeout
	}
	if config.BreakerFailures == 0 {
		config.BreakerFailures = defaults.BreakerFailures
	}
	if config.BreakerTimeout == 0 {
		config.BreakerTimeout = defaults.BreakerTimeout
	}

	client := resty.New().
		SetTimeout(config.Timeout).
		SetHeader("User-Agent", "anuvad/"+internal.Version)
	if config.Token != "" {
		client.SetAuthToken(config.Token)
	}

	failures := config.BreakerFailures
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "hf-inference",
		Timeout: config.BreakerTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			// Rejected requests are the caller's problem, not an outage
			var se *statusError
			if errors.As(err, &se) {
				return se.Status < http.StatusInternalServerError
			}
			return err == nil
		},
	})

	return &Engine{config: config, http: client, breaker: breaker}
}

// Name implements engine.Engine.
func (e *Engine) Name() string {
	return "hf"
}

// IsAvailable implements engine.Engine. The public hub needs no credentials.
func (e *Engine) IsAvailable() error {
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

	repo := e.repoID(modelName)
	return engine.NewTextModel(modelName, func(ctx context.Context, text string) (string, error) {
		return e.infer(ctx, repo, text)
	}), nil
}

func (e *Engine) repoID(modelName string) string {
	return e.config.Namespace + "/" + modelName
}

type modelInfo struct {
	ID          string `json:"id"`
	PipelineTag string `json:"pipeline_tag"`
}

// resolve checks that the model exists on the hub.
func (e *Engine) resolve(ctx context.Context, modelName string) error {
	url := strings.TrimRight(e.config.HubURL, "/") + "/api/models/" + e.repoID(modelName)

	var info modelInfo
	resp, err := e.http.R().
		SetContext(ctx).
		ForceContentType("application/json").
		SetResult(&info).
		Get(url)
	if err != nil {
		return fmt.Errorf("hub lookup of %s: %w", modelName, err)
	}

	switch resp.StatusCode() {
	case http.StatusOK:
		if info.ID == "" {
			return fmt.Errorf("hub lookup of %s: empty model info", modelName)
		}
		return nil
	case http.StatusNotFound:
		return &engine.NotFoundError{Model: modelName, Detail: e.repoID(modelName) + " does not exist on the hub"}
	case http.StatusUnauthorized:
		// Anonymous requests get 401 for repositories that do not exist. With
		// a token it means the credentials were rejected.
		if e.config.Token == "" {
			return &engine.NotFoundError{Model: modelName, Detail: e.repoID(modelName) + " does not exist on the hub"}
		}
		return fmt.Errorf("hub lookup of %s: %s (check HF token); body: %s", modelName, resp.Status(), abbreviate(resp.String(), 200))
	default:
		return fmt.Errorf("hub lookup of %s: %s; body: %s", modelName, resp.Status(), abbreviate(resp.String(), 200))
	}
}

type inferenceRequest struct {
	Inputs  string         `json:"inputs"`
	Options map[string]any `json:"options,omitempty"`
}

type inferenceResult struct {
	TranslationText string `json:"translation_text"`
	GeneratedText   string `json:"generated_text"`
}

func (e *Engine) infer(ctx context.Context, repo, text string) (string, error) {
	url := strings.TrimRight(e.config.InferenceURL, "/") + "/models/" + repo

	out, err := e.breaker.Execute(func() (interface{}, error) {
		var results []inferenceResult
		resp, err := e.http.R().
			SetContext(ctx).
			SetHeader("Content-Type", "application/json").
			ForceContentType("application/json").
			SetBody(inferenceRequest{
				Inputs:  text,
				Options: map[string]any{"wait_for_model": true},
			}).
			SetResult(&results).
			Post(url)
		if err != nil {
			return nil, err
		}
		if resp.IsError() {
			return nil, &statusError{Status: resp.StatusCode(), Body: abbreviate(resp.String(), 200)}
		}
		if len(results) == 0 {
			return nil, errors.New("inference returned no results")
		}
		if results[0].TranslationText != "" {
			return results[0].TranslationText, nil
		}
		return results[0].GeneratedText, nil
	})
	if err != nil {
		return "", fmt.Errorf("%s inference: %w", repo, err)
	}

	return out.(string), nil
}

// abbreviate shortens s to at most n runes.
func abbreviate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n-3]) + "..."
}
