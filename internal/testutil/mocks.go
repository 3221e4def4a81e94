package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"codeberg.org/snonux/anuvad/internal/engine"
)

// FakeEngine is an in-memory engine.Engine. Models are registered by name
// with a translate function; every other name is reported as not found.
type FakeEngine struct {
	// Models maps a model name to its translate function
	Models map[string]func(string) string

	// LoadErrors forces LoadTokenizer/LoadModel for a name to fail
	LoadErrors map[string]error

	// GenerateErrors forces Generate for a name to fail
	GenerateErrors map[string]error

	// Unavailable is returned by IsAvailable when set
	Unavailable error

	mu    sync.Mutex
	Calls []string
}

// NewFakeEngine creates a fake engine serving the given models.
func NewFakeEngine(models map[string]func(string) string) *FakeEngine {
	return &FakeEngine{
		Models:         models,
		LoadErrors:     make(map[string]error),
		GenerateErrors: make(map[string]error),
	}
}

// Name implements engine.Engine.
func (f *FakeEngine) Name() string {
	return "fake"
}

// IsAvailable implements engine.Engine.
func (f *FakeEngine) IsAvailable() error {
	return f.Unavailable
}

// LoadTokenizer implements engine.Engine.
func (f *FakeEngine) LoadTokenizer(ctx context.Context, modelName string) (engine.Tokenizer, error) {
	f.record("LoadTokenizer " + modelName)
	if err := f.lookup(modelName); err != nil {
		return nil, err
	}
	return engine.RuneTokenizer{}, nil
}

// LoadModel implements engine.Engine.
func (f *FakeEngine) LoadModel(ctx context.Context, modelName string) (engine.Model, error) {
	f.record("LoadModel " + modelName)
	if err := f.lookup(modelName); err != nil {
		return nil, err
	}

	translate := f.Models[modelName]
	return engine.NewTextModel(modelName, func(ctx context.Context, text string) (string, error) {
		f.record("Generate " + modelName)
		f.mu.Lock()
		err := f.GenerateErrors[modelName]
		f.mu.Unlock()
		if err != nil {
			return "", err
		}
		return translate(text), nil
	}), nil
}

func (f *FakeEngine) lookup(modelName string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err, ok := f.LoadErrors[modelName]; ok {
		return err
	}
	if _, ok := f.Models[modelName]; !ok {
		return &engine.NotFoundError{Model: modelName}
	}
	return nil
}

func (f *FakeEngine) record(call string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, call)
}

// CallLog returns a copy of the recorded calls.
func (f *FakeEngine) CallLog() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.Calls))
	copy(out, f.Calls)
	return out
}

// LoadCount returns how often LoadModel was called for modelName.
func (f *FakeEngine) LoadCount(modelName string) int {
	count := 0
	for _, c := range f.CallLog() {
		if c == "LoadModel "+modelName {
			count++
		}
	}
	return count
}

// LoadedModels returns the model names passed to LoadModel, in call order.
func (f *FakeEngine) LoadedModels() []string {
	var names []string
	for _, c := range f.CallLog() {
		if name, ok := strings.CutPrefix(c, "LoadModel "); ok {
			names = append(names, name)
		}
	}
	return names
}

// Tag returns a translate function that marks text with a language tag,
// e.g. Tag("hi")("Hello") == "[hi]Hello".
func Tag(code string) func(string) string {
	return func(text string) string {
		return fmt.Sprintf("[%s]%s", code, text)
	}
}
