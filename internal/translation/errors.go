package translation

import (
	"fmt"

	"codeberg.org/snonux/anuvad/internal/engine"
)

// EmptyInputError is returned when the input text is blank.
type EmptyInputError struct{}

func (e *EmptyInputError) Error() string {
	return "please enter text to translate"
}

// ModelLoadError reports a failed tokenizer or model fetch.
type ModelLoadError struct {
	Model string
	Err   error
}

func (e *ModelLoadError) Error() string {
	return fmt.Sprintf("failed to load model %s: %v", e.Model, e.Err)
}

func (e *ModelLoadError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the model identifier could not be resolved.
func (e *ModelLoadError) NotFound() bool {
	return engine.IsNotFound(e.Err)
}

// ChainLoadError reports that one leg of a chained translation could not be
// loaded. Leg has the form "hi->en".
type ChainLoadError struct {
	Leg string
	Err error
}

func (e *ChainLoadError) Error() string {
	return fmt.Sprintf("could not load intermediate model %s: %v", e.Leg, e.Err)
}

func (e *ChainLoadError) Unwrap() error {
	return e.Err
}

// TranslationError wraps any other failure, including a direct-pair failure
// for which chaining does not apply.
type TranslationError struct {
	Err error
}

func (e *TranslationError) Error() string {
	return e.Err.Error()
}

func (e *TranslationError) Unwrap() error {
	return e.Err
}

// MissingDependencyError reports that the translation backend is unusable.
type MissingDependencyError = engine.MissingDependencyError
