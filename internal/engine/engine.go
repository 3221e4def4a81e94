package engine

import (
	"context"
	"fmt"

	"codeberg.org/snonux/anuvad/internal/lang"
)

// ModelFamily is the Marian model family every backend serves.
const ModelFamily = "opus-mt"

// ModelName returns the model identifier for a translation direction,
// e.g. "opus-mt-hi-en".
func ModelName(src, tgt lang.Code) string {
	return fmt.Sprintf("%s-%s-%s", ModelFamily, src, tgt)
}

// Tensor is a sequence of token IDs.
type Tensor struct {
	IDs []int64
}

// Len returns the number of tokens.
func (t Tensor) Len() int {
	return len(t.IDs)
}

// Tokenizer converts between text and token IDs for one model.
type Tokenizer interface {
	Encode(text string) (Tensor, error)
	Decode(t Tensor, skipSpecialTokens bool) (string, error)
}

// Model generates an output token sequence from an input sequence.
type Model interface {
	Generate(ctx context.Context, input Tensor) (Tensor, error)
}

// Engine loads tokenizers and models by name.
//
// LoadTokenizer and LoadModel must return an error matching ErrModelNotFound
// (see NotFoundError) when the name does not exist in the backend's registry.
type Engine interface {
	// Name returns the backend name
	Name() string

	// IsAvailable returns a *MissingDependencyError when the backend cannot
	// be used at all (unknown backend, missing credentials)
	IsAvailable() error

	LoadTokenizer(ctx context.Context, modelName string) (Tokenizer, error)
	LoadModel(ctx context.Context, modelName string) (Model, error)
}
