package engine

import (
	"context"
	"strings"
)

// TextFunc translates text remotely.
type TextFunc func(ctx context.Context, text string) (string, error)

// TextModel adapts a remote text-in/text-out endpoint to the Model
// interface. Input and output tensors are RuneTokenizer encoded.
type TextModel struct {
	name      string
	translate TextFunc
}

// NewTextModel creates a Model that decodes its input, passes the text to fn
// and encodes the reply.
func NewTextModel(name string, fn TextFunc) *TextModel {
	return &TextModel{name: name, translate: fn}
}

// Name returns the model name.
func (m *TextModel) Name() string {
	return m.name
}

// Generate implements Model.
func (m *TextModel) Generate(ctx context.Context, input Tensor) (Tensor, error) {
	var tok RuneTokenizer

	text, err := tok.Decode(input, true)
	if err != nil {
		return Tensor{}, err
	}

	out, err := m.translate(ctx, text)
	if err != nil {
		return Tensor{}, err
	}

	return tok.Encode(strings.TrimSpace(out))
}
