package translation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"codeberg.org/snonux/anuvad/internal/engine"
	"codeberg.org/snonux/anuvad/internal/lang"
)

var errEmptyOutput = errors.New("model returned an empty translation")

// Orchestrator resolves language pairs to models and runs them.
//
// It does not serialize requests. Callers are expected to keep at most one
// Translate in flight; see ModelCache for what happens otherwise.
type Orchestrator struct {
	engine   engine.Engine
	cache    *ModelCache
	logger   zerolog.Logger
	observer Observer
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger zerolog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithObserver sets a callback receiving stage changes.
func WithObserver(fn Observer) Option {
	return func(o *Orchestrator) {
		o.observer = fn
	}
}

// New creates an orchestrator with its own model cache.
func New(eng engine.Engine, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		engine: eng,
		cache:  NewModelCache(),
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Cache returns the orchestrator's model cache.
func (o *Orchestrator) Cache() *ModelCache {
	return o.cache
}

// Translate translates text for the given pair. It tries the direct model
// first and, when that model does not exist and neither side is English,
// chains src->en->tgt.
func (o *Orchestrator) Translate(ctx context.Context, pair lang.Pair, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", &EmptyInputError{}
	}

	if o.engine == nil {
		return "", &MissingDependencyError{Backend: "none", Guidance: "No translation backend configured."}
	}
	if err := o.engine.IsAvailable(); err != nil {
		var missing *MissingDependencyError
		if errors.As(err, &missing) {
			return "", missing
		}
		return "", &MissingDependencyError{Backend: o.engine.Name(), Err: err}
	}

	if !pair.IsSupported() {
		return "", &TranslationError{Err: fmt.Errorf("unsupported language pair %s", pair)}
	}

	out, err := o.direct(ctx, pair, text)
	if err == nil {
		o.notify(StageDone, "")
		return out, nil
	}

	if !engine.IsNotFound(err) || pair.InvolvesPivot() {
		o.logger.Warn().Err(err).Str("pair", pair.String()).Msg("direct translation failed")
		o.notify(StageFailed, err.Error())
		return "", &TranslationError{Err: err}
	}

	o.logger.Info().Str("pair", pair.String()).Msg("direct model not found, chaining via " + string(lang.Pivot))
	o.notify(StageChained, "")

	out, err = o.chained(ctx, pair, text)
	if err != nil {
		o.notify(StageFailed, err.Error())
		return "", err
	}

	o.notify(StageDone, "")
	return out, nil
}

func (o *Orchestrator) direct(ctx context.Context, pair lang.Pair, text string) (string, error) {
	h, err := o.load(ctx, engine.ModelName(pair.Source, pair.Target))
	if err != nil {
		return "", err
	}

	o.notify(StageDirect, h.Name)
	return o.run(ctx, h, text)
}

func (o *Orchestrator) chained(ctx context.Context, pair lang.Pair, text string) (string, error) {
	first, err := o.load(ctx, engine.ModelName(pair.Source, lang.Pivot))
	if err != nil {
		return "", &ChainLoadError{Leg: legName(pair.Source, lang.Pivot), Err: err}
	}

	second, err := o.load(ctx, engine.ModelName(lang.Pivot, pair.Target))
	if err != nil {
		return "", &ChainLoadError{Leg: legName(lang.Pivot, pair.Target), Err: err}
	}

	intermediate, err := o.run(ctx, first, text)
	if err != nil {
		return "", &TranslationError{Err: fmt.Errorf("%s: %w", legName(pair.Source, lang.Pivot), err)}
	}
	o.logger.Debug().Str("model", first.Name).Int("chars", len(intermediate)).Msg("intermediate translation ready")

	out, err := o.run(ctx, second, intermediate)
	if err != nil {
		return "", &TranslationError{Err: fmt.Errorf("%s: %w", legName(lang.Pivot, pair.Target), err)}
	}
	return out, nil
}

// load returns the cached handle for name or fetches it from the engine.
// Failures are not cached, so the next call retries.
func (o *Orchestrator) load(ctx context.Context, name string) (*Handle, error) {
	if h, ok := o.cache.Get(name); ok {
		o.logger.Debug().Str("model", name).Msg("model cache hit")
		return h, nil
	}

	o.notify(StageLoading, name)
	o.logger.Info().Str("model", name).Str("engine", o.engine.Name()).Msg("loading model")
	start := time.Now()

	tok, err := o.engine.LoadTokenizer(ctx, name)
	if err != nil {
		return nil, &ModelLoadError{Model: name, Err: err}
	}

	model, err := o.engine.LoadModel(ctx, name)
	if err != nil {
		return nil, &ModelLoadError{Model: name, Err: err}
	}

	h := &Handle{Name: name, Tokenizer: tok, Model: model}
	o.cache.Add(h)

	o.logger.Info().Str("model", name).Dur("took", time.Since(start)).Msg("model loaded")
	o.notify(StageLoaded, name)
	return h, nil
}

// run encodes text, generates and decodes the output skipping special tokens.
func (o *Orchestrator) run(ctx context.Context, h *Handle, text string) (string, error) {
	input, err := h.Tokenizer.Encode(text)
	if err != nil {
		return "", fmt.Errorf("encode with %s: %w", h.Name, err)
	}

	output, err := h.Model.Generate(ctx, input)
	if err != nil {
		return "", fmt.Errorf("generate with %s: %w", h.Name, err)
	}

	decoded, err := h.Tokenizer.Decode(output, true)
	if err != nil {
		return "", fmt.Errorf("decode with %s: %w", h.Name, err)
	}

	if strings.TrimSpace(decoded) == "" {
		return "", fmt.Errorf("%s: %w", h.Name, errEmptyOutput)
	}
	return decoded, nil
}

func (o *Orchestrator) notify(stage Stage, detail string) {
	if o.observer != nil {
		o.observer(stage, detail)
	}
}

func legName(src, tgt lang.Code) string {
	return string(src) + "->" + string(tgt)
}
