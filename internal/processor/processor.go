package processor

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"codeberg.org/snonux/anuvad/internal/cli"
	"codeberg.org/snonux/anuvad/internal/engine"
	"codeberg.org/snonux/anuvad/internal/engine/factory"
	"codeberg.org/snonux/anuvad/internal/gui"
	"codeberg.org/snonux/anuvad/internal/lang"
	"codeberg.org/snonux/anuvad/internal/langdetect"
	"codeberg.org/snonux/anuvad/internal/logging"
	"codeberg.org/snonux/anuvad/internal/models"
	"codeberg.org/snonux/anuvad/internal/translation"
)

// Processor handles the main translation logic
type Processor struct {
	flags  *cli.Flags
	engine engine.Engine
	logger zerolog.Logger

	out    io.Writer
	errOut io.Writer
}

// NewProcessor creates a processor for the backend selected by the
// configuration
func NewProcessor(ctx context.Context, flags *cli.Flags) (*Processor, error) {
	logger, err := logging.New(logLevel(flags), os.Stderr)
	if err != nil {
		return nil, err
	}

	config := cli.EngineConfig()
	eng := factory.New(ctx, config)
	logger.Debug().Str("backend", eng.Name()).Msg("engine created")

	return newProcessor(flags, eng, logger, os.Stdout, os.Stderr), nil
}

func newProcessor(flags *cli.Flags, eng engine.Engine, logger zerolog.Logger, out, errOut io.Writer) *Processor {
	return &Processor{
		flags:  flags,
		engine: eng,
		logger: logger,
		out:    out,
		errOut: errOut,
	}
}

// TranslateText translates one text from the command line and prints the
// result to stdout
func (p *Processor) TranslateText(ctx context.Context, text string) error {
	pair, err := p.pair()
	if err != nil {
		return err
	}

	if strings.TrimSpace(text) == "" {
		return &translation.EmptyInputError{}
	}

	if hint := langdetect.Mismatch(text, pair.Source); hint != "" {
		fmt.Fprintf(p.errOut, "Note: %s\n", hint)
	}

	orchestrator := translation.New(p.engine,
		translation.WithLogger(p.logger),
		translation.WithObserver(func(stage translation.Stage, detail string) {
			if stage == translation.StageChained {
				fmt.Fprintln(p.errOut, stage.Message(detail))
			}
		}),
	)

	p.logger.Debug().Str("pair", pair.String()).Int("chars", len(text)).Msg("translating")

	result, err := orchestrator.Translate(ctx, pair, text)
	if err != nil {
		return err
	}

	fmt.Fprintln(p.out, result)
	return nil
}

// ListModels prints which directions the backend can serve
func (p *Processor) ListModels(ctx context.Context) error {
	lister := models.NewLister(p.engine, p.out)
	return lister.ListAvailableModels(ctx)
}

// RunGUIMode launches the GUI application
func (p *Processor) RunGUIMode() error {
	guiConfig := &gui.Config{
		Engine:   p.engine,
		LogLevel: logLevel(p.flags),
	}

	app, err := gui.New(guiConfig)
	if err != nil {
		return err
	}
	app.Run()

	return nil
}

// pair returns the configured translation direction, preferring the value
// bound through viper over the raw flag
func (p *Processor) pair() (lang.Pair, error) {
	value := viper.GetString("translate.pair")
	if value == "" {
		value = p.flags.Pair
	}
	return lang.ParsePair(value)
}

func logLevel(flags *cli.Flags) string {
	if level := viper.GetString("log.level"); level != "" {
		return level
	}
	return flags.LogLevel
}
