package gui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	fynetooltip "github.com/dweymouth/fyne-tooltip"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"github.com/rs/zerolog"

	"codeberg.org/snonux/anuvad/internal"
	"codeberg.org/snonux/anuvad/internal/dispatch"
	"codeberg.org/snonux/anuvad/internal/engine"
	"codeberg.org/snonux/anuvad/internal/lang"
	"codeberg.org/snonux/anuvad/internal/langdetect"
	"codeberg.org/snonux/anuvad/internal/logging"
	"codeberg.org/snonux/anuvad/internal/translation"
)

// Application represents the main GUI application
type Application struct {
	// Fyne components
	app    fyne.App
	window fyne.Window

	// UI elements
	pairSelect      *widget.Select
	inputEntry      *CustomMultiLineEntry
	outputEntry     *widget.Entry
	translateButton *ttwidget.Button
	clearButton     *ttwidget.Button
	helpButton      *ttwidget.Button
	statusLabel     *widget.Label
	logViewer       *LogViewer

	// Translation
	orchestrator *translation.Orchestrator
	dispatcher   *dispatch.Dispatcher
	logger       zerolog.Logger

	// hint is the language mismatch note for the request in flight
	hint string

	// post schedules a function on the Fyne thread
	post func(func())

	// Configuration
	config *Config

	ctx    context.Context
	cancel context.CancelFunc
}

// Config holds GUI application configuration
type Config struct {
	Engine   engine.Engine
	LogLevel string
}

// New creates a new GUI application
func New(config *Config) (*Application, error) {
	myApp := app.NewWithID("org.codeberg.snonux.anuvad")
	myApp.SetIcon(theme.ComputerIcon())
	return newApplication(myApp, config, fyne.Do)
}

func newApplication(fyneApp fyne.App, config *Config, post func(func())) (*Application, error) {
	if config == nil {
		config = &Config{}
	}

	ctx, cancel := context.WithCancel(context.Background())

	a := &Application{
		app:    fyneApp,
		config: config,
		post:   post,
		ctx:    ctx,
		cancel: cancel,
	}

	// Log to stderr and the log viewer
	a.logViewer = NewLogViewer(post)
	logger, err := logging.New(config.LogLevel, zerolog.MultiLevelWriter(os.Stderr, a.logViewer))
	if err != nil {
		cancel()
		return nil, err
	}
	a.logger = logger

	a.orchestrator = translation.New(config.Engine,
		translation.WithLogger(logger),
		translation.WithObserver(a.onStage),
	)
	a.dispatcher = dispatch.New(ctx, a.runRequest, post)

	a.setupUI()
	a.checkEngine()

	return a, nil
}

// setupUI creates the main user interface
func (a *Application) setupUI() {
	a.window = a.app.NewWindow(fmt.Sprintf("anuvad v%s - Language Translation App", internal.Version))
	a.window.Resize(fyne.NewSize(800, 600))

	// Language pair selection
	a.pairSelect = widget.NewSelect(lang.Labels(), nil)
	a.pairSelect.SetSelected(lang.Default().Label())

	// Input and output areas
	a.inputEntry = NewCustomMultiLineEntry()
	a.inputEntry.SetPlaceHolder("Text to translate... Press Ctrl+Enter to translate")
	a.inputEntry.SetMinRowsVisible(6)
	a.inputEntry.SetOnSubmit(a.onTranslate)
	a.inputEntry.SetOnEscape(func() {
		a.window.Canvas().Unfocus()
	})

	a.outputEntry = widget.NewMultiLineEntry()
	a.outputEntry.SetPlaceHolder("Translation will appear here...")
	a.outputEntry.Wrapping = fyne.TextWrapWord
	a.outputEntry.SetMinRowsVisible(6)
	a.outputEntry.Disable()

	// Buttons (tooltips are set after the tooltip layer is created)
	a.translateButton = ttwidget.NewButtonWithIcon("Translate", theme.ConfirmIcon(), a.onTranslate)
	a.translateButton.Importance = widget.HighImportance
	a.clearButton = ttwidget.NewButtonWithIcon("Clear", theme.ContentClearIcon(), a.onClear)
	a.helpButton = ttwidget.NewButtonWithIcon("", theme.HelpIcon(), a.onShowHotkeys)

	toolbar := container.NewBorder(
		nil, nil,
		widget.NewLabel("Language pair:"),
		a.helpButton,
		a.pairSelect,
	)

	textSection := container.NewVBox(
		widget.NewLabel("Input:"),
		a.inputEntry,
		container.NewHBox(a.translateButton, a.clearButton),
		widget.NewLabel("Translation:"),
		a.outputEntry,
	)

	a.statusLabel = widget.NewLabel("Ready")

	content := container.NewBorder(
		container.NewVBox(
			toolbar,
			widget.NewSeparator(),
		),
		container.NewVBox(
			widget.NewSeparator(),
			a.statusLabel,
			a.logViewer,
		),
		nil, nil,
		container.NewVScroll(textSection),
	)

	// Add the tooltip layer to enable tooltips
	a.window.SetContent(fynetooltip.AddWindowToolTipLayer(content, a.window.Canvas()))
	a.setupTooltips()

	a.window.SetOnClosed(func() {
		a.cancel()
	})

	a.setupKeyboardShortcuts()
}

// setupTooltips sets up all tooltips after the tooltip layer has been created
func (a *Application) setupTooltips() {
	a.translateButton.SetToolTip("Translate (Ctrl+Enter)")
	a.clearButton.SetToolTip("Clear input and output")
	a.helpButton.SetToolTip("Show hotkeys")
}

func (a *Application) setupKeyboardShortcuts() {
	// Ctrl+Enter translates even when the input is not focused
	for _, key := range []fyne.KeyName{fyne.KeyReturn, fyne.KeyEnter} {
		a.window.Canvas().AddShortcut(&desktop.CustomShortcut{KeyName: key, Modifier: fyne.KeyModifierControl}, func(fyne.Shortcut) {
			a.onTranslate()
		})
	}

	a.window.Canvas().SetOnTypedKey(func(ev *fyne.KeyEvent) {
		if ev.Name == fyne.KeyEscape {
			a.window.Canvas().Unfocus()
		}
	})
}

// Run starts the GUI application
func (a *Application) Run() {
	a.window.ShowAndRun()
}

// checkEngine reports an unusable backend once at startup
func (a *Application) checkEngine() {
	if a.config.Engine == nil {
		a.showMissingDependency(&engine.MissingDependencyError{Backend: "none", Guidance: "No translation backend configured."})
		return
	}
	if err := a.config.Engine.IsAvailable(); err != nil {
		a.showMissingDependency(err)
	}
}

func (a *Application) showMissingDependency(err error) {
	a.logger.Error().Err(err).Msg("translation backend unavailable")
	dialog.ShowError(fmt.Errorf("Missing dependency:\n%w", err), a.window)
	a.updateStatus("Missing dependency")
}

// onTranslate validates the input and hands the request to the dispatcher
func (a *Application) onTranslate() {
	if a.translateButton.Disabled() || a.dispatcher.Busy() {
		return
	}

	text := strings.TrimSpace(a.inputEntry.Text)
	if text == "" {
		dialog.ShowInformation("Warning", "Please enter text to translate!", a.window)
		return
	}

	pair, ok := lang.PairByLabel(a.pairSelect.Selected)
	if !ok {
		dialog.ShowError(fmt.Errorf("Translation failed:\nno language pair selected"), a.window)
		return
	}

	a.hint = langdetect.Mismatch(text, pair.Source)
	if a.hint != "" {
		a.logger.Warn().Str("pair", pair.String()).Msg(a.hint)
	}

	a.translateButton.Disable()
	a.updateStatus("Translating...")

	id, ok := a.dispatcher.Submit(dispatch.Request{Pair: pair, Text: text}, a.onComplete)
	if !ok {
		a.translateButton.Enable()
		return
	}
	a.logger.Debug().Int("job", id).Str("pair", pair.String()).Msg("translation submitted")
}

// runRequest runs on the dispatcher's worker goroutine
func (a *Application) runRequest(ctx context.Context, req dispatch.Request) (string, error) {
	return a.orchestrator.Translate(ctx, req.Pair, req.Text)
}

// onStage forwards orchestrator progress to the status line
func (a *Application) onStage(stage translation.Stage, detail string) {
	if stage == translation.StageDone || stage == translation.StageFailed {
		return
	}
	message := stage.Message(detail)
	a.post(func() {
		a.updateStatus(message)
	})
}

// onComplete runs on the Fyne thread once a job has finished
func (a *Application) onComplete(job *dispatch.Job) {
	a.translateButton.Enable()

	if job.Result.Err != nil {
		a.logger.Error().Err(job.Result.Err).Int("job", job.ID).Dur("took", job.Duration()).Msg("translation failed")
		a.showTranslationError(job.Result.Err)
		a.updateStatus("Translation failed!")
		return
	}

	a.logger.Info().Int("job", job.ID).Dur("took", job.Duration()).Msg("translation complete")
	a.outputEntry.SetText(job.Result.Text)

	status := translation.StageDone.Message("")
	if a.hint != "" {
		status += " (" + a.hint + ")"
	}
	a.updateStatus(status)
}

func (a *Application) showTranslationError(err error) {
	var empty *translation.EmptyInputError
	if errors.As(err, &empty) {
		dialog.ShowInformation("Warning", "Please enter text to translate!", a.window)
		return
	}

	var missing *translation.MissingDependencyError
	if errors.As(err, &missing) {
		dialog.ShowError(fmt.Errorf("Missing dependency:\n%w", err), a.window)
		return
	}

	dialog.ShowError(fmt.Errorf("Translation failed:\n%w", err), a.window)
}

// onClear empties both text areas and resets the status
func (a *Application) onClear() {
	a.inputEntry.SetText("")
	a.outputEntry.SetText("")
	a.hint = ""
	a.updateStatus(translation.StageIdle.Message(""))
}

func (a *Application) onShowHotkeys() {
	hotkeys := `## Keyboard Shortcuts
**Ctrl+Enter** Translate
**Esc** Unfocus field

## Language Pairs
Direct models are used where available. Hindi and Bangla are translated
through English when no direct model exists.`

	content := widget.NewRichTextFromMarkdown(hotkeys)
	content.Wrapping = fyne.TextWrapWord

	scroll := container.NewScroll(container.NewPadded(content))
	scroll.SetMinSize(fyne.NewSize(420, 220))

	dialog.NewCustom("Help", "Close", scroll, a.window).Show()
}

func (a *Application) updateStatus(message string) {
	a.statusLabel.SetText(message)
}
