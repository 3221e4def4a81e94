package translation

import "fmt"

// Stage is a step of a translation request, reported to the Observer.
type Stage int

const (
	StageIdle Stage = iota
	StageLoading
	StageLoaded
	StageDirect
	StageChained
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "Idle"
	case StageLoading:
		return "Loading"
	case StageLoaded:
		return "Loaded"
	case StageDirect:
		return "Direct"
	case StageChained:
		return "Chained"
	case StageDone:
		return "Done"
	case StageFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// Message returns the status line text for the stage.
func (s Stage) Message(detail string) string {
	switch s {
	case StageIdle:
		return "Ready"
	case StageLoading:
		return fmt.Sprintf("Loading model: %s...", detail)
	case StageLoaded:
		return "Model loaded successfully!"
	case StageDirect:
		return "Translating (direct)..."
	case StageChained:
		return "Direct model not found, attempting chained translation via English..."
	case StageDone:
		return "Translation complete!"
	case StageFailed:
		return "Translation failed!"
	default:
		return detail
	}
}

// Observer receives stage changes. It is called on the goroutine running
// Translate.
type Observer func(stage Stage, detail string)
