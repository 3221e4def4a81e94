package cli

import "codeberg.org/snonux/anuvad/internal/engine/gemini"

// Flags holds all command-line flag values
type Flags struct {
	// General flags
	CfgFile    string
	Pair       string
	ListModels bool
	LogLevel   string

	// Engine flags
	Backend        string
	HFToken        string
	HFHubURL       string
	HFInferenceURL string
	OpenAIBaseURL  string
	GeminiModel    string
}

// NewFlags creates a new Flags instance with default values
func NewFlags() *Flags {
	return &Flags{
		Pair:        "en-hi",
		LogLevel:    "info",
		Backend:     "hf",
		GeminiModel: gemini.DefaultModel,
	}
}
