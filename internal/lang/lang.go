package lang

import (
	"fmt"
	"strings"
)

// Code is a two-letter ISO 639-1 language code.
type Code string

const (
	English Code = "en"
	Hindi   Code = "hi"
	Bangla  Code = "bn"
)

// Pivot is the language chained translations pass through.
const Pivot = English

// Name returns the display name of the language.
func (c Code) Name() string {
	switch c {
	case English:
		return "English"
	case Hindi:
		return "Hindi"
	case Bangla:
		return "Bangla"
	default:
		return string(c)
	}
}

// Pair is a translation direction.
type Pair struct {
	Source Code
	Target Code
}

var supported = []Pair{
	{English, Hindi},
	{Hindi, English},
	{English, Bangla},
	{Bangla, English},
	{Hindi, Bangla},
	{Bangla, Hindi},
}

// SupportedPairs returns the six supported directions in display order.
func SupportedPairs() []Pair {
	out := make([]Pair, len(supported))
	copy(out, supported)
	return out
}

// Default is the direction preselected in the GUI.
func Default() Pair {
	return supported[0]
}

// Label returns the human readable label, e.g. "English → Hindi".
func (p Pair) Label() string {
	return p.Source.Name() + " → " + p.Target.Name()
}

// String returns the short form, e.g. "en-hi".
func (p Pair) String() string {
	return string(p.Source) + "-" + string(p.Target)
}

// InvolvesPivot reports whether either side of the pair is the pivot language.
func (p Pair) InvolvesPivot() bool {
	return p.Source == Pivot || p.Target == Pivot
}

// IsSupported reports whether p is one of the six supported directions.
func (p Pair) IsSupported() bool {
	for _, s := range supported {
		if s == p {
			return true
		}
	}
	return false
}

// Labels returns the labels of all supported pairs in display order.
func Labels() []string {
	labels := make([]string, 0, len(supported))
	for _, p := range supported {
		labels = append(labels, p.Label())
	}
	return labels
}

// PairByLabel looks up a supported pair by its display label.
func PairByLabel(label string) (Pair, bool) {
	for _, p := range supported {
		if p.Label() == label {
			return p, true
		}
	}
	return Pair{}, false
}

// ParsePair parses the short form "src-tgt" (e.g. "hi-bn"). Only the
// supported directions are accepted.
func ParsePair(s string) (Pair, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "-")
	if len(parts) != 2 {
		return Pair{}, fmt.Errorf("invalid language pair %q: expected form src-tgt, e.g. en-hi", s)
	}

	p := Pair{Source: Code(parts[0]), Target: Code(parts[1])}
	if !p.IsSupported() {
		return Pair{}, fmt.Errorf("unsupported language pair %q: supported pairs are %s", s, supportedList())
	}
	return p, nil
}

func supportedList() string {
	names := make([]string, 0, len(supported))
	for _, p := range supported {
		names = append(names, p.String())
	}
	return strings.Join(names, ", ")
}
