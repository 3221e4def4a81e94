// Package langdetect guesses which supported language a text is written in.
package langdetect

import (
	"strings"
	"sync"
	"unicode"

	lingua "github.com/pemistahl/lingua-go"

	"codeberg.org/snonux/anuvad/internal/lang"
)

// minLetters is the shortest input worth detecting.
const minLetters = 4

var (
	detectorOnce sync.Once
	detector     lingua.LanguageDetector
)

// Detect returns the supported language the text is most likely written in.
// It returns false for short or ambiguous input.
func Detect(text string) (lang.Code, bool) {
	sample := strings.TrimSpace(text)

	letterCount := 0
	for _, r := range sample {
		if unicode.IsLetter(r) {
			letterCount++
		}
	}
	if letterCount < minLetters {
		return "", false
	}

	language, exists := getDetector().DetectLanguageOf(sample)
	if !exists {
		return "", false
	}

	switch language {
	case lingua.English:
		return lang.English, true
	case lingua.Hindi:
		return lang.Hindi, true
	case lingua.Bengali:
		return lang.Bangla, true
	default:
		return "", false
	}
}

// Mismatch returns a hint when text appears to be written in a language other
// than the selected source. The hint is empty when the input matches or
// detection is inconclusive.
func Mismatch(text string, source lang.Code) string {
	detected, ok := Detect(text)
	if !ok || detected == source {
		return ""
	}
	return "Input looks like " + detected.Name() + ", but the source language is " + source.Name()
}

func getDetector() lingua.LanguageDetector {
	detectorOnce.Do(func() {
		detector = lingua.NewLanguageDetectorBuilder().
			FromLanguages(lingua.English, lingua.Hindi, lingua.Bengali).
			Build()
	})
	return detector
}
