package langdetect

import (
	"testing"

	"codeberg.org/snonux/anuvad/internal/lang"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   lang.Code
		wantOK bool
	}{
		{"english", "The weather is very pleasant today", lang.English, true},
		{"hindi", "आज मौसम बहुत सुहावना है", lang.Hindi, true},
		{"bangla", "আজ আবহাওয়া খুব মনোরম", lang.Bangla, true},
		{"too short", "ok", "", false},
		{"digits only", "12345 67890", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Detect(tt.text)
			if ok != tt.wantOK || got != tt.want {
				t.Errorf("Detect(%q) = %q, %v; want %q, %v", tt.text, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestMismatch(t *testing.T) {
	if hint := Mismatch("आज मौसम बहुत सुहावना है", lang.Hindi); hint != "" {
		t.Errorf("Expected no hint for matching input, got %q", hint)
	}

	hint := Mismatch("আজ আবহাওয়া খুব মনোরম", lang.Hindi)
	if hint != "Input looks like Bangla, but the source language is Hindi" {
		t.Errorf("Unexpected hint %q", hint)
	}

	if hint := Mismatch("hi", lang.Bangla); hint != "" {
		t.Errorf("Expected no hint for short input, got %q", hint)
	}
}
