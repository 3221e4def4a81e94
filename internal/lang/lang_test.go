package lang

import (
	"strings"
	"testing"
)

func TestSupportedPairs(t *testing.T) {
	pairs := SupportedPairs()
	if len(pairs) != 6 {
		t.Fatalf("Expected 6 supported pairs, got %d", len(pairs))
	}

	seen := make(map[Pair]bool)
	for _, p := range pairs {
		if p.Source == p.Target {
			t.Errorf("Pair %s translates a language into itself", p)
		}
		if seen[p] {
			t.Errorf("Duplicate pair %s", p)
		}
		seen[p] = true
	}

	// Modifying the returned slice must not leak into the package state
	pairs[0] = Pair{Source: "xx", Target: "yy"}
	if SupportedPairs()[0] != Default() {
		t.Error("SupportedPairs returned a shared slice")
	}
}

func TestLabels(t *testing.T) {
	expected := []string{
		"English → Hindi",
		"Hindi → English",
		"English → Bangla",
		"Bangla → English",
		"Hindi → Bangla",
		"Bangla → Hindi",
	}

	labels := Labels()
	if len(labels) != len(expected) {
		t.Fatalf("Expected %d labels, got %d", len(expected), len(labels))
	}
	for i, label := range expected {
		if labels[i] != label {
			t.Errorf("Labels()[%d] = %q, want %q", i, labels[i], label)
		}

		p, ok := PairByLabel(label)
		if !ok {
			t.Errorf("PairByLabel(%q) not found", label)
			continue
		}
		if p.Label() != label {
			t.Errorf("Round trip of %q gave %q", label, p.Label())
		}
	}

	if _, ok := PairByLabel("English → French"); ok {
		t.Error("Expected unknown label to be rejected")
	}
}

func TestParsePair(t *testing.T) {
	tests := []struct {
		input   string
		want    Pair
		wantErr string
	}{
		{input: "en-hi", want: Pair{English, Hindi}},
		{input: " HI-BN ", want: Pair{Hindi, Bangla}},
		{input: "bn-en", want: Pair{Bangla, English}},
		{input: "en-fr", wantErr: "unsupported language pair"},
		{input: "hi-hi", wantErr: "unsupported language pair"},
		{input: "enhi", wantErr: "expected form src-tgt"},
		{input: "", wantErr: "expected form src-tgt"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParsePair(tt.input)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("ParsePair(%q) error = %v, want containing %q", tt.input, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParsePair(%q) unexpected error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParsePair(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestInvolvesPivot(t *testing.T) {
	tests := []struct {
		pair Pair
		want bool
	}{
		{Pair{English, Hindi}, true},
		{Pair{Bangla, English}, true},
		{Pair{Hindi, Bangla}, false},
		{Pair{Bangla, Hindi}, false},
	}

	for _, tt := range tests {
		if got := tt.pair.InvolvesPivot(); got != tt.want {
			t.Errorf("%s.InvolvesPivot() = %v, want %v", tt.pair, got, tt.want)
		}
	}
}
