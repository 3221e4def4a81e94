package hfhub

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"unicode/utf8"

	"github.com/sony/gobreaker"

	"codeberg.org/snonux/anuvad/internal/engine"
)

func newHubServer(t *testing.T, known map[string]bool) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		repo := strings.TrimPrefix(r.URL.Path, "/api/models/")
		if !known[repo] {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Repository not found"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"id": repo, "pipeline_tag": "translation"})
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestLoadTokenizerResolvesModel(t *testing.T) {
	hub := newHubServer(t, map[string]bool{"Helsinki-NLP/opus-mt-en-hi": true})
	e := New(&Config{HubURL: hub.URL})

	if _, err := e.LoadTokenizer(context.Background(), "opus-mt-en-hi"); err != nil {
		t.Fatalf("LoadTokenizer failed: %v", err)
	}

	_, err := e.LoadTokenizer(context.Background(), "opus-mt-hi-bn")
	if !errors.Is(err, engine.ErrModelNotFound) {
		t.Fatalf("Expected ErrModelNotFound for missing model, got %v", err)
	}
}

func TestResolveUnauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		if r.Header.Get("Authorization") != "" {
			w.Write([]byte(`{"error":"Invalid credentials in Authorization header"}`))
			return
		}
		w.Write([]byte(`{"error":"Repository not found"}`))
	}))
	defer srv.Close()

	tests := []struct {
		name         string
		token        string
		wantNotFound bool
	}{
		{"anonymous", "", true},
		{"rejected token", "hf_revoked", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := New(&Config{HubURL: srv.URL, Token: tt.token})

			_, err := e.LoadTokenizer(context.Background(), "opus-mt-en-hi")
			if err == nil {
				t.Fatal("Expected error for 401 hub reply")
			}
			if got := engine.IsNotFound(err); got != tt.wantNotFound {
				t.Errorf("IsNotFound = %v, want %v (err: %v)", got, tt.wantNotFound, err)
			}
			if !tt.wantNotFound && !strings.Contains(err.Error(), "check HF token") {
				t.Errorf("Expected token hint in %q", err.Error())
			}
		})
	}
}

func TestAbbreviate(t *testing.T) {
	tests := []struct {
		in   string
		n    int
		want string
	}{
		{"short", 10, "short"},
		{"abcdefghij", 8, "abcde..."},
		{"नमस्ते दुनिया", 6, "नमस..."},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got := abbreviate(tt.in, tt.n)
			if got != tt.want {
				t.Errorf("abbreviate(%q, %d) = %q, want %q", tt.in, tt.n, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("abbreviate produced invalid UTF-8: %q", got)
			}
		})
	}
}

func TestResolveServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	e := New(&Config{HubURL: srv.URL})
	_, err := e.LoadModel(context.Background(), "opus-mt-en-hi")
	if err == nil {
		t.Fatal("Expected error for 502 hub reply")
	}
	if engine.IsNotFound(err) {
		t.Errorf("A gateway failure must not be classified as not found: %v", err)
	}
}

func TestLoadModelGenerate(t *testing.T) {
	hub := newHubServer(t, map[string]bool{"Helsinki-NLP/opus-mt-en-hi": true})

	var gotInput string
	var gotAuth string
	inference := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/Helsinki-NLP/opus-mt-en-hi" {
			t.Errorf("Unexpected inference path %s", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")

		var req inferenceRequest
		json.NewDecoder(r.Body).Decode(&req)
		gotInput = req.Inputs

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode([]map[string]string{{"translation_text": "नमस्ते"}})
	}))
	defer inference.Close()

	e := New(&Config{HubURL: hub.URL, InferenceURL: inference.URL, Token: "hf_test"})

	ctx := context.Background()
	tok, err := e.LoadTokenizer(ctx, "opus-mt-en-hi")
	if err != nil {
		t.Fatalf("LoadTokenizer failed: %v", err)
	}
	model, err := e.LoadModel(ctx, "opus-mt-en-hi")
	if err != nil {
		t.Fatalf("LoadModel failed: %v", err)
	}

	input, _ := tok.Encode("Hello")
	output, err := model.Generate(ctx, input)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	text, _ := tok.Decode(output, true)

	if text != "नमस्ते" {
		t.Errorf("Translation = %q, want %q", text, "नमस्ते")
	}
	if gotInput != "Hello" {
		t.Errorf("Inference input = %q, want %q", gotInput, "Hello")
	}
	if gotAuth != "Bearer hf_test" {
		t.Errorf("Authorization header = %q", gotAuth)
	}
}

func TestInferenceBreakerOpens(t *testing.T) {
	hub := newHubServer(t, map[string]bool{"Helsinki-NLP/opus-mt-en-hi": true})

	var hits int32
	inference := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer inference.Close()

	e := New(&Config{HubURL: hub.URL, InferenceURL: inference.URL, BreakerFailures: 2})
	model, err := e.LoadModel(context.Background(), "opus-mt-en-hi")
	if err != nil {
		t.Fatalf("LoadModel failed: %v", err)
	}

	var tok engine.RuneTokenizer
	input, _ := tok.Encode("Hello")

	for i := 0; i < 2; i++ {
		if _, err := model.Generate(context.Background(), input); err == nil {
			t.Fatalf("Call %d: expected error", i)
		}
	}

	_, err = model.Generate(context.Background(), input)
	if !errors.Is(err, gobreaker.ErrOpenState) {
		t.Errorf("Expected open breaker, got %v", err)
	}
	if got := atomic.LoadInt32(&hits); got != 2 {
		t.Errorf("Expected 2 inference hits, got %d", got)
	}
}

func TestInferenceClientErrorDoesNotTrip(t *testing.T) {
	hub := newHubServer(t, map[string]bool{"Helsinki-NLP/opus-mt-en-hi": true})

	var hits int32
	inference := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer inference.Close()

	e := New(&Config{HubURL: hub.URL, InferenceURL: inference.URL, BreakerFailures: 1})
	model, _ := e.LoadModel(context.Background(), "opus-mt-en-hi")

	var tok engine.RuneTokenizer
	input, _ := tok.Encode("Hello")
	for i := 0; i < 3; i++ {
		model.Generate(context.Background(), input)
	}

	if got := atomic.LoadInt32(&hits); got != 3 {
		t.Errorf("Expected every request to reach the server, got %d hits", got)
	}
}
