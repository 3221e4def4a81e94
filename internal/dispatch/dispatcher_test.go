package dispatch

import (
	"context"
	"errors"
	"testing"
	"time"

	"codeberg.org/snonux/anuvad/internal/lang"
	"codeberg.org/snonux/anuvad/internal/testutil"
)

const timeout = 2 * time.Second

func TestSubmitSuccess(t *testing.T) {
	d := New(context.Background(), func(ctx context.Context, req Request) (string, error) {
		return "[" + string(req.Pair.Target) + "]" + req.Text, nil
	}, nil)

	done := make(chan *Job, 1)
	id, ok := d.Submit(Request{Pair: lang.Default(), Text: "Hello"}, func(j *Job) { done <- j })
	if !ok {
		t.Fatal("Submit rejected on idle dispatcher")
	}

	job := testutil.Receive(t, done, timeout)
	if job.ID != id {
		t.Errorf("Job ID = %d, want %d", job.ID, id)
	}
	if job.Status != StatusCompleted {
		t.Errorf("Status = %v, want Completed", job.Status)
	}
	if job.Result.Text != "[hi]Hello" || job.Result.Err != nil {
		t.Errorf("Unexpected result %+v", job.Result)
	}
	if job.Duration() < 0 {
		t.Errorf("Negative duration %v", job.Duration())
	}
}

func TestSubmitFailure(t *testing.T) {
	boom := errors.New("model not found")
	d := New(context.Background(), func(ctx context.Context, req Request) (string, error) {
		return "partial", boom
	}, nil)

	done := make(chan *Job, 1)
	d.Submit(Request{Pair: lang.Default(), Text: "Hello"}, func(j *Job) { done <- j })

	job := testutil.Receive(t, done, timeout)
	if job.Status != StatusFailed {
		t.Errorf("Status = %v, want Failed", job.Status)
	}
	if !errors.Is(job.Result.Err, boom) {
		t.Errorf("Err = %v, want %v", job.Result.Err, boom)
	}
	if job.Result.Text != "" {
		t.Errorf("Failed job must not carry text, got %q", job.Result.Text)
	}
	if d.Busy() {
		t.Error("Dispatcher still busy after failure")
	}
	if d.Status() != StatusFailed {
		t.Errorf("Dispatcher status = %v, want Failed", d.Status())
	}
}

func TestSubmitRejectsWhileBusy(t *testing.T) {
	release := make(chan struct{})
	d := New(context.Background(), func(ctx context.Context, req Request) (string, error) {
		<-release
		return req.Text, nil
	}, nil)

	done := make(chan *Job, 2)
	if _, ok := d.Submit(Request{Text: "first"}, func(j *Job) { done <- j }); !ok {
		t.Fatal("First submit rejected")
	}
	if !d.Busy() {
		t.Error("Expected dispatcher to be busy")
	}
	if _, ok := d.Submit(Request{Text: "second"}, func(j *Job) { done <- j }); ok {
		t.Fatal("Second submit accepted while busy")
	}

	close(release)
	job := testutil.Receive(t, done, timeout)
	if job.Result.Text != "first" {
		t.Errorf("Unexpected job completed: %+v", job.Result)
	}

	// Idle again: the next submit is accepted
	if _, ok := d.Submit(Request{Text: "third"}, func(j *Job) { done <- j }); !ok {
		t.Fatal("Submit rejected after completion")
	}
	if job := testutil.Receive(t, done, timeout); job.Result.Text != "third" {
		t.Errorf("Unexpected job completed: %+v", job.Result)
	}
}

func TestSubmitRecoversPanic(t *testing.T) {
	d := New(context.Background(), func(ctx context.Context, req Request) (string, error) {
		panic("tokenizer exploded")
	}, nil)

	done := make(chan *Job, 1)
	d.Submit(Request{Text: "Hello"}, func(j *Job) { done <- j })

	job := testutil.Receive(t, done, timeout)
	if job.Status != StatusFailed || job.Result.Err == nil {
		t.Errorf("Expected failed job after panic, got %+v", job)
	}
	if d.Busy() {
		t.Error("Dispatcher still busy after panic")
	}
}

func TestCallbackRunsThroughPost(t *testing.T) {
	posted := make(chan func(), 1)
	d := New(context.Background(), func(ctx context.Context, req Request) (string, error) {
		return "ok", nil
	}, func(fn func()) { posted <- fn })

	called := false
	d.Submit(Request{Text: "Hello"}, func(j *Job) { called = true })

	fn := testutil.Receive(t, posted, timeout)
	if called {
		t.Fatal("Callback ran before the UI loop executed it")
	}
	if !d.Busy() {
		t.Error("Dispatcher must stay busy until the UI loop runs the completion")
	}

	fn()
	if !called {
		t.Error("Callback not run by posted function")
	}
	if d.Busy() {
		t.Error("Dispatcher still busy after completion")
	}
}

func TestJobStatusString(t *testing.T) {
	tests := []struct {
		status JobStatus
		want   string
	}{
		{StatusQueued, "Queued"},
		{StatusProcessing, "Processing"},
		{StatusCompleted, "Completed"},
		{StatusFailed, "Failed"},
		{JobStatus(42), "Unknown"},
	}

	for _, tt := range tests {
		if got := tt.status.String(); got != tt.want {
			t.Errorf("JobStatus(%d).String() = %q, want %q", tt.status, got, tt.want)
		}
	}
}
