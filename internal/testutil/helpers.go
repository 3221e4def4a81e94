package testutil

import (
	"testing"
	"time"
)

// Receive waits for a value on ch or fails the test after timeout.
func Receive[T any](t *testing.T, ch <-chan T, timeout time.Duration) T {
	t.Helper()

	select {
	case v := <-ch:
		return v
	case <-time.After(timeout):
		t.Fatalf("Timed out after %v waiting for value", timeout)
	}

	var zero T
	return zero
}

// Equal fails the test when two string slices differ.
func Equal(t *testing.T, got, want []string) {
	t.Helper()

	if len(got) != len(want) {
		t.Fatalf("Got %d entries %v, want %d entries %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Entry %d = %q, want %q", i, got[i], want[i])
		}
	}
}
