package engine

import (
	"errors"
	"fmt"
	"strings"
)

// ErrModelNotFound is matched by errors.Is when a model identifier cannot be
// resolved by the backend.
var ErrModelNotFound = errors.New("model not found")

// hubNotFoundMessage is what the Hugging Face tooling reports for an unknown
// model identifier. It is only consulted when a backend failed to return a
// typed error.
const hubNotFoundMessage = "is not a local folder and is not a valid model identifier"

// NotFoundError reports an unresolvable model identifier.
type NotFoundError struct {
	Model string
	// Detail is the backend's own message, if any
	Detail string
}

func (e *NotFoundError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("model %s not found: %s", e.Model, e.Detail)
	}
	return fmt.Sprintf("model %s not found", e.Model)
}

// Is makes errors.Is(err, ErrModelNotFound) succeed.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrModelNotFound
}

// IsNotFound reports whether err signals an unresolvable model identifier.
// Typed errors are preferred; the Hugging Face message match is an interim
// heuristic for backends that only surface text.
func IsNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrModelNotFound) {
		return true
	}
	return strings.Contains(err.Error(), hubNotFoundMessage)
}

// MissingDependencyError reports that a backend cannot be used at all.
type MissingDependencyError struct {
	Backend  string
	Guidance string
	Err      error
}

func (e *MissingDependencyError) Error() string {
	msg := fmt.Sprintf("translation backend %q is not usable", e.Backend)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	if e.Guidance != "" {
		msg += "\n\n" + e.Guidance
	}
	return msg
}

func (e *MissingDependencyError) Unwrap() error {
	return e.Err
}
