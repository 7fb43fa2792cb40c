// Package apperr defines the typed errors the engine's outer layers
// (content loading, persistence, the debug API) return at their
// boundaries. internal/state itself never returns an error: per the
// engine's error handling design, the step and command surface are total.
// Named apperr rather than errors to avoid shadowing the standard
// library package in every file that needs both.
package apperr

import "fmt"

// NotFoundError reports that a named resource could not be located.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %s not found", e.Resource, e.ID)
}

// InvalidBundleError reports a structurally invalid content bundle.
type InvalidBundleError struct {
	Reason string
}

func (e *InvalidBundleError) Error() string {
	return fmt.Sprintf("invalid content bundle: %s", e.Reason)
}

// HashMismatchError reports a persisted document whose stored hash does
// not match its recomputed content hash.
type HashMismatchError struct {
	Want string
	Got  string
}

func (e *HashMismatchError) Error() string {
	return fmt.Sprintf("persisted document hash mismatch: want %s, got %s", e.Want, e.Got)
}
