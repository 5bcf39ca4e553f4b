// ABOUTME: Error taxonomy for the workout session.
// ABOUTME: Sentinels are matched with errors.Is; StateError adds op and phase.
package session

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState means a transition was requested while its
	// precondition was false.
	ErrInvalidState = errors.New("invalid state")

	// ErrEmptyWorkout means completion was requested with no exercises.
	ErrEmptyWorkout = errors.New("workout has no exercises")

	// ErrSaveFailed wraps a backend rejection of the finished workout.
	// Session state is retained so the save can be retried.
	ErrSaveFailed = errors.New("save failed")

	// ErrValidationFailed means user-entered data was rejected.
	ErrValidationFailed = errors.New("validation failed")
)

// StateError describes a rejected transition.
type StateError struct {
	Op     string
	Phase  Phase
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s: %s (phase %s): %s", e.Op, ErrInvalidState, e.Phase, e.Reason)
}

// Unwrap lets errors.Is match ErrInvalidState.
func (e *StateError) Unwrap() error {
	return ErrInvalidState
}

// ValidationError wraps ErrValidationFailed with a formatted message.
func ValidationError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrValidationFailed, fmt.Sprintf(format, args...))
}
