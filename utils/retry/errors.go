package retry

import (
	"errors"
	"fmt"
)

var (
	// ErrUnrecoverable is the Kind of an *Error raised by a failure the
	// Classifier rejected.
	ErrUnrecoverable = errors.New("unrecoverable error during iteration")

	// ErrAttemptsExhausted is the Kind of an *Error raised when the last
	// allowed attempt failed with a retryable error.
	ErrAttemptsExhausted = errors.New("operation failed after all retry attempts")

	// ErrInterrupted is the Kind of an *Error raised when ctx was done while
	// waiting between attempts.
	ErrInterrupted = errors.New("retry interrupted while waiting")

	// ErrInvariantViolation means the attempt loop ended without succeeding or
	// failing. It signals a defect in this package, never a caller mistake.
	ErrInvariantViolation = errors.New("retry loop finished without returning or failing")

	// ErrInvalidConfig is returned before any attempt when Options are unusable.
	ErrInvalidConfig = errors.New("invalid retry configuration")
)

// Error is the failure returned by Execute. Both Kind and Cause are reachable
// through errors.Is and errors.As.
type Error struct {
	// Kind is one of ErrUnrecoverable, ErrAttemptsExhausted, ErrInterrupted
	// or ErrInvariantViolation.
	Kind error
	// Cause is the last error returned by the operation.
	Cause error
	// Attempt is the attempt number the failure was observed on.
	Attempt int
	// Name labels the operation, see Options.Name.
	Name string
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("%s: %v [attempt:%d]", e.Name, e.Kind, e.Attempt)
	}
	return fmt.Sprintf("%s: %v [attempt:%d]: %v", e.Name, e.Kind, e.Attempt, e.Cause)
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}
