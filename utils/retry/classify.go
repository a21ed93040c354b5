package retry

import "errors"

// Classifier reports whether err is worth another attempt.
type Classifier func(err error) bool

// Always treats every error as retryable. It is the default when
// Options.Retryable is nil.
func Always(error) bool { return true }

// Never treats every error as fatal, so the first failure ends execution.
func Never(error) bool { return false }

// IsAny matches errors that wrap any of targets, as errors.Is does.
func IsAny(targets ...error) Classifier {
	return func(err error) bool {
		for _, target := range targets {
			if errors.Is(err, target) {
				return true
			}
		}
		return false
	}
}

// AsType matches errors whose chain contains an E, as errors.As does.
func AsType[E error]() Classifier {
	return func(err error) bool {
		var target E
		return errors.As(err, &target)
	}
}

// Retryable marks err as transient so IsRetryable recognises it. A nil err
// stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &retryableError{err: err}
}

// IsRetryable is a Classifier matching errors marked with Retryable.
func IsRetryable(err error) bool {
	var marked *retryableError
	return errors.As(err, &marked)
}

type retryableError struct {
	err error
}

func (e *retryableError) Error() string { return e.err.Error() }
func (e *retryableError) Unwrap() error { return e.err }
