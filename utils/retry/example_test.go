package retry_test

import (
	"context"
	"errors"
	"fmt"

	"github.com/FrenchMajesty/turbo-kit/utils/retry"
)

func ExampleExecute() {
	errTimeout := errors.New("timeout")

	opts := retry.Options{
		Config:    retry.Config{MaxAttempts: 5, BackoffMultiplier: 2},
		Retryable: retry.IsAny(errTimeout),
		Name:      "lookup",
	}

	value, err := retry.Execute(context.Background(), opts, func(attempt int) (string, error) {
		if attempt < 3 {
			return "", errTimeout
		}
		return fmt.Sprintf("found on attempt %d", attempt), nil
	})
	fmt.Println(value, err)
	// Output:
	// found on attempt 3 <nil>
}

func ExampleExecute_fatal() {
	errInvalid := errors.New("invalid input")

	opts := retry.Options{
		Config:    retry.Config{MaxAttempts: 5},
		Retryable: retry.Never,
		Name:      "validate",
	}

	_, err := retry.Execute(context.Background(), opts, func(attempt int) (int, error) {
		return 0, errInvalid
	})
	fmt.Println(err)
	fmt.Println(errors.Is(err, retry.ErrUnrecoverable), errors.Is(err, errInvalid))
	// Output:
	// validate: unrecoverable error during iteration [attempt:1]: invalid input
	// true true
}
