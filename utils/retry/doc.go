// Package retry provides a retrying execution policy with exponential backoff
// and typed failure classification.
//
// The package supports:
//   - A fixed attempt budget with a multiplicative delay between attempts
//   - A caller supplied Classifier deciding which errors are worth retrying
//   - Immediate abort on errors the Classifier rejects, without spending budget
//   - Context-aware waiting: cancelling ctx interrupts the delay between attempts
//   - Optional debug logging of every attempt, failure and delay
//   - An optional MaxDelay cap (growth is unbounded by default)
//
// Basic Usage:
//
//	ctx := context.Background()
//	opts := retry.Options{
//	    Config:    retry.DefaultConfig(),
//	    Retryable: retry.IsAny(ErrTimeout, ErrBusy),
//	    Logger:    log,
//	    Name:      "fetch-profile",
//	}
//
//	profile, err := retry.Execute(ctx, opts, func(attempt int) (*Profile, error) {
//	    return client.FetchProfile(ctx, id)
//	})
//	if errors.Is(err, retry.ErrAttemptsExhausted) {
//	    // every attempt failed with a retryable error
//	}
//
// Configuration:
//
// The Config struct controls the schedule:
//   - MaxAttempts: total number of attempts, including the first (default: 3)
//   - InitialDelay: delay after the first failure (default: 200ms)
//   - BackoffMultiplier: factor applied to the delay after each wait (default: 2.0)
//   - MaxDelay: upper bound for a single delay, 0 for none (default: 0)
//
// The delay before attempt n+1 is InitialDelay * BackoffMultiplier^(n-1),
// truncated to nanoseconds and capped at MaxDelay when one is set.
//
// Error Checking:
//
// Every failure is passed to the Classifier. A rejected error ends execution
// at once with an *Error whose Kind is ErrUnrecoverable. A retryable error on
// the last attempt ends it with ErrAttemptsExhausted. Both keep the original
// error reachable through errors.Is and errors.As.
//
// Context Support:
//
// The operation itself is never cancelled by Execute; it should observe ctx on
// its own. Execute only stops waiting when ctx is done and reports
// ErrInterrupted.
package retry
