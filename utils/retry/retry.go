package retry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/FrenchMajesty/turbo-kit/utils/logger"
	"github.com/google/uuid"
)

// Operation is the work being retried. attempt starts at 1.
type Operation[T any] func(attempt int) (T, error)

// Options configures a single Execute call.
type Options struct {
	Config Config
	// Retryable decides which failures are retried. Nil retries every error.
	Retryable Classifier
	// Logger receives debug entries for every attempt. Nil disables logging.
	Logger logger.Logger
	// Name labels log entries and errors. Defaults to "operation".
	Name string

	// sleep replaces the context-aware timer in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// Result is the outcome delivered by ExecuteAsync.
type Result[T any] struct {
	Value    T
	Attempts int
	State    State
	Err      error
}

// Execute calls operation until it succeeds, fails with an error that
// opts.Retryable rejects, or uses up opts.Config.MaxAttempts. Between
// attempts it waits for the current delay, which then grows by the
// backoff multiplier.
func Execute[T any](ctx context.Context, opts Options, operation Operation[T]) (T, error) {
	result := execute(ctx, opts, operation)
	return result.Value, result.Err
}

// Do is Execute for operations that produce no value.
func Do(ctx context.Context, opts Options, operation func(attempt int) error) error {
	if operation == nil {
		return fmt.Errorf("%w: nil operation", ErrInvalidConfig)
	}
	_, err := Execute(ctx, opts, func(attempt int) (struct{}, error) {
		return struct{}{}, operation(attempt)
	})
	return err
}

// ExecuteAsync runs Execute on its own goroutine and delivers the single
// Result on the returned channel, which is then closed.
func ExecuteAsync[T any](ctx context.Context, opts Options, operation Operation[T]) <-chan Result[T] {
	ch := make(chan Result[T], 1)
	go func() {
		defer close(ch)
		ch <- execute(ctx, opts, operation)
	}()
	return ch
}

func execute[T any](ctx context.Context, opts Options, operation Operation[T]) Result[T] {
	if operation == nil {
		return Result[T]{State: StateFailed, Err: fmt.Errorf("%w: nil operation", ErrInvalidConfig)}
	}
	if err := opts.Config.Validate(); err != nil {
		return Result[T]{State: StateFailed, Err: err}
	}

	exec := newRun(opts)
	cfg := opts.Config
	delay := cfg.InitialDelay

	exec.debug("retry: start", 0, nil)

	var lastErr error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		exec.debug("retry: calling", attempt, map[string]any{"state": StateRunning.String()})

		value, err := operation(attempt)
		if err == nil {
			exec.debug("retry: succeeded", attempt, map[string]any{"state": StateSucceeded.String()})
			return Result[T]{Value: value, Attempts: attempt, State: StateSucceeded}
		}
		lastErr = err

		exec.debug("retry: failed", attempt, map[string]any{"error": err.Error()})

		if !exec.retryable(err) {
			return Result[T]{Attempts: attempt, State: StateFailed, Err: exec.fail(ErrUnrecoverable, err, attempt)}
		}
		if attempt == cfg.MaxAttempts {
			return Result[T]{Attempts: attempt, State: StateFailed, Err: exec.fail(ErrAttemptsExhausted, err, attempt)}
		}

		if delay > 0 {
			exec.debug("retry: sleeping", attempt, map[string]any{"delay": delay.String()})
			if err := exec.sleep(ctx, delay); err != nil {
				return Result[T]{Attempts: attempt, State: StateFailed, Err: exec.fail(ErrInterrupted, errors.Join(err, lastErr), attempt)}
			}
			delay = cfg.NextDelay(delay)
		}
	}

	// Validate guarantees MaxAttempts >= 1, so every path above returns.
	return Result[T]{Attempts: cfg.MaxAttempts, State: StateFailed, Err: exec.fail(ErrInvariantViolation, lastErr, cfg.MaxAttempts)}
}

// run holds the per-invocation collaborators. It is never shared.
type run struct {
	id          string
	name        string
	maxAttempts int
	log         logger.Logger
	retryable   Classifier
	sleep       func(ctx context.Context, d time.Duration) error
}

func newRun(opts Options) *run {
	r := &run{
		id:          uuid.NewString(),
		name:        opts.Name,
		maxAttempts: opts.Config.MaxAttempts,
		log:         opts.Logger,
		retryable:   opts.Retryable,
		sleep:       opts.sleep,
	}
	if r.name == "" {
		r.name = "operation"
	}
	if r.retryable == nil {
		r.retryable = Always
	}
	if r.sleep == nil {
		r.sleep = sleepWithContext
	}
	return r
}

// fail logs the terminal failure and builds the error returned to the caller.
func (r *run) fail(kind, cause error, attempt int) *Error {
	fields := map[string]any{"state": StateFailed.String(), "reason": kind.Error()}
	if cause != nil {
		fields["error"] = cause.Error()
	}
	r.debug("retry: giving up", attempt, fields)

	return &Error{Kind: kind, Cause: cause, Attempt: attempt, Name: r.name}
}

func (r *run) debug(msg string, attempt int, extra map[string]any) {
	if r.log == nil {
		return
	}

	fields := map[string]any{
		"retry":        r.name,
		"execution_id": r.id,
		"max_attempts": r.maxAttempts,
	}
	if attempt > 0 {
		fields["attempt"] = attempt
	}
	for k, v := range extra {
		fields[k] = v
	}
	logger.Debug(r.log, msg, fields)
}

// sleepWithContext waits for d or until ctx is done, whichever comes first.
func sleepWithContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("context done: %w", ctx.Err())
	}
}
