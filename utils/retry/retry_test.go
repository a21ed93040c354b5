package retry

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"testing"
	"time"

	"github.com/FrenchMajesty/turbo-kit/utils/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var (
	errTransient = errors.New("transient failure")
	errPermanent = errors.New("permanent failure")
)

// recorder captures the order of attempts and sleeps without actually waiting.
type recorder struct {
	mu     sync.Mutex
	events []string
	delays []time.Duration
	err    error
}

func (r *recorder) sleep(_ context.Context, d time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf("sleep %s", d))
	r.delays = append(r.delays, d)
	return r.err
}

func (r *recorder) call(attempt int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, fmt.Sprintf("call %d", attempt))
}

func testOptions(rec *recorder, cfg Config, classifier Classifier) Options {
	return Options{
		Config:    cfg,
		Retryable: classifier,
		Name:      "test-op",
		sleep:     rec.sleep,
	}
}

func TestExecute_SucceedsOnThirdAttempt(t *testing.T) {
	rec := &recorder{}
	opts := testOptions(rec, Config{MaxAttempts: 5, InitialDelay: time.Second, BackoffMultiplier: 2}, IsAny(errTransient))

	result, err := Execute(context.Background(), opts, func(attempt int) (string, error) {
		rec.call(attempt)
		if attempt < 3 {
			return "", errTransient
		}
		return "done", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "done", result)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, rec.delays, "exactly two suspensions")
	assert.Equal(t, []string{"call 1", "sleep 1s", "call 2", "sleep 2s", "call 3"}, rec.events)
}

func TestExecute_ExhaustsAttempts(t *testing.T) {
	rec := &recorder{}
	opts := testOptions(rec, Config{MaxAttempts: 3, InitialDelay: time.Second, BackoffMultiplier: 2}, IsAny(errTransient))

	calls := 0
	_, err := Execute(context.Background(), opts, func(attempt int) (int, error) {
		calls++
		return 0, fmt.Errorf("attempt %d: %w", attempt, errTransient)
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, rec.delays)

	assert.ErrorIs(t, err, ErrAttemptsExhausted)
	assert.ErrorIs(t, err, errTransient)
	assert.NotErrorIs(t, err, ErrUnrecoverable)

	var retryErr *Error
	require.ErrorAs(t, err, &retryErr)
	assert.Equal(t, 3, retryErr.Attempt)
	assert.EqualError(t, retryErr.Cause, "attempt 3: transient failure", "the last cause is kept")
}

func TestExecute_FatalErrorStopsImmediately(t *testing.T) {
	rec := &recorder{}
	opts := testOptions(rec, Config{MaxAttempts: 5, InitialDelay: time.Second, BackoffMultiplier: 2}, IsAny(errTransient))

	calls := 0
	_, err := Execute(context.Background(), opts, func(attempt int) (int, error) {
		calls++
		return 0, errPermanent
	})

	assert.Equal(t, 1, calls)
	assert.Empty(t, rec.delays, "no suspension for fatal errors")
	assert.ErrorIs(t, err, ErrUnrecoverable)
	assert.ErrorIs(t, err, errPermanent)

	var retryErr *Error
	require.ErrorAs(t, err, &retryErr)
	assert.Equal(t, 1, retryErr.Attempt)
	assert.Contains(t, err.Error(), "unrecoverable error during iteration")
}

func TestExecute_FatalAfterRetries(t *testing.T) {
	rec := &recorder{}
	opts := testOptions(rec, Config{MaxAttempts: 5, InitialDelay: time.Millisecond, BackoffMultiplier: 1}, IsAny(errTransient))

	_, err := Execute(context.Background(), opts, func(attempt int) (int, error) {
		if attempt == 3 {
			return 0, errPermanent
		}
		return 0, errTransient
	})

	assert.ErrorIs(t, err, ErrUnrecoverable)
	assert.Len(t, rec.delays, 2)
}

func TestExecute_DelaySchedule(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want []time.Duration
	}{
		{
			name: "zero initial delay never sleeps",
			cfg:  Config{MaxAttempts: 4, InitialDelay: 0, BackoffMultiplier: 2},
			want: nil,
		},
		{
			name: "zero multiplier sleeps once",
			cfg:  Config{MaxAttempts: 4, InitialDelay: 10 * time.Millisecond, BackoffMultiplier: 0},
			want: []time.Duration{10 * time.Millisecond},
		},
		{
			name: "constant delay",
			cfg:  Config{MaxAttempts: 4, InitialDelay: 5 * time.Millisecond, BackoffMultiplier: 1},
			want: []time.Duration{5 * time.Millisecond, 5 * time.Millisecond, 5 * time.Millisecond},
		},
		{
			name: "capped growth",
			cfg:  Config{MaxAttempts: 5, InitialDelay: time.Second, BackoffMultiplier: 3, MaxDelay: 5 * time.Second},
			want: []time.Duration{time.Second, 3 * time.Second, 5 * time.Second, 5 * time.Second},
		},
		{
			name: "fractional multiplier truncates",
			cfg:  Config{MaxAttempts: 4, InitialDelay: 3, BackoffMultiplier: 1.5},
			want: []time.Duration{3, 4, 6},
		},
		{
			name: "single attempt never sleeps",
			cfg:  Config{MaxAttempts: 1, InitialDelay: time.Second, BackoffMultiplier: 2},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			err := Do(context.Background(), testOptions(rec, tt.cfg, nil), func(int) error {
				return errTransient
			})
			assert.ErrorIs(t, err, ErrAttemptsExhausted)
			assert.Equal(t, tt.want, rec.delays)
		})
	}
}

func TestExecute_InvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero attempts", Config{MaxAttempts: 0}},
		{"negative delay", Config{MaxAttempts: 1, InitialDelay: -time.Second}},
		{"negative multiplier", Config{MaxAttempts: 1, BackoffMultiplier: -1}},
		{"negative cap", Config{MaxAttempts: 1, MaxDelay: -time.Second}},
		{"nan multiplier", Config{MaxAttempts: 1, BackoffMultiplier: math.NaN()}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called := false
			_, err := Execute(context.Background(), Options{Config: tt.cfg}, func(int) (int, error) {
				called = true
				return 1, nil
			})
			assert.ErrorIs(t, err, ErrInvalidConfig)
			assert.False(t, called)
		})
	}

	_, err := Execute[int](context.Background(), Options{Config: DefaultConfig()}, nil)
	assert.ErrorIs(t, err, ErrInvalidConfig)
	assert.ErrorIs(t, Do(context.Background(), Options{Config: DefaultConfig()}, nil), ErrInvalidConfig)
}

func TestExecute_ContextCancelledWhileWaiting(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	opts := Options{Config: Config{MaxAttempts: 5, InitialDelay: time.Hour, BackoffMultiplier: 1}}

	calls := 0
	start := time.Now()
	_, err := Execute(ctx, opts, func(int) (int, error) {
		calls++
		cancel()
		return 0, errTransient
	})

	assert.Less(t, time.Since(start), time.Minute)
	assert.Equal(t, 1, calls)
	assert.ErrorIs(t, err, ErrInterrupted)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, errTransient)
}

func TestExecute_RealSleeper(t *testing.T) {
	opts := Options{Config: Config{MaxAttempts: 3, InitialDelay: time.Millisecond, BackoffMultiplier: 2}}

	start := time.Now()
	value, err := Execute(context.Background(), opts, func(attempt int) (int, error) {
		if attempt < 3 {
			return 0, errTransient
		}
		return attempt, nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, value)
	assert.GreaterOrEqual(t, time.Since(start), 3*time.Millisecond)
}

func TestExecute_LogsAtDebugLevel(t *testing.T) {
	log := logger.NewMockLogger()
	log.On("Log", logger.LevelDebug, mock.Anything, mock.Anything).Return()

	rec := &recorder{}
	opts := testOptions(rec, Config{MaxAttempts: 3, InitialDelay: time.Second, BackoffMultiplier: 2}, nil)
	opts.Logger = log

	_, err := Execute(context.Background(), opts, func(attempt int) (int, error) {
		if attempt == 1 {
			return 0, errTransient
		}
		return 7, nil
	})
	require.NoError(t, err)

	var messages []string
	var executionID any
	for _, call := range log.Calls {
		assert.Equal(t, logger.LevelDebug, call.Arguments.Get(0))
		messages = append(messages, call.Arguments.String(1))

		fields := call.Arguments.Get(2).(map[string]any)
		assert.Equal(t, "test-op", fields["retry"])
		if executionID == nil {
			executionID = fields["execution_id"]
		}
		assert.Equal(t, executionID, fields["execution_id"], "one id per invocation")
	}

	assert.Equal(t, []string{
		"retry: start",
		"retry: calling",
		"retry: failed",
		"retry: sleeping",
		"retry: calling",
		"retry: succeeded",
	}, messages)

	calling := log.Calls[1].Arguments.Get(2).(map[string]any)
	assert.Equal(t, "running", calling["state"])
	assert.Equal(t, 1, calling["attempt"])

	succeeded := log.Calls[5].Arguments.Get(2).(map[string]any)
	assert.Equal(t, "succeeded", succeeded["state"])

	failed := log.Calls[2].Arguments.Get(2).(map[string]any)
	assert.Equal(t, 1, failed["attempt"])
	assert.Equal(t, "transient failure", failed["error"])

	sleeping := log.Calls[3].Arguments.Get(2).(map[string]any)
	assert.Equal(t, "1s", sleeping["delay"])
}

func TestExecuteAsync(t *testing.T) {
	rec := &recorder{}
	opts := testOptions(rec, Config{MaxAttempts: 2, InitialDelay: time.Second, BackoffMultiplier: 2}, nil)

	result := <-ExecuteAsync(context.Background(), opts, func(attempt int) (string, error) {
		if attempt == 1 {
			return "", errTransient
		}
		return "async", nil
	})

	require.NoError(t, result.Err)
	assert.Equal(t, "async", result.Value)
	assert.Equal(t, 2, result.Attempts)
	assert.Equal(t, StateSucceeded, result.State)

	failed := <-ExecuteAsync(context.Background(), testOptions(&recorder{}, DefaultConfig(), Never), func(int) (string, error) {
		return "", errPermanent
	})
	assert.ErrorIs(t, failed.Err, ErrUnrecoverable)
	assert.Equal(t, 1, failed.Attempts)
	assert.Equal(t, StateFailed, failed.State)
}

func TestError_Format(t *testing.T) {
	err := &Error{Kind: ErrAttemptsExhausted, Cause: errTransient, Attempt: 3, Name: "fetch"}
	assert.Equal(t, "fetch: operation failed after all retry attempts [attempt:3]: transient failure", err.Error())

	invariant := &Error{Kind: ErrInvariantViolation, Attempt: 2, Name: "fetch"}
	assert.ErrorIs(t, invariant, ErrInvariantViolation)
	assert.Equal(t, "fetch: retry loop finished without returning or failing [attempt:2]", invariant.Error())
}

func TestExecute_DefaultName(t *testing.T) {
	_, err := Execute(context.Background(), Options{Config: Config{MaxAttempts: 1}}, func(int) (int, error) {
		return 0, errTransient
	})
	assert.ErrorContains(t, err, "operation: operation failed after all retry attempts")
}
