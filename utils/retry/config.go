package retry

import (
	"fmt"
	"math"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config describes the attempt budget and the backoff schedule.
type Config struct {
	MaxAttempts       int           `koanf:"maxattempts" json:"maxattempts" validate:"gte=1"`
	InitialDelay      time.Duration `koanf:"initialdelay" json:"initialdelay" validate:"gte=0"`
	BackoffMultiplier float64       `koanf:"backoffmultiplier" json:"backoffmultiplier" validate:"gte=0"`
	MaxDelay          time.Duration `koanf:"maxdelay" json:"maxdelay" validate:"gte=0"`
}

var validate = validator.New()

// DefaultConfig returns 3 attempts starting at 200ms and doubling, uncapped.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:       3,
		InitialDelay:      200 * time.Millisecond,
		BackoffMultiplier: 2.0,
	}
}

// Validate reports an ErrInvalidConfig error when a field is out of range.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// NextDelay returns the delay that follows current: current times the
// multiplier, truncated to whole nanoseconds, capped at MaxDelay when set and
// saturating at the largest representable duration.
func (c Config) NextDelay(current time.Duration) time.Duration {
	next := float64(current) * c.BackoffMultiplier

	var d time.Duration
	if next >= float64(math.MaxInt64) {
		d = time.Duration(math.MaxInt64)
	} else {
		d = time.Duration(next)
	}

	if c.MaxDelay > 0 && d > c.MaxDelay {
		d = c.MaxDelay
	}
	return d
}
