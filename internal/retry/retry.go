// Package retry re-runs short operations that fail with transient errors,
// such as a local database that another process holds locked.
package retry

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"
)

// Predicate reports whether an error is worth another attempt.
type Predicate func(error) bool

// Config controls retry behavior.
type Config struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultConfig returns a configuration sized for local lock contention.
func DefaultConfig() Config {
	return Config{
		MaxAttempts: 5,
		BaseDelay:   20 * time.Millisecond,
		MaxDelay:    500 * time.Millisecond,
	}
}

// Do calls fn until it succeeds, shouldRetry rejects its error, the
// attempts run out or ctx is done. A nil predicate retries only
// context.DeadlineExceeded.
func Do(ctx context.Context, config Config, shouldRetry Predicate, fn func() error) error {
	if config.MaxAttempts <= 0 {
		config.MaxAttempts = 1
	}
	if shouldRetry == nil {
		shouldRetry = isDeadline
	}

	var err error
	for attempt := 1; attempt <= config.MaxAttempts; attempt++ {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		err = fn()
		if err == nil {
			return nil
		}
		if attempt == config.MaxAttempts || !shouldRetry(err) {
			return err
		}

		delay := backoffDelay(config.BaseDelay, config.MaxDelay, attempt)
		if delay <= 0 {
			continue
		}
		if !sleep(ctx, delay) {
			return ctx.Err()
		}
	}

	return err
}

func isDeadline(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// backoffDelay doubles base per attempt, caps it at max and picks a
// uniformly jittered delay in [0, cap].
func backoffDelay(base, max time.Duration, attempt int) time.Duration {
	if base <= 0 {
		return 0
	}
	if attempt < 1 {
		attempt = 1
	}

	delay := base << (attempt - 1)
	if max > 0 && delay > max {
		delay = max
	}
	if delay <= 0 {
		return 0
	}
	return rand.N(delay + 1)
}

func sleep(ctx context.Context, delay time.Duration) bool {
	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
