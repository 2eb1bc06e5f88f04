package core

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"time"
)

// RetryPolicy decides whether a failed request should be retried and how
// long to wait before the next attempt.
type RetryPolicy interface {
	// NextDelay returns the delay before attempt n (0-based) is retried.
	// The second return value is false when no further attempts should be
	// made.
	NextDelay(attempt int, err error) (time.Duration, bool)
}

// RetryConfig implements RetryPolicy with exponential backoff and jitter.
type RetryConfig struct {
	// MaxRetries is the number of retries after the initial attempt.
	MaxRetries int
	// BaseDelay is the delay before the first retry.
	BaseDelay time.Duration
	// MaxDelay caps the backoff growth.
	MaxDelay time.Duration
	// Jitter is the fraction of the delay randomized in both directions,
	// e.g. 0.2 spreads a 1s delay over [0.8s, 1.2s].
	Jitter float64
}

// DefaultRetryConfig returns the retry policy used when none is configured.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   30 * time.Second,
		Jitter:     0.2,
	}
}

// NextDelay implements RetryPolicy.
func (c RetryConfig) NextDelay(attempt int, err error) (time.Duration, bool) {
	if attempt >= c.MaxRetries {
		return 0, false
	}
	if !isRetryable(err) {
		return 0, false
	}

	delay := float64(c.BaseDelay) * math.Pow(2, float64(attempt))
	if max := float64(c.MaxDelay); delay > max {
		delay = max
	}
	if c.Jitter > 0 {
		spread := delay * c.Jitter
		delay += (rand.Float64()*2 - 1) * spread
	}
	if delay < 0 {
		delay = 0
	}
	return time.Duration(delay), true
}

// NoRetry is a RetryPolicy that never retries.
type NoRetry struct{}

func (NoRetry) NextDelay(int, error) (time.Duration, bool) { return 0, false }

// isRetryable classifies errors. Validation failures, auth failures, and
// context cancellation never become transient by waiting.
func isRetryable(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	if errors.Is(err, ErrInvalidRequest) || errors.Is(err, ErrUnauthorized) ||
		errors.Is(err, ErrBadRequest) || errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrDecode) {
		return false
	}
	if errors.Is(err, ErrRateLimited) || errors.Is(err, ErrServer) || errors.Is(err, ErrNetwork) {
		return true
	}

	var pe *ProviderError
	if errors.As(err, &pe) {
		return pe.Status == 429 || pe.Status >= 500
	}
	// Unknown errors are assumed transient (connection resets, timeouts).
	return true
}

// SleepWithContext waits for the given duration unless the context is
// canceled first.
func SleepWithContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
