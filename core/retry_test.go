package core

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetryConfigStopsAtMaxRetries(t *testing.T) {
	rc := RetryConfig{MaxRetries: 2, BaseDelay: time.Millisecond, MaxDelay: time.Second}

	_, ok := rc.NextDelay(0, ErrServer)
	assert.True(t, ok)
	_, ok = rc.NextDelay(1, ErrServer)
	assert.True(t, ok)
	_, ok = rc.NextDelay(2, ErrServer)
	assert.False(t, ok)
}

func TestRetryConfigBackoffGrows(t *testing.T) {
	rc := RetryConfig{MaxRetries: 5, BaseDelay: 100 * time.Millisecond, MaxDelay: time.Minute}

	d0, _ := rc.NextDelay(0, ErrNetwork)
	d2, _ := rc.NextDelay(2, ErrNetwork)
	assert.Equal(t, 100*time.Millisecond, d0)
	assert.Equal(t, 400*time.Millisecond, d2)
}

func TestRetryConfigRespectsMaxDelay(t *testing.T) {
	rc := RetryConfig{MaxRetries: 20, BaseDelay: time.Second, MaxDelay: 5 * time.Second}

	d, ok := rc.NextDelay(10, ErrServer)
	require.True(t, ok)
	assert.LessOrEqual(t, d, 5*time.Second)
}

func TestRetryConfigJitterStaysInBand(t *testing.T) {
	rc := RetryConfig{MaxRetries: 3, BaseDelay: time.Second, MaxDelay: time.Minute, Jitter: 0.2}

	for i := 0; i < 50; i++ {
		d, ok := rc.NextDelay(0, ErrServer)
		require.True(t, ok)
		assert.GreaterOrEqual(t, d, 800*time.Millisecond)
		assert.LessOrEqual(t, d, 1200*time.Millisecond)
	}
}

func TestNonRetryableErrors(t *testing.T) {
	rc := DefaultRetryConfig()
	cases := []struct {
		name string
		err  error
	}{
		{"nil", nil},
		{"invalid request", &MissingFieldError{Field: "Model"}},
		{"unauthorized", ErrUnauthorized},
		{"bad request", ErrBadRequest},
		{"not found", ErrNotFound},
		{"decode", ErrDecode},
		{"context canceled", context.Canceled},
		{"deadline exceeded", context.DeadlineExceeded},
		{"provider 400", &ProviderError{Status: 400, Err: ErrBadRequest}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := rc.NextDelay(0, tc.err)
			assert.False(t, ok)
		})
	}
}

func TestRetryableErrors(t *testing.T) {
	rc := DefaultRetryConfig()
	cases := []struct {
		name string
		err  error
	}{
		{"rate limited", ErrRateLimited},
		{"server", ErrServer},
		{"network", ErrNetwork},
		{"provider 429", &ProviderError{Status: 429, Err: ErrRateLimited}},
		{"provider 503", &ProviderError{Status: 503, Err: ErrServer}},
		{"unknown", errors.New("connection reset by peer")},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok := rc.NextDelay(0, tc.err)
			assert.True(t, ok)
		})
	}
}

func TestNoRetry(t *testing.T) {
	_, ok := NoRetry{}.NextDelay(0, ErrServer)
	assert.False(t, ok)
}

func TestSleepWithContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := SleepWithContext(ctx, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSleepWithContextCompletes(t *testing.T) {
	err := SleepWithContext(context.Background(), time.Millisecond)
	assert.NoError(t, err)
}
