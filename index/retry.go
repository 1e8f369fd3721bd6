package index

import (
	"context"
	"time"
)

// LogFunc is the signature for a logging function.
type LogFunc func(format string, args ...any)

// DefaultRetryDelays returns the backoff delays for embedding retries: 1s, 2s, 4s.
func DefaultRetryDelays() []time.Duration {
	return []time.Duration{1 * time.Second, 2 * time.Second, 4 * time.Second}
}

// WithRetry calls fn until it succeeds, sleeping delays[i] before attempt i+2.
// It makes len(delays)+1 attempts at most and returns the last error.
// The logger, if provided, is called for each retry attempt.
func WithRetry[T any](ctx context.Context, label string, delays []time.Duration, logger LogFunc, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	maxAttempts := len(delays) + 1

	var lastErr error
	for attempt := 0; attempt < maxAttempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if attempt >= maxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		default:
		}

		if logger != nil {
			logger("retry %s (attempt %d): %v", label, attempt+2, err)
		}

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(delays[attempt]):
		}
	}

	return zero, lastErr
}
