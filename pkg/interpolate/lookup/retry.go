package lookup

import (
	"context"
	"errors"
	"math/rand/v2"
	"net"
	"time"
)

// RetryConfig configures retries of transient lookup failures.
// The zero value makes a single attempt.
type RetryConfig struct {
	// MaxAttempts is the maximum number of attempts (including initial).
	MaxAttempts int

	// InitialBackoff is the starting backoff duration.
	InitialBackoff time.Duration

	// MaxBackoff is the maximum backoff duration. Zero means no cap.
	MaxBackoff time.Duration

	// BackoffFactor is the multiplier applied to backoff after each attempt.
	BackoffFactor float64

	// Jitter is the random jitter factor (0.0-1.0).
	Jitter float64

	// RetryableFunc optionally overrides the default retryability check.
	RetryableFunc func(error) bool
}

// DefaultRetry is a conservative retry configuration for remote lookups.
var DefaultRetry = RetryConfig{
	MaxAttempts:    3,
	InitialBackoff: 200 * time.Millisecond,
	MaxBackoff:     2 * time.Second,
	BackoffFactor:  2.0,
	Jitter:         0.1,
}

// IsTransient reports whether a lookup error is worth retrying: HTTP 429
// and 5xx responses, and network timeouts.
func IsTransient(err error) bool {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return statusErr.StatusCode == 429 || statusErr.StatusCode >= 500
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return !errors.Is(err, context.DeadlineExceeded)
	}
	return false
}

// withRetry calls fn until it succeeds, fails permanently, the attempts run
// out or ctx is done. It returns the last error.
func withRetry(ctx context.Context, cfg RetryConfig, fn func(context.Context) (string, error)) (string, error) {
	attempts := cfg.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}
	isRetryable := cfg.RetryableFunc
	if isRetryable == nil {
		isRetryable = IsTransient
	}

	backoff := cfg.InitialBackoff
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err

		if !isRetryable(err) || attempt == attempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(calculateBackoff(backoff, cfg.Jitter)):
		}

		if cfg.BackoffFactor > 0 {
			backoff = time.Duration(float64(backoff) * cfg.BackoffFactor)
		}
		if cfg.MaxBackoff > 0 && backoff > cfg.MaxBackoff {
			backoff = cfg.MaxBackoff
		}
	}
	return "", lastErr
}

// calculateBackoff returns the backoff duration with jitter applied.
func calculateBackoff(base time.Duration, jitter float64) time.Duration {
	if jitter <= 0 || base <= 0 {
		return base
	}
	jitterAmount := float64(base) * jitter * (rand.Float64()*2 - 1)
	return time.Duration(float64(base) + jitterAmount)
}
