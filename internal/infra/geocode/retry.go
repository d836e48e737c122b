// Package geocode wraps the upstream mapping provider's HTTP API with the
// retry policy the gateway relies on.
package geocode

import (
	"context"
	"strings"
	"time"
)

// nonRetryableMarkers are matched against error messages: client-side HTTP
// failures must not be retried. String matching is used because the provider
// reports status codes inside error text.
var nonRetryableMarkers = []string{"400", "401", "403", "404"}

// retry runs fn up to maxAttempts times with exponential backoff
// (initialDelay × 2^(attempt−1) between attempts). Non-retryable errors
// short-circuit on the attempt that produced them; otherwise the last error
// is returned after exhaustion.
func retry(ctx context.Context, maxAttempts int, initialDelay time.Duration, fn func() error) error {
	var lastErr error

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if isNonRetryable(lastErr) {
			return lastErr
		}
		if attempt == maxAttempts {
			break
		}

		delay := initialDelay << (attempt - 1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
	}

	return lastErr
}

func isNonRetryable(err error) bool {
	msg := err.Error()
	for _, marker := range nonRetryableMarkers {
		if strings.Contains(msg, marker) {
			return true
		}
	}

	return false
}
