package geocode

import (
	"context"
	"testing"
	"time"

	"handshakeme/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry_SucceedsAfterTransientFailures(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 3, time.Millisecond, func() error {
		calls++
		if calls < 3 {
			return errors.New("upstream returned 503")
		}

		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestRetry_NonRetryableShortCircuits(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 5, time.Millisecond, func() error {
		calls++

		return errors.New("upstream returned 404 Not Found")
	})

	require.Error(t, err)
	// Fails on the first attempt with no further retries.
	assert.Equal(t, 1, calls)
}

func TestRetry_ExhaustionReturnsLastError(t *testing.T) {
	calls := 0
	err := retry(context.Background(), 3, time.Millisecond, func() error {
		calls++

		return errors.Errorf("timeout on attempt %d", calls)
	})

	require.Error(t, err)
	assert.Equal(t, 3, calls)
	assert.Contains(t, err.Error(), "attempt 3")
}

func TestRetry_ContextCancellationStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := retry(ctx, 3, time.Millisecond, func() error {
		t.Fatal("fn should not run with a cancelled context")

		return nil
	})

	assert.ErrorIs(t, err, context.Canceled)
}
