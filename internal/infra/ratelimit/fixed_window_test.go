package ratelimit

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	mu  sync.Mutex
	now time.Time
}

func newStepClock() *stepClock {
	return &stepClock{now: time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *stepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *stepClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestFixedWindow_RejectsAtLimit(t *testing.T) {
	ctx := context.Background()
	clock := newStepClock()
	l := newFixedWindow(time.Hour, map[string]int{"GEOCODE": 3}, clock.Now)

	for i := 0; i < 3; i++ {
		decision := l.Allow(ctx, "user-1", "GEOCODE")
		require.True(t, decision.Allowed, "call %d should be allowed", i+1)
	}

	decision := l.Allow(ctx, "user-1", "GEOCODE")
	assert.False(t, decision.Allowed)
	assert.Equal(t, 0, decision.Remaining)
}

func TestFixedWindow_WindowResetRestartsCount(t *testing.T) {
	ctx := context.Background()
	clock := newStepClock()
	l := newFixedWindow(time.Hour, map[string]int{"GEOCODE": 2}, clock.Now)

	l.Allow(ctx, "user-1", "GEOCODE")
	l.Allow(ctx, "user-1", "GEOCODE")
	require.False(t, l.Allow(ctx, "user-1", "GEOCODE").Allowed)

	clock.Advance(time.Hour + time.Minute)

	decision := l.Allow(ctx, "user-1", "GEOCODE")
	assert.True(t, decision.Allowed)
	// Fresh window: count restarted at 1.
	assert.Equal(t, 1, decision.Remaining)
	assert.Equal(t, clock.Now().Add(time.Hour), decision.ResetAt)
}

func TestFixedWindow_CountersAreIndependentPerUserAndAction(t *testing.T) {
	ctx := context.Background()
	clock := newStepClock()
	l := newFixedWindow(time.Hour, map[string]int{"GEOCODE": 1, "GET_ROUTE": 1}, clock.Now)

	require.True(t, l.Allow(ctx, "user-1", "GEOCODE").Allowed)
	require.False(t, l.Allow(ctx, "user-1", "GEOCODE").Allowed)

	// Another action and another user are unaffected.
	assert.True(t, l.Allow(ctx, "user-1", "GET_ROUTE").Allowed)
	assert.True(t, l.Allow(ctx, "user-2", "GEOCODE").Allowed)
}

func TestFixedWindow_UnknownActionFallsBackToDefaultLimit(t *testing.T) {
	ctx := context.Background()
	clock := newStepClock()
	l := newFixedWindow(time.Hour, nil, clock.Now)

	decision := l.Allow(ctx, "user-1", "SEARCH_PLACES")
	assert.True(t, decision.Allowed)
	assert.Equal(t, defaultLimit-1, decision.Remaining)
}
