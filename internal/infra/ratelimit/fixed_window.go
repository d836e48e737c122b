// Package ratelimit implements the per-user, per-action fixed-window limiter
// used by the geocoding gateway.
package ratelimit

import (
	"context"
	"sync"
	"time"

	"handshakeme/config"
	"handshakeme/internal/domain/service"
)

const defaultLimit = 60

type counter struct {
	count   int
	resetAt time.Time
}

// fixedWindow counts calls per (user, action) within a fixed window. State
// lives only in process memory, so limits are best-effort: they reset on
// restart and are not shared across instances.
type fixedWindow struct {
	mu       sync.Mutex
	counters map[string]*counter
	window   time.Duration
	limits   map[string]int
	now      func() time.Time
}

// New creates the fixed-window rate limiter from configuration.
func New(cfg *config.Config) service.RateLimiter {
	return newFixedWindow(cfg.RateLimit.Window, cfg.RateLimit.Limits, time.Now)
}

func newFixedWindow(window time.Duration, limits map[string]int, now func() time.Time) *fixedWindow {
	return &fixedWindow{
		counters: make(map[string]*counter),
		window:   window,
		limits:   limits,
		now:      now,
	}
}

// Allow records one call for (user, action) and reports whether it is within
// the action's limit for the current window.
func (l *fixedWindow) Allow(_ context.Context, userID, action string) service.RateLimitDecision {
	limit, ok := l.limits[action]
	if !ok || limit <= 0 {
		limit = defaultLimit
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	key := userID + ":" + action

	c, exists := l.counters[key]
	if !exists || !now.Before(c.resetAt) {
		c = &counter{count: 1, resetAt: now.Add(l.window)}
		l.counters[key] = c

		return service.RateLimitDecision{Allowed: true, Remaining: limit - 1, ResetAt: c.resetAt}
	}

	if c.count >= limit {
		return service.RateLimitDecision{Allowed: false, Remaining: 0, ResetAt: c.resetAt}
	}

	c.count++

	return service.RateLimitDecision{Allowed: true, Remaining: limit - c.count, ResetAt: c.resetAt}
}
