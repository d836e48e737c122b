package service

import (
	"context"
	"time"
)

// RateLimitDecision is the outcome of one rate-limit check, carrying the
// values surfaced in response headers.
type RateLimitDecision struct {
	Allowed   bool
	Remaining int       // Calls left in the current window.
	ResetAt   time.Time // When the current window ends.
}

// RateLimiter throttles calls per (user, action). Implementations may hold
// state in process memory only, making limits best-effort across instances.
type RateLimiter interface {
	Allow(ctx context.Context, userID, action string) RateLimitDecision
}
