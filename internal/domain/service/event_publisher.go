package service

import (
	"context"
)

// GeocodingUsageEvent is the analytics event emitted for every geocoding
// gateway call that produced a response.
type GeocodingUsageEvent struct {
	RequestID string `json:"request_id,omitempty"` // For distributed tracing
	UserID    string `json:"user_id"`
	Action    string `json:"action"`
	CacheHit  bool   `json:"cache_hit"`
	Timestamp int64  `json:"timestamp"` // epoch milliseconds
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishUsageEvent publishes a geocoding usage event for async analytics processing
	PublishUsageEvent(ctx context.Context, event *GeocodingUsageEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
