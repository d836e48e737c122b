package repository

import (
	"context"

	"handshakeme/internal/domain/entity"
)

// GeocodingUsageRepository defines the interface for the gateway analytics log.
type GeocodingUsageRepository interface {
	// RecordUsage appends one usage record. Failures here must not fail the
	// gateway request; callers log and continue.
	RecordUsage(ctx context.Context, usage *entity.GeocodingUsage) error
}
