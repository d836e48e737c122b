package repository

import (
	"context"

	"handshakeme/internal/domain/entity"

	"github.com/google/uuid"
)

// OfferingRepository defines the interface for service-offering lookups.
type OfferingRepository interface {
	// FindActiveByMaster retrieves all active offerings of a master,
	// ordered by creation time ascending.
	FindActiveByMaster(ctx context.Context, masterID uuid.UUID) ([]*entity.ServiceOffering, error)
}
