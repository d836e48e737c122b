package repository

import (
	"context"

	"handshakeme/internal/domain/entity"

	"github.com/google/uuid"
)

// PortfolioRepository defines the interface for portfolio lookups.
type PortfolioRepository interface {
	// FindPublicByMaster retrieves up to limit public portfolio items of a
	// master, newest first.
	FindPublicByMaster(ctx context.Context, masterID uuid.UUID, limit int) ([]*entity.PortfolioItem, error)
}
