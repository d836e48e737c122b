// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"handshakeme/internal/domain/entity"
	"handshakeme/internal/errors"

	"github.com/google/uuid"
	"github.com/paulmach/orb"
)

// ErrMasterNotFound is returned when a master profile is not found.
var ErrMasterNotFound = errors.New("master profile not found")

// MasterSearchCriteria are the predicates pushed down to the store for the
// coarse bounding-box pre-filter. Precise radius filtering happens in the
// search engine, not here.
type MasterSearchCriteria struct {
	Bound      orb.Bound  // Axis-aligned bounding box (lng/lat order, orb convention).
	CategoryID *uuid.UUID // Optional category equality filter.
	MinRating  *float64   // Optional minimum rating.
	Verified   *bool      // Optional verified-only filter.
}

// MasterRepository defines the interface for master-profile database operations.
type MasterRepository interface {
	// SearchInBounds retrieves all geo-locatable masters whose coordinates fall
	// inside the bounding box, with equality filters applied store-side.
	// Masters without coordinates are never returned.
	SearchInBounds(ctx context.Context, criteria MasterSearchCriteria) ([]*entity.MasterProfile, error)

	// FindByID retrieves a master profile by its unique ID.
	// Returns ErrMasterNotFound when absent.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.MasterProfile, error)
}
