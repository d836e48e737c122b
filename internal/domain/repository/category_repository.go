package repository

import (
	"context"

	"handshakeme/internal/domain/entity"
	"handshakeme/internal/errors"

	"github.com/google/uuid"
)

// ErrCategoryNotFound is returned when a category is not found.
var ErrCategoryNotFound = errors.New("category not found")

// CategoryRepository defines the interface for category lookups.
type CategoryRepository interface {
	// FindCategoryByID retrieves a category by its unique ID.
	// Returns ErrCategoryNotFound when absent.
	FindCategoryByID(ctx context.Context, id uuid.UUID) (*entity.Category, error)
}
