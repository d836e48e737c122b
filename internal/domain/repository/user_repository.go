package repository

import (
	"context"

	"handshakeme/internal/domain/entity"
	"handshakeme/internal/errors"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when a user is not found.
var ErrUserNotFound = errors.New("user not found")

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	// FindUserByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound when absent.
	FindUserByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
}
