package entity

import (
	"time"

	"github.com/google/uuid"
)

// Category is a service category masters can be classified under.
type Category struct {
	ID        uuid.UUID
	Name      string // Display name, e.g. "Plumbing".
	IsActive  bool
	CreatedAt time.Time
}
