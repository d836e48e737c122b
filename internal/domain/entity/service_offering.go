package entity

import (
	"time"

	"github.com/google/uuid"
)

// ServiceOffering is a named service a master offers, with an indicative price.
type ServiceOffering struct {
	ID          uuid.UUID
	MasterID    uuid.UUID // The owning master profile.
	Name        string    // Service name, e.g. "Tap replacement".
	Description string
	Price       float64 // Indicative price in the platform currency.
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
