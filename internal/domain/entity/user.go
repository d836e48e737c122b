// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User is the core identity in the system. It carries only the contact
// fields shared across roles; role-specific data lives on MasterProfile.
type User struct {
	ID        uuid.UUID // The Global Unique Identifier (GUID) for the user.
	Email     string    // Primary contact email, also the login identifier.
	Name      string    // Display name or real name.
	Phone     string    // Contact phone number shown to matched counterparts.
	AvatarURL string    // Optional profile picture URL.
	CreatedAt time.Time // Timestamp of when this account was created.
	UpdatedAt time.Time // Timestamp of the last modification.
}
