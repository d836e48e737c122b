package entity

import (
	"time"

	"github.com/google/uuid"
)

// MasterProfile holds data specific to the "master" (service provider) role.
// Coordinates are optional: a master without coordinates never appears in
// geo search results.
type MasterProfile struct {
	ID                uuid.UUID  // Profile identifier.
	UserID            uuid.UUID  // Foreign Key linking this profile to a core User.
	CompanyName       string     // Trading or company name shown in search results.
	Description       string     // Free-text description of the master's services.
	ExperienceYears   int        // Years of professional experience.
	City              string     // City the master operates in.
	CategoryID        *uuid.UUID // Primary service category, if assigned.
	Rating            float64    // Average review rating, 0..5.
	CompletedProjects int        // Number of completed projects.
	OnTimeRate        float64    // Fraction of projects delivered on time, 0..1.
	IsVerified        bool       // Identity/qualification verification flag.
	Latitude          *float64   // Optional geographic latitude.
	Longitude         *float64   // Optional geographic longitude.
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasCoordinates reports whether the profile is geo-searchable.
func (m *MasterProfile) HasCoordinates() bool {
	return m.Latitude != nil && m.Longitude != nil
}
