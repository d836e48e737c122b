// Package usecase defines the application-layer interfaces and their
// request/response shapes. Implementations live in usecase/impl.
package usecase

import (
	"context"

	"github.com/google/uuid"
)

// SearchFilters carries every predicate of a nearby-master search.
// Latitude/Longitude are the search center; RadiusKm, Limit and Offset are
// raw caller input, clamped to configured bounds by the search service.
type SearchFilters struct {
	Latitude    float64
	Longitude   float64
	RadiusKm    float64
	CategoryID  *uuid.UUID
	MinRating   *float64
	Verified    *bool
	ServiceName string // Comma-separated case-insensitive service-name filter.
	Available   bool   // Drop masters outside their working hours right now.
	Limit       int
	Offset      int
}

// ServiceSummary is one offering shown on a search card.
type ServiceSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Price float64   `json:"price"`
}

// PortfolioPreview is one portfolio item shown on a search card.
type PortfolioPreview struct {
	ID         uuid.UUID `json:"id"`
	Title      string    `json:"title"`
	PreviewURL string    `json:"previewUrl,omitempty"`
}

// ContactInfo is the owning user's contact block on a search card.
type ContactInfo struct {
	Name      string `json:"name"`
	Phone     string `json:"phone,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// MasterSummary is one enriched search result. Enrichment fields stay zero
// when their lookups fail; the bare master is still returned.
type MasterSummary struct {
	ID                uuid.UUID          `json:"id"`
	CompanyName       string             `json:"companyName"`
	Description       string             `json:"description,omitempty"`
	ExperienceYears   int                `json:"experienceYears"`
	City              string             `json:"city,omitempty"`
	CategoryName      string             `json:"categoryName,omitempty"`
	Rating            float64            `json:"rating"`
	CompletedProjects int                `json:"completedProjects"`
	OnTimeRate        float64            `json:"onTimeRate"`
	IsVerified        bool               `json:"isVerified"`
	Latitude          float64            `json:"latitude"`
	Longitude         float64            `json:"longitude"`
	DistanceKm        float64            `json:"distanceKm"` // Rounded to 2 decimals.
	Contact           *ContactInfo       `json:"contact,omitempty"`
	Services          []ServiceSummary   `json:"services,omitempty"`
	Portfolio         []PortfolioPreview `json:"portfolio,omitempty"`
}

// SearchStats aggregates over the full radius-filtered set, not just the
// returned page.
type SearchStats struct {
	TotalFound    int            `json:"totalFound"`
	AvgDistanceKm float64        `json:"avgDistanceKm"`
	AvgRating     float64        `json:"avgRating"`
	VerifiedCount int            `json:"verifiedCount"`
	ByCategory    map[string]int `json:"byCategory"`
}

// SearchParams echoes the effective search inputs back to the caller.
type SearchParams struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	RadiusKm  float64 `json:"radiusKm"`
}

// Pagination describes the returned page within the full result set.
type Pagination struct {
	Limit   int  `json:"limit"`
	Offset  int  `json:"offset"`
	Total   int  `json:"total"`
	HasMore bool `json:"hasMore"`
}

// SearchResult is the complete response of a nearby-master search.
type SearchResult struct {
	Masters      []*MasterSummary `json:"masters"`
	SearchParams SearchParams     `json:"searchParams"`
	Pagination   Pagination       `json:"pagination"`
	Stats        *SearchStats     `json:"stats"`
}

// SearchUsecase defines the interface for the geo master search engine
type SearchUsecase interface {
	// FindNearbyMasters runs the bounding-box pre-filter, exact radius filter,
	// distance ranking, pagination and page enrichment. A failing base scan
	// yields an empty result, never an error.
	FindNearbyMasters(ctx context.Context, filters SearchFilters) (*SearchResult, error)
}
