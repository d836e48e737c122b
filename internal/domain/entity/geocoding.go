package entity

import (
	"time"

	"github.com/google/uuid"
)

// GeocodingAction is the operation requested from the geocoding gateway.
type GeocodingAction string

const (
	ActionGeocode           GeocodingAction = "GEOCODE"
	ActionReverseGeocode    GeocodingAction = "REVERSE_GEOCODE"
	ActionSearchPlaces      GeocodingAction = "SEARCH_PLACES"
	ActionGetRoute          GeocodingAction = "GET_ROUTE"
	ActionCalculateDistance GeocodingAction = "CALCULATE_DISTANCE"
)

// IsValid checks if the GeocodingAction is a known value.
func (a GeocodingAction) IsValid() bool {
	switch a {
	case ActionGeocode, ActionReverseGeocode, ActionSearchPlaces, ActionGetRoute, ActionCalculateDistance:
		return true
	default:
		return false
	}
}

// GeocodingUsage is one analytics record of a gateway call. Appended for
// every successful upstream or cached response.
type GeocodingUsage struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Action    GeocodingAction
	CacheHit  bool
	CreatedAt time.Time
}
