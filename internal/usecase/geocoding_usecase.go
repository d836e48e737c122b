package usecase

import (
	"context"
	"fmt"

	"handshakeme/internal/domain/service"

	"github.com/google/uuid"
)

// GeocodeRequest resolves a free-text address to coordinates.
type GeocodeRequest struct {
	Address      string `json:"address" validate:"required"`
	Language     string `json:"language,omitempty"`
	CacheResults bool   `json:"cacheResults"` // false bypasses cache read and write
}

// ReverseGeocodeRequest resolves coordinates to addresses.
type ReverseGeocodeRequest struct {
	Latitude     float64 `json:"latitude" validate:"min=-90,max=90"`
	Longitude    float64 `json:"longitude" validate:"min=-180,max=180"`
	Language     string  `json:"language,omitempty"`
	CacheResults bool    `json:"cacheResults"`
}

// SearchPlacesRequest finds points of interest near an optional center.
type SearchPlacesRequest struct {
	Query        string   `json:"query" validate:"required"`
	Latitude     *float64 `json:"latitude,omitempty" validate:"omitempty,min=-90,max=90"`
	Longitude    *float64 `json:"longitude,omitempty" validate:"omitempty,min=-180,max=180"`
	RadiusKm     float64  `json:"radiusKm,omitempty" validate:"min=0"`
	Language     string   `json:"language,omitempty"`
	Limit        int      `json:"limit,omitempty" validate:"min=0"`
	CacheResults bool     `json:"cacheResults"`
}

// GetRouteRequest computes a route between two points.
type GetRouteRequest struct {
	OriginLatitude       float64 `json:"originLatitude" validate:"min=-90,max=90"`
	OriginLongitude      float64 `json:"originLongitude" validate:"min=-180,max=180"`
	DestinationLatitude  float64 `json:"destinationLatitude" validate:"min=-90,max=90"`
	DestinationLongitude float64 `json:"destinationLongitude" validate:"min=-180,max=180"`
	Mode                 string  `json:"mode,omitempty"`
	AvoidTolls           bool    `json:"avoidTolls,omitempty"`
	CacheResults         bool    `json:"cacheResults"`
}

// CalculateDistanceRequest computes the great-circle distance between two points.
type CalculateDistanceRequest struct {
	FromLatitude  float64 `json:"fromLatitude" validate:"min=-90,max=90"`
	FromLongitude float64 `json:"fromLongitude" validate:"min=-180,max=180"`
	ToLatitude    float64 `json:"toLatitude" validate:"min=-90,max=90"`
	ToLongitude   float64 `json:"toLongitude" validate:"min=-180,max=180"`
}

// RateLimitInfo surfaces the limiter decision for response headers.
type RateLimitInfo struct {
	Remaining int   `json:"remaining"`
	ResetAt   int64 `json:"resetAt"` // epoch seconds
}

// GeocodeResponse is the result of a GEOCODE call.
type GeocodeResponse struct {
	Results   []service.GeocodeResult `json:"results"`
	CacheHit  bool                    `json:"cacheHit"`
	RateLimit RateLimitInfo           `json:"-"`
}

// ReverseGeocodeResponse is the result of a REVERSE_GEOCODE call.
type ReverseGeocodeResponse struct {
	Results   []service.GeocodeResult `json:"results"`
	CacheHit  bool                    `json:"cacheHit"`
	RateLimit RateLimitInfo           `json:"-"`
}

// SearchPlacesResponse is the result of a SEARCH_PLACES call.
type SearchPlacesResponse struct {
	Places    []service.Place `json:"places"`
	CacheHit  bool            `json:"cacheHit"`
	RateLimit RateLimitInfo   `json:"-"`
}

// GetRouteResponse is the result of a GET_ROUTE call.
type GetRouteResponse struct {
	Route     *service.Route `json:"route"`
	CacheHit  bool           `json:"cacheHit"`
	RateLimit RateLimitInfo  `json:"-"`
}

// CalculateDistanceResponse is the result of a CALCULATE_DISTANCE call.
type CalculateDistanceResponse struct {
	DistanceKm float64       `json:"distanceKm"`
	RateLimit  RateLimitInfo `json:"-"`
}

// RateLimitExceededError is returned when a caller exhausts their window.
// It carries the decision so the delivery layer can set Retry-After.
type RateLimitExceededError struct {
	Decision service.RateLimitDecision
}

func (e *RateLimitExceededError) Error() string {
	return fmt.Sprintf("rate limit exceeded, window resets at %s", e.Decision.ResetAt.Format("15:04:05"))
}

// GeocodingUsecase defines the interface for the geocoding gateway. One typed
// method per action; every method rate-limits first, then serves cache-then-call.
type GeocodingUsecase interface {
	Geocode(ctx context.Context, userID uuid.UUID, req *GeocodeRequest) (*GeocodeResponse, error)
	ReverseGeocode(ctx context.Context, userID uuid.UUID, req *ReverseGeocodeRequest) (*ReverseGeocodeResponse, error)
	SearchPlaces(ctx context.Context, userID uuid.UUID, req *SearchPlacesRequest) (*SearchPlacesResponse, error)
	GetRoute(ctx context.Context, userID uuid.UUID, req *GetRouteRequest) (*GetRouteResponse, error)
	CalculateDistance(ctx context.Context, userID uuid.UUID, req *CalculateDistanceRequest) (*CalculateDistanceResponse, error)
}
