package service

import (
	"context"
)

// GeoPoint is a latitude/longitude pair exchanged with the mapping provider.
type GeoPoint struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// GeocodeResult is one resolved address candidate.
type GeocodeResult struct {
	Address     string   `json:"address"`
	Point       GeoPoint `json:"point"`
	Kind        string   `json:"kind,omitempty"`      // house, street, locality, ...
	Precision   string   `json:"precision,omitempty"` // exact, number, near, ...
	CountryCode string   `json:"countryCode,omitempty"`
}

// Place is one point-of-interest search hit.
type Place struct {
	Name     string   `json:"name"`
	Address  string   `json:"address"`
	Point    GeoPoint `json:"point"`
	Category string   `json:"category,omitempty"`
}

// Route is a computed path between two points.
type Route struct {
	DistanceMeters  float64    `json:"distanceMeters"`
	DurationSeconds float64    `json:"durationSeconds"`
	Geometry        []GeoPoint `json:"geometry,omitempty"`
}

// PlaceSearchOptions narrows a place search.
type PlaceSearchOptions struct {
	Center   *GeoPoint `json:"center,omitempty"`
	RadiusKm float64   `json:"radiusKm,omitempty"`
	Limit    int       `json:"limit,omitempty"`
	Language string    `json:"language,omitempty"`
}

// RouteOptions selects routing behavior.
type RouteOptions struct {
	Mode          string `json:"mode,omitempty"` // driving, walking, transit
	AvoidTolls    bool   `json:"avoidTolls,omitempty"`
	TrafficAware  bool   `json:"trafficAware,omitempty"`
	AlternativeOK bool   `json:"alternativeOk,omitempty"`
}

// Geocoder is the upstream mapping API. Implementations wrap the provider's
// HTTP surface, including its retry policy.
type Geocoder interface {
	// Geocode resolves a free-text address to coordinates.
	Geocode(ctx context.Context, address, language string) ([]GeocodeResult, error)

	// ReverseGeocode resolves coordinates to addresses.
	ReverseGeocode(ctx context.Context, point GeoPoint, language string) ([]GeocodeResult, error)

	// SearchPlaces finds points of interest matching a free-text query.
	SearchPlaces(ctx context.Context, query string, opts PlaceSearchOptions) ([]Place, error)

	// Route computes a route between two points.
	Route(ctx context.Context, origin, destination GeoPoint, opts RouteOptions) (*Route, error)
}
