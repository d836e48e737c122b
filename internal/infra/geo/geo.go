// Package geo provides the spherical-distance math and bounding-box
// construction used by the master search engine.
package geo

import (
	"math"

	"github.com/paulmach/orb"
)

const (
	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371.0

	// kmPerDegreeLat approximates one degree of latitude. Together with the
	// cosine correction for longitude this is a flat-Earth approximation,
	// acceptable for radii up to 100 km.
	kmPerDegreeLat = 111.0
)

// HaversineKm returns the great-circle distance between two points in
// kilometers.
func HaversineKm(lat1, lng1, lat2, lng2 float64) float64 {
	dLat := radians(lat2 - lat1)
	dLng := radians(lng2 - lng1)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(radians(lat1))*math.Cos(radians(lat2))*
			math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// BoundAround builds the axis-aligned bounding box for a radius around a
// center point. The box is a coarse pre-filter: it is larger than the
// enclosing circle at the corners, so callers must re-check exact distances.
func BoundAround(lat, lng, radiusKm float64) orb.Bound {
	latDelta := radiusKm / kmPerDegreeLat
	lngDelta := radiusKm / (kmPerDegreeLat * math.Cos(radians(lat)))

	return orb.Bound{
		Min: orb.Point{lng - lngDelta, lat - latDelta},
		Max: orb.Point{lng + lngDelta, lat + latDelta},
	}
}

// RoundKm rounds a distance to two decimal places for presentation.
func RoundKm(km float64) float64 {
	return math.Round(km*100) / 100
}

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
