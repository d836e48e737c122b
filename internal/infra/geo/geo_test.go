package geo

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestHaversineKm_OneDegreeLatitudeAtEquator(t *testing.T) {
	// One degree of latitude at the equator is ~111.19 km on a spherical model.
	d := HaversineKm(0, 0, 1, 0)
	assert.InDelta(t, 111.19, d, 0.5)
}

func TestHaversineKm_ZeroDistance(t *testing.T) {
	assert.Zero(t, HaversineKm(42.8746, 74.5698, 42.8746, 74.5698))
}

func TestHaversineKm_Symmetry(t *testing.T) {
	a := HaversineKm(42.8746, 74.5698, 43.0, 74.6)
	b := HaversineKm(43.0, 74.6, 42.8746, 74.5698)
	assert.InDelta(t, a, b, 1e-9)
}

func TestBoundAround_ContainsRadiusCircle(t *testing.T) {
	lat, lng, radius := 42.8746, 74.5698, 10.0
	bound := BoundAround(lat, lng, radius)

	// Points at the cardinal extremes of the circle must be inside the box.
	latDelta := radius / 111.0
	assert.True(t, bound.Max[1] >= lat+latDelta)
	assert.True(t, bound.Min[1] <= lat-latDelta)
	assert.True(t, bound.Contains(orb.Point{lng, lat}))
}

func TestBoundAround_LongitudeWidensAwayFromEquator(t *testing.T) {
	equator := BoundAround(0, 0, 10)
	north := BoundAround(60, 0, 10)

	widthEquator := equator.Max[0] - equator.Min[0]
	widthNorth := north.Max[0] - north.Min[0]
	assert.Greater(t, widthNorth, widthEquator)
}

func TestRoundKm(t *testing.T) {
	assert.Equal(t, 2.35, RoundKm(2.345001))
	assert.Equal(t, 2.0, RoundKm(2.0))
	assert.Equal(t, 0.01, RoundKm(0.009999999))
}
