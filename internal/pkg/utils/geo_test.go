package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHaversineDistanceMeters_ZeroForSamePoint(t *testing.T) {
	points := [][2]float64{
		{0, 0},
		{28.6139, 77.2090},
		{-33.8688, 151.2093},
		{89.9, -179.9},
	}
	for _, p := range points {
		assert.Equal(t, 0.0, HaversineDistanceMeters(p[0], p[1], p[0], p[1]))
	}
}

func TestHaversineDistanceMeters_Symmetric(t *testing.T) {
	a := [2]float64{28.6139, 77.2090}
	b := [2]float64{28.7041, 77.1025}

	ab := HaversineDistanceMeters(a[0], a[1], b[0], b[1])
	ba := HaversineDistanceMeters(b[0], b[1], a[0], a[1])
	assert.InDelta(t, ab, ba, 1e-9)
}

func TestHaversineDistanceMeters_KnownDistance(t *testing.T) {
	// Connaught Place to Delhi airport is roughly 14.3 km.
	d := HaversineDistanceMeters(28.6315, 77.2167, 28.5562, 77.1000)
	assert.InDelta(t, 14300, d, 500)
}

func TestHaversineDistanceMeters_ShortRange(t *testing.T) {
	// ~0.00135 degrees of latitude is ~150 m.
	d := HaversineDistanceMeters(28.6139, 77.2090, 28.6139+150.0/111320.0, 77.2090)
	assert.InDelta(t, 150, d, 1)
	assert.False(t, math.IsNaN(d))
}
