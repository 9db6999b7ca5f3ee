package route

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestViaPoints_PerpendicularOffsets(t *testing.T) {
	// A purely eastward segment: the perpendicular is due north/south.
	origin := Point{Lat: 10.0, Lng: 70.0}
	dest := Point{Lat: 10.0, Lng: 71.0}

	via := ViaPoints(origin, dest)

	// Segment length is 1.0 degree, so the offsets are 0.15 and 0.25.
	assert.InDelta(t, 9.85, via[0].Lat, 1e-9)
	assert.InDelta(t, 70.5, via[0].Lng, 1e-9)
	assert.InDelta(t, 10.15, via[1].Lat, 1e-9)
	assert.InDelta(t, 70.5, via[1].Lng, 1e-9)
	assert.InDelta(t, 9.75, via[2].Lat, 1e-9)
	assert.InDelta(t, 70.5, via[2].Lng, 1e-9)
}

func TestViaPoints_OppositeSides(t *testing.T) {
	origin := Point{Lat: 12.93, Lng: 77.61}
	dest := Point{Lat: 13.01, Lng: 77.55}

	via := ViaPoints(origin, dest)

	midLat := (origin.Lat + dest.Lat) / 2
	midLng := (origin.Lng + dest.Lng) / 2

	// via[0] and via[1] mirror each other through the midpoint.
	assert.InDelta(t, midLat, (via[0].Lat+via[1].Lat)/2, 1e-9)
	assert.InDelta(t, midLng, (via[0].Lng+via[1].Lng)/2, 1e-9)

	// via[2] lies on the same side as via[0], further out.
	d0 := math.Hypot(via[0].Lat-midLat, via[0].Lng-midLng)
	d2 := math.Hypot(via[2].Lat-midLat, via[2].Lng-midLng)
	assert.Greater(t, d2, d0)
}

func TestViaPoints_CoincidentEndpoints(t *testing.T) {
	p := Point{Lat: 12.97, Lng: 77.59}

	via := ViaPoints(p, p)

	// Zero-length segment degenerates to the midpoint itself.
	for _, v := range via {
		assert.InDelta(t, p.Lat, v.Lat, 1e-9)
		assert.InDelta(t, p.Lng, v.Lng, 1e-9)
	}
}

func TestBoundingBoxAround_Pads(t *testing.T) {
	points := []Point{
		{Lat: 12.90, Lng: 77.50},
		{Lat: 12.95, Lng: 77.60},
		{Lat: 13.00, Lng: 77.55},
	}

	box := BoundingBoxAround(points, 0.008)

	assert.InDelta(t, 12.892, box.South, 1e-9)
	assert.InDelta(t, 77.492, box.West, 1e-9)
	assert.InDelta(t, 13.008, box.North, 1e-9)
	assert.InDelta(t, 77.608, box.East, 1e-9)
}

func TestBoundingBoxAround_LongRouteUsesMiddleThird(t *testing.T) {
	// Nine points spanning well over a degree of latitude. Only indices
	// [3, 6) should contribute to the box.
	points := make([]Point, 9)
	for i := range points {
		points[i] = Point{Lat: 10.0 + float64(i)*0.5, Lng: 77.0}
	}

	box := BoundingBoxAround(points, 0)

	require.InDelta(t, 11.5, box.South, 1e-9) // points[3]
	require.InDelta(t, 12.5, box.North, 1e-9) // points[5]
}
