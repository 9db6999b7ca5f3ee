package route

import "math"

// Point is a WGS-84 coordinate pair in degrees.
type Point struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// ViaPoints returns the three lateral offsets used to force the routing
// engine onto geographically distinct paths. The engine returns a single
// route per request, so diversity has to be manufactured: each via-point
// sits on the perpendicular through the midpoint of the origin-destination
// segment, offset by 15% either side and 25% on the first side.
func ViaPoints(origin, dest Point) [3]Point {
	midLat := (origin.Lat + dest.Lat) / 2
	midLng := (origin.Lng + dest.Lng) / 2

	dLat := dest.Lat - origin.Lat
	dLng := dest.Lng - origin.Lng
	length := math.Sqrt(dLat*dLat + dLng*dLng)
	norm := length
	if norm == 0 {
		norm = 1
	}

	perpLat := -dLng / norm
	perpLng := dLat / norm

	return [3]Point{
		{Lat: midLat + perpLat*length*0.15, Lng: midLng + perpLng*length*0.15},
		{Lat: midLat - perpLat*length*0.15, Lng: midLng - perpLng*length*0.15},
		{Lat: midLat + perpLat*length*0.25, Lng: midLng + perpLng*length*0.25},
	}
}

// BoundingBox is an axis-aligned box over WGS-84 coordinates.
type BoundingBox struct {
	South float64
	West  float64
	North float64
	East  float64
}

// BoundingBoxAround computes a padded bounding box over the given points.
// When a route spans more than a degree in either axis, only the middle
// third of its points is considered; querying points of interest over the
// whole box of a very long route would hit far too large an area.
func BoundingBoxAround(points []Point, pad float64) BoundingBox {
	use := points
	if latSpan, lngSpan := spans(points); latSpan > 1.0 || lngSpan > 1.0 {
		third := len(points) / 3
		use = points[third : third*2]
	}

	south, west := math.Inf(1), math.Inf(1)
	north, east := math.Inf(-1), math.Inf(-1)
	for _, p := range use {
		south = math.Min(south, p.Lat)
		north = math.Max(north, p.Lat)
		west = math.Min(west, p.Lng)
		east = math.Max(east, p.Lng)
	}

	return BoundingBox{
		South: south - pad,
		West:  west - pad,
		North: north + pad,
		East:  east + pad,
	}
}

func spans(points []Point) (latSpan, lngSpan float64) {
	if len(points) == 0 {
		return 0, 0
	}
	minLat, maxLat := points[0].Lat, points[0].Lat
	minLng, maxLng := points[0].Lng, points[0].Lng
	for _, p := range points[1:] {
		minLat = math.Min(minLat, p.Lat)
		maxLat = math.Max(maxLat, p.Lat)
		minLng = math.Min(minLng, p.Lng)
		maxLng = math.Max(maxLng, p.Lng)
	}
	return maxLat - minLat, maxLng - minLng
}
