// Package place holds geocoding result entities.
package place

import "github.com/gosafe-transit/service-routes/internal/domain/route"

// Resolved is a free-text place name resolved to coordinates. Produced once
// per geocode call and owned by the request scope.
type Resolved struct {
	Point       route.Point
	DisplayName string
}

// Suggestion is one autocomplete candidate.
type Suggestion struct {
	ID   string  `json:"id"`
	Name string  `json:"name"`
	Sub  string  `json:"sub"`
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Type string  `json:"type"`
	Line string  `json:"line"`
}
