// Package poi holds the point-of-interest entity and the static styling
// catalog used when rendering them.
package poi

// POI is a named shop or amenity near a route. Within one enrichment pass
// POIs are deduplicated by name, first occurrence wins.
type POI struct {
	Name         string  `json:"name"`
	Category     string  `json:"category"`
	Icon         string  `json:"icon"`
	Color        string  `json:"color"`
	Lat          float64 `json:"lat"`
	Lng          float64 `json:"lng"`
	NearestLabel string  `json:"station"`
}
