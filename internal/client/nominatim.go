// Package client implements the HTTP clients for the three external geodata
// services the route pipeline depends on: Nominatim (geocoding), OSRM
// (routing) and Overpass (points of interest). The services share no API;
// each client speaks its own wire format and is injected into the
// application layer behind an interface so tests can swap in fakes.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gosafe-transit/service-routes/internal/domain"
	"github.com/gosafe-transit/service-routes/internal/domain/place"
	"github.com/gosafe-transit/service-routes/internal/domain/route"
)

const nominatimTimeout = 10 * time.Second

// NominatimClient geocodes free-text place names against a Nominatim
// instance, restricted to a single country context.
type NominatimClient struct {
	baseURL     string
	userAgent   string
	countryCode string
	httpClient  *http.Client
	logger      *zap.Logger
}

// NewNominatimClient creates a NominatimClient. countryCode restricts all
// searches (e.g. "in").
func NewNominatimClient(baseURL, userAgent, countryCode string, logger *zap.Logger) *NominatimClient {
	return &NominatimClient{
		baseURL:     strings.TrimRight(baseURL, "/"),
		userAgent:   userAgent,
		countryCode: countryCode,
		httpClient:  &http.Client{Timeout: nominatimTimeout},
		logger:      logger,
	}
}

type nominatimPlace struct {
	PlaceID     json.Number       `json:"place_id"`
	Lat         string            `json:"lat"`
	Lon         string            `json:"lon"`
	DisplayName string            `json:"display_name"`
	Address     map[string]string `json:"address"`
	Type        string            `json:"type"`
	Class       string            `json:"class"`
}

// Resolve geocodes query to its highest-confidence match. A single upstream
// call, no retry. Zero matches produce a place-not-found error whose message
// embeds the original query.
func (c *NominatimClient) Resolve(ctx context.Context, query string) (place.Resolved, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("countrycodes", c.countryCode)
	params.Set("addressdetails", "1")

	matches, err := c.search(ctx, params)
	if err != nil {
		return place.Resolved{}, err
	}
	if len(matches) == 0 {
		return place.Resolved{}, domain.NewPlaceNotFoundError(query)
	}

	p, err := matches[0].point()
	if err != nil {
		return place.Resolved{}, domain.NewUpstreamError("nominatim", err)
	}

	c.logger.Debug("geocoded place",
		zap.String("query", query),
		zap.Float64("lat", p.Lat),
		zap.Float64("lng", p.Lng),
	)

	return place.Resolved{Point: p, DisplayName: matches[0].DisplayName}, nil
}

// Suggest returns up to seven autocomplete candidates for query. When bias
// is non-nil the search is weighted toward a one-degree box centred on it
// without excluding results outside of the box.
func (c *NominatimClient) Suggest(ctx context.Context, query string, bias *route.Point) ([]place.Suggestion, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "7")
	params.Set("countrycodes", c.countryCode)
	params.Set("addressdetails", "1")
	if bias != nil {
		const span = 1.0
		params.Set("viewbox", fmt.Sprintf("%v,%v,%v,%v",
			bias.Lng-span, bias.Lat-span, bias.Lng+span, bias.Lat+span))
		params.Set("bounded", "0")
	}

	matches, err := c.search(ctx, params)
	if err != nil {
		return nil, err
	}

	suggestions := make([]place.Suggestion, 0, len(matches))
	for _, m := range matches {
		suggestions = append(suggestions, formatSuggestion(m))
	}
	return suggestions, nil
}

func (c *NominatimClient) search(ctx context.Context, params url.Values) ([]nominatimPlace, error) {
	reqURL := c.baseURL + "/search?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, domain.NewUpstreamError("nominatim", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept-Language", "en")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewUpstreamError("nominatim", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewUpstreamError("nominatim", fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	var matches []nominatimPlace
	if err := json.NewDecoder(resp.Body).Decode(&matches); err != nil {
		return nil, domain.NewUpstreamError("nominatim", err)
	}
	return matches, nil
}

func (p nominatimPlace) point() (route.Point, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return route.Point{}, fmt.Errorf("invalid latitude %q: %w", p.Lat, err)
	}
	lng, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return route.Point{}, fmt.Errorf("invalid longitude %q: %w", p.Lon, err)
	}
	return route.Point{Lat: lat, Lng: lng}, nil
}

// Tag preference when building a display name: the most specific address
// tag wins over the raw display string.
var specificTags = []string{"amenity", "building", "railway", "aeroway", "road", "neighbourhood", "suburb"}

// localityTags supply the ", locality" suffix.
var localityTags = []string{"city", "town", "village", "county", "state_district"}

func formatSuggestion(m nominatimPlace) place.Suggestion {
	specific := firstTag(m.Address, specificTags)
	if specific == "" {
		specific = strings.SplitN(m.DisplayName, ",", 2)[0]
	}

	name := specific
	if locality := firstTag(m.Address, localityTags); locality != "" &&
		!strings.Contains(strings.ToLower(specific), strings.ToLower(locality)) {
		name = specific + ", " + locality
	}

	placeType := m.Type
	if placeType == "" {
		placeType = m.Class
	}

	lat, _ := strconv.ParseFloat(m.Lat, 64)
	lng, _ := strconv.ParseFloat(m.Lon, 64)

	return place.Suggestion{
		ID:   m.PlaceID.String(),
		Name: strings.TrimSpace(name),
		Sub:  m.Address["state"],
		Lat:  lat,
		Lng:  lng,
		Type: placeType,
		Line: placeType,
	}
}

func firstTag(address map[string]string, keys []string) string {
	for _, k := range keys {
		if v, ok := address[k]; ok && v != "" {
			return v
		}
	}
	return ""
}
