package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gosafe-transit/service-routes/internal/domain"
	"github.com/gosafe-transit/service-routes/internal/domain/route"
)

const osrmTimeout = 15 * time.Second

// OSRMClient fetches driving routes from an OSRM instance. OSRM returns a
// single route per request; alternatives are manufactured upstream by
// issuing separate requests through via-points.
type OSRMClient struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewOSRMClient creates an OSRMClient.
func NewOSRMClient(baseURL, userAgent string, logger *zap.Logger) *OSRMClient {
	return &OSRMClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: osrmTimeout},
		logger:     logger,
	}
}

type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

type osrmRoute struct {
	Distance float64 `json:"distance"`
	Duration float64 `json:"duration"`
	Geometry struct {
		Coordinates [][]float64 `json:"coordinates"`
	} `json:"geometry"`
	Legs []struct {
		Steps []struct {
			Name     string `json:"name"`
			Maneuver struct {
				Location []float64 `json:"location"`
			} `json:"maneuver"`
		} `json:"steps"`
	} `json:"legs"`
}

// Route requests one driving route from origin to destination, optionally
// forced through via, with full geometry and step detail. A non-"Ok" code or
// empty route list is an upstream error; the caller decides whether that is
// fatal.
func (c *OSRMClient) Route(ctx context.Context, origin, dest route.Point, via *route.Point) (route.Candidate, error) {
	var coords string
	if via != nil {
		coords = fmt.Sprintf("%f,%f;%f,%f;%f,%f",
			origin.Lng, origin.Lat, via.Lng, via.Lat, dest.Lng, dest.Lat)
	} else {
		coords = fmt.Sprintf("%f,%f;%f,%f",
			origin.Lng, origin.Lat, dest.Lng, dest.Lat)
	}

	reqURL := c.baseURL + "/route/v1/driving/" + coords + "?overview=full&geometries=geojson&steps=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return route.Candidate{}, domain.NewUpstreamError("osrm", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return route.Candidate{}, domain.NewUpstreamError("osrm", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return route.Candidate{}, domain.NewUpstreamError("osrm", fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	var parsed osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return route.Candidate{}, domain.NewUpstreamError("osrm", err)
	}

	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return route.Candidate{}, domain.NewUpstreamError("osrm",
			fmt.Errorf("no route (code=%q, routes=%d)", parsed.Code, len(parsed.Routes)))
	}

	candidate := toCandidate(parsed.Routes[0])
	c.logger.Debug("fetched route",
		zap.Float64("distance_m", candidate.DistanceMeters),
		zap.Float64("duration_s", candidate.DurationSeconds),
		zap.Bool("via", via != nil),
	)
	return candidate, nil
}

func toCandidate(r osrmRoute) route.Candidate {
	geometry := make([]route.Point, 0, len(r.Geometry.Coordinates))
	for _, c := range r.Geometry.Coordinates {
		if len(c) < 2 {
			continue
		}
		// GeoJSON order is [lng, lat].
		geometry = append(geometry, route.Point{Lat: c[1], Lng: c[0]})
	}

	legs := make([]route.Leg, 0, len(r.Legs))
	for _, l := range r.Legs {
		steps := make([]route.Step, 0, len(l.Steps))
		for _, s := range l.Steps {
			step := route.Step{Name: s.Name}
			if len(s.Maneuver.Location) >= 2 {
				step.Location = route.Point{Lat: s.Maneuver.Location[1], Lng: s.Maneuver.Location[0]}
			}
			steps = append(steps, step)
		}
		legs = append(legs, route.Leg{Steps: steps})
	}

	return route.Candidate{
		Geometry:        geometry,
		DistanceMeters:  r.Distance,
		DurationSeconds: r.Duration,
		Legs:            legs,
	}
}
