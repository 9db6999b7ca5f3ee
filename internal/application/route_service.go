package application

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gosafe-transit/service-routes/internal/domain"
	"github.com/gosafe-transit/service-routes/internal/domain/place"
	"github.com/gosafe-transit/service-routes/internal/domain/poi"
	"github.com/gosafe-transit/service-routes/internal/domain/route"
	"github.com/gosafe-transit/service-routes/internal/events"
)

const (
	// Per-call deadline for one routing engine request.
	routingCallTimeout = 15 * time.Second
	// Per-route deadline for POI enrichment.
	enrichmentTimeout = 20 * time.Second

	maxPOIsPerRoute  = 30
	maxBrands        = 12
	maxSampledStops  = 8
	stopSampleStride = 4
)

// Geocoder resolves free-text place names. Implemented by
// client.NominatimClient and by fakes in tests.
type Geocoder interface {
	Resolve(ctx context.Context, query string) (place.Resolved, error)
	Suggest(ctx context.Context, query string, bias *route.Point) ([]place.Suggestion, error)
}

// RouteFetcher returns one driving route per request, optionally through a
// via-point. Implemented by client.OSRMClient.
type RouteFetcher interface {
	Route(ctx context.Context, origin, dest route.Point, via *route.Point) (route.Candidate, error)
}

// POISearcher finds named shops and amenities inside a bounding box.
// Implemented by client.OverpassClient.
type POISearcher interface {
	SearchBox(ctx context.Context, box route.BoundingBox) ([]poi.POI, error)
}

// Stop is a sampled named maneuver along a route, thinned from the full
// turn-by-turn step list.
type Stop struct {
	Lat  float64 `json:"lat"`
	Lng  float64 `json:"lng"`
	Name string  `json:"name"`
}

// AssembledRoute is the terminal, externally visible route representation.
// Immutable after construction; it has no lifecycle beyond one request.
type AssembledRoute struct {
	ID            string                 `json:"id"`
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	SafetyScore   int                    `json:"safetyScore"`
	SafetyFactors []route.SafetyFactor   `json:"safetyFactors"`
	Duration      string                 `json:"duration"`
	Distance      string                 `json:"distance"`
	DurationSecs  float64                `json:"durationSecs"`
	Transfers     int                    `json:"transfers"`
	TotalShops    int                    `json:"totalShops"`
	Brands        []string               `json:"brands"`
	Badges        []string               `json:"badges"`
	Waypoints     []route.Point          `json:"waypoints"`
	Stops         []Stop                 `json:"stops"`
	Shops         []poi.POI              `json:"shops"`
	OriginStation string                 `json:"originStation"`
	DestStation   string                 `json:"destStation"`
}

// PlanResult is the outcome of one route plan: the resolved display names
// and the assembled routes, sorted by safety score descending.
type PlanResult struct {
	Origin      string
	Destination string
	Routes      []AssembledRoute
}

// RouteService synthesizes ranked, safety-scored travel routes from three
// independent geodata services.
type RouteService struct {
	geocoder Geocoder
	router   RouteFetcher
	pois     POISearcher
	producer *events.Producer
	logger   *zap.Logger
}

// NewRouteService creates a RouteService. producer may be nil when event
// publishing is disabled.
func NewRouteService(
	geocoder Geocoder,
	router RouteFetcher,
	pois POISearcher,
	producer *events.Producer,
	logger *zap.Logger,
) *RouteService {
	return &RouteService{
		geocoder: geocoder,
		router:   router,
		pois:     pois,
		producer: producer,
		logger:   logger,
	}
}

// Suggest powers autocomplete. Upstream failures collapse to an empty list;
// autocomplete never fails visibly.
func (s *RouteService) Suggest(ctx context.Context, query string, bias *route.Point) []place.Suggestion {
	suggestions, err := s.geocoder.Suggest(ctx, query, bias)
	if err != nil {
		s.logger.Warn("autocomplete lookup failed", zap.String("query", query), zap.Error(err))
		return []place.Suggestion{}
	}
	if suggestions == nil {
		suggestions = []place.Suggestion{}
	}
	return suggestions
}

// PlanRoutes resolves both place names, synthesizes up to three distinct
// driving routes between them, enriches each with nearby points of interest
// and returns them sorted by safety score descending.
//
// Geocoding and candidate generation failures abort the plan; POI
// enrichment failures degrade to an empty shop list for the affected route.
func (s *RouteService) PlanRoutes(ctx context.Context, originText, destinationText string) (*PlanResult, error) {
	origin, err := s.geocoder.Resolve(ctx, originText)
	if err != nil {
		return nil, err
	}
	dest, err := s.geocoder.Resolve(ctx, destinationText)
	if err != nil {
		return nil, err
	}

	ranked, err := s.generateCandidates(ctx, origin.Point, dest.Point)
	if err != nil {
		return nil, err
	}

	// Kick off POI enrichment for every route while scores, labels and
	// stops are computed synchronously below.
	poisByRoute := make([][]poi.POI, len(ranked))
	var wg sync.WaitGroup
	for i, c := range ranked {
		wg.Add(1)
		go func(i int, geometry []route.Point) {
			defer wg.Done()
			poisByRoute[i] = s.enrich(ctx, geometry)
		}(i, c.Geometry)
	}

	assembled := make([]AssembledRoute, len(ranked))
	for i, c := range ranked {
		assessment := route.ScoreSafety(c, i)
		label := route.Classify(ranked, i)

		assembled[i] = AssembledRoute{
			ID:            fmt.Sprintf("route-%d-%d", i, time.Now().UnixMilli()),
			Name:          label.Name,
			Description:   label.Description,
			SafetyScore:   assessment.Score,
			SafetyFactors: assessment.Factors,
			Duration:      route.FormatDuration(c.DurationSeconds),
			Distance:      route.FormatDistance(c.DistanceMeters),
			DurationSecs:  c.DurationSeconds,
			Transfers:     i,
			Badges:        label.Badges,
			Waypoints:     c.Geometry,
			Stops:         sampleStops(c.Legs),
			OriginStation: stationName(origin.DisplayName),
			DestStation:   stationName(dest.DisplayName),
		}
	}

	wg.Wait()

	for i := range assembled {
		shops := poisByRoute[i]
		if len(shops) > maxPOIsPerRoute {
			shops = shops[:maxPOIsPerRoute]
		}
		if shops == nil {
			shops = []poi.POI{}
		}
		assembled[i].Shops = shops
		assembled[i].TotalShops = len(shops)
		assembled[i].Brands = brandList(shops)
	}

	sortBySafetyDesc(assembled)

	s.publishRouteSearched(ctx, originText, destinationText, assembled)

	return &PlanResult{
		Origin:      origin.DisplayName,
		Destination: dest.DisplayName,
		Routes:      assembled,
	}, nil
}

// generateCandidates issues four concurrent routing requests (one direct,
// one per via-point) and folds the successes into a ranked candidate list.
// A request that fails or times out contributes nothing; only an empty
// union is fatal.
func (s *RouteService) generateCandidates(ctx context.Context, origin, dest route.Point) ([]route.Candidate, error) {
	vias := route.ViaPoints(origin, dest)

	// Request order is significant: dedup keeps the first candidate seen
	// in a duration window, and the direct route goes first.
	requests := []*route.Point{nil, &vias[0], &vias[1], &vias[2]}

	results := make([]*route.Candidate, len(requests))
	var wg sync.WaitGroup
	for i, via := range requests {
		wg.Add(1)
		go func(i int, via *route.Point) {
			defer wg.Done()
			callCtx, cancel := context.WithTimeout(ctx, routingCallTimeout)
			defer cancel()

			c, err := s.router.Route(callCtx, origin, dest, via)
			if err != nil {
				s.logger.Debug("routing request yielded no candidate",
					zap.Int("request", i), zap.Error(err))
				return
			}
			results[i] = &c
		}(i, via)
	}
	wg.Wait()

	candidates := make([]route.Candidate, 0, len(results))
	for _, r := range results {
		if r != nil {
			candidates = append(candidates, *r)
		}
	}

	if len(candidates) == 0 {
		return nil, domain.NewNoRouteError()
	}
	return route.DedupAndRank(candidates), nil
}

// enrich fetches POIs for one route's geometry, swallowing any upstream
// failure into an empty list. Enrichment never fails the plan.
func (s *RouteService) enrich(ctx context.Context, geometry []route.Point) []poi.POI {
	if len(geometry) == 0 {
		return nil
	}

	callCtx, cancel := context.WithTimeout(ctx, enrichmentTimeout)
	defer cancel()

	box := route.BoundingBoxAround(geometry, 0.008)
	found, err := s.pois.SearchBox(callCtx, box)
	if err != nil {
		s.logger.Warn("poi enrichment failed, continuing without shops", zap.Error(err))
		return nil
	}
	return found
}

// sampleStops thins dense turn-by-turn steps into landmark stops: every
// fourth named step across all legs, at most eight.
func sampleStops(legs []route.Leg) []Stop {
	stops := make([]Stop, 0, maxSampledStops)
	stepIdx := 0
	for _, leg := range legs {
		for _, step := range leg.Steps {
			name := strings.TrimSpace(step.Name)
			if name != "" && name != "undefined" && stepIdx > 0 && stepIdx%stopSampleStride == 0 {
				stops = append(stops, Stop{
					Lat:  step.Location.Lat,
					Lng:  step.Location.Lng,
					Name: name,
				})
				if len(stops) >= maxSampledStops {
					return stops
				}
			}
			stepIdx++
		}
	}
	return stops
}

// brandList extracts deduplicated POI names in first-seen order, capped at
// twelve.
func brandList(shops []poi.POI) []string {
	seen := make(map[string]struct{}, len(shops))
	brands := make([]string, 0, maxBrands)
	for _, s := range shops {
		if _, dup := seen[s.Name]; dup {
			continue
		}
		seen[s.Name] = struct{}{}
		brands = append(brands, s.Name)
		if len(brands) >= maxBrands {
			break
		}
	}
	return brands
}

// sortBySafetyDesc performs a stable sort so ties keep their original
// candidate order.
func sortBySafetyDesc(routes []AssembledRoute) {
	sort.SliceStable(routes, func(i, j int) bool {
		return routes[i].SafetyScore > routes[j].SafetyScore
	})
}

// stationName takes the leading segment of a display name, which Nominatim
// lists most-specific first.
func stationName(displayName string) string {
	return strings.SplitN(displayName, ",", 2)[0]
}

func (s *RouteService) publishRouteSearched(ctx context.Context, originText, destinationText string, routes []AssembledRoute) {
	if s.producer == nil || len(routes) == 0 {
		return
	}

	best := routes[0]
	evt := events.RouteSearchedEvent{
		Origin:      originText,
		Destination: destinationText,
		RouteName:   best.Name,
		SafetyScore: best.SafetyScore,
		RouteCount:  len(routes),
		OccurredAt:  time.Now().UTC(),
	}

	cloudEvent, err := events.NewCloudEvent("service-routes", events.RouteSearched, evt)
	if err != nil {
		s.logger.Error("failed to create route searched event", zap.Error(err))
		return
	}
	if err := s.producer.PublishEvent(ctx, events.TopicRouteEvents, cloudEvent); err != nil {
		s.logger.Error("failed to publish route searched event", zap.Error(err))
	}
}
