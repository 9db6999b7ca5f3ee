package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gosafe-transit/service-routes/internal/application"
	"github.com/gosafe-transit/service-routes/internal/auth"
	"github.com/gosafe-transit/service-routes/internal/domain"
	"github.com/gosafe-transit/service-routes/internal/domain/place"
	"github.com/gosafe-transit/service-routes/internal/domain/poi"
	"github.com/gosafe-transit/service-routes/internal/domain/route"
	"github.com/gosafe-transit/service-routes/internal/domain/trip"
)

type stubGeocoder struct {
	places      map[string]place.Resolved
	suggestions []place.Suggestion
}

func (s *stubGeocoder) Resolve(ctx context.Context, query string) (place.Resolved, error) {
	if p, ok := s.places[query]; ok {
		return p, nil
	}
	return place.Resolved{}, domain.NewPlaceNotFoundError(query)
}

func (s *stubGeocoder) Suggest(ctx context.Context, query string, bias *route.Point) ([]place.Suggestion, error) {
	return s.suggestions, nil
}

type stubRouter struct{}

func (stubRouter) Route(ctx context.Context, origin, dest route.Point, via *route.Point) (route.Candidate, error) {
	if via != nil {
		return route.Candidate{}, domain.NewUpstreamError("osrm", context.Canceled)
	}
	return route.Candidate{
		DurationSeconds: 900,
		DistanceMeters:  5000,
		Geometry:        []route.Point{{Lat: 12.97, Lng: 77.57}, {Lat: 12.97, Lng: 77.75}},
	}, nil
}

type stubPOIs struct{}

func (stubPOIs) SearchBox(ctx context.Context, box route.BoundingBox) ([]poi.POI, error) {
	return nil, nil
}

type memoryHistory struct {
	mu      sync.Mutex
	entries []trip.HistoryEntry
}

func (m *memoryHistory) Save(ctx context.Context, entry *trip.HistoryEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *memoryHistory) FindRecentByUserID(ctx context.Context, userID int64, limit int) ([]trip.HistoryEntry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.entries, nil
}

func (m *memoryHistory) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}

type memorySaved struct{}

func (memorySaved) Save(ctx context.Context, r *trip.SavedRoute) error { return nil }
func (memorySaved) FindByUserID(ctx context.Context, userID int64) ([]trip.SavedRoute, error) {
	return nil, nil
}
func (memorySaved) DeleteByIDAndUserID(ctx context.Context, id, userID int64) error { return nil }

func newTestRouter(t *testing.T) (*gin.Engine, *memoryHistory, *auth.JWTManager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	geocoder := &stubGeocoder{
		places: map[string]place.Resolved{
			"Majestic":   {Point: route.Point{Lat: 12.97, Lng: 77.57}, DisplayName: "Majestic, Bengaluru"},
			"Whitefield": {Point: route.Point{Lat: 12.97, Lng: 77.75}, DisplayName: "Whitefield, Bengaluru"},
		},
		suggestions: []place.Suggestion{{ID: "1", Name: "Majestic, Bengaluru"}},
	}

	log := zap.NewNop()
	routeService := application.NewRouteService(geocoder, stubRouter{}, stubPOIs{}, nil, log)
	history := &memoryHistory{}
	tripService := application.NewTripService(history, memorySaved{}, log)

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)

	r := gin.New()
	h := NewRouteHandler(routeService, tripService)
	h.RegisterRoutes(&r.RouterGroup, jwtManager)
	return r, history, jwtManager
}

func doJSON(r *gin.Engine, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/health", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestSearch_SameOriginAndDestinationRejected(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/routes/search",
		`{"origin": "Majestic", "destination": "  majestic "}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Origin and destination cannot be the same.")
}

func TestSearch_MissingFieldsRejected(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/routes/search", `{"origin": "Majestic"}`, "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearch_Success(t *testing.T) {
	r, history, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/routes/search",
		`{"origin": "Majestic", "destination": "Whitefield"}`, "")

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Success     bool                         `json:"success"`
		Origin      string                       `json:"origin"`
		Destination string                       `json:"destination"`
		Routes      []application.AssembledRoute `json:"routes"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.True(t, body.Success)
	assert.Equal(t, "Majestic", body.Origin)
	assert.Equal(t, "Whitefield", body.Destination)
	require.Len(t, body.Routes, 1)
	assert.Equal(t, "Fastest Route", body.Routes[0].Name)

	// Anonymous searches leave no history.
	assert.Equal(t, 0, history.count())
}

func TestSearch_AuthenticatedRecordsHistory(t *testing.T) {
	r, history, jwtManager := newTestRouter(t)

	token, err := jwtManager.Generate(42, "asha@example.com", "Asha")
	require.NoError(t, err)

	w := doJSON(r, http.MethodPost, "/api/routes/search",
		`{"origin": "Majestic", "destination": "Whitefield"}`, token)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 1, history.count())
	assert.Equal(t, int64(42), history.entries[0].UserID)
	assert.Equal(t, "Majestic", history.entries[0].Origin)
}

func TestSearch_UnknownPlaceSurfacesMessage(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/routes/search",
		`{"origin": "Atlantis", "destination": "Whitefield"}`, "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Atlantis")
}

func TestStations_ShortQueryReturnsEmptyList(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/stations?q=a", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"stations":[]`)
}

func TestStations_ReturnsSuggestions(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/stations?q=maj&lat=12.97&lng=77.57", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Majestic, Bengaluru")
}

func TestAutocomplete(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/routes/autocomplete?q=maj", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"suggestions"`)
	assert.Contains(t, w.Body.String(), "Majestic, Bengaluru")
}

func TestFinalize(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodPost, "/api/routes/finalize", `{"routeId": "route-0-123"}`, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"finalized"`)

	w = doJSON(r, http.MethodPost, "/api/routes/finalize", `{}`, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLive(t *testing.T) {
	r, _, _ := newTestRouter(t)

	w := doJSON(r, http.MethodGet, "/api/routes/live/route-0-123", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"routeId":"route-0-123"`)
	assert.Contains(t, w.Body.String(), `"status":"active"`)
}
