package client

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gosafe-transit/service-routes/internal/domain/route"
)

func newTestOverpass(server *httptest.Server) *OverpassClient {
	return &OverpassClient{
		endpoint:   server.URL,
		userAgent:  "test-agent",
		httpClient: &http.Client{Timeout: 5 * time.Second},
		logger:     zap.NewNop(),
	}
}

func testBox() route.BoundingBox {
	return route.BoundingBox{South: 12.9, West: 77.5, North: 13.0, East: 77.6}
}

func TestOverpassSearchBox_QueryShape(t *testing.T) {
	var gotBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		raw, _ := io.ReadAll(r.Body)
		gotBody = string(raw)
		_, _ = w.Write([]byte(`{"elements": []}`))
	}))
	defer server.Close()

	c := newTestOverpass(server)

	_, err := c.SearchBox(context.Background(), testBox())

	require.NoError(t, err)

	values, err := url.ParseQuery(gotBody)
	require.NoError(t, err)
	query := values.Get("data")

	assert.Contains(t, query, "[out:json][timeout:18];")
	assert.Contains(t, query, `node["name"]["shop"](12.90000,77.50000,13.00000,77.60000);`)
	assert.Contains(t, query, `node["name"]["amenity"~"restaurant|cafe|fast_food|bank|atm|pharmacy|supermarket|cinema|fuel|hospital|mall"]`)
	assert.Contains(t, query, `node["name"]["brand"]`)
	assert.Contains(t, query, "out 150;")
}

func TestOverpassSearchBox_ParsesAndDedupes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"elements": [
			{"lat": 12.95, "lon": 77.55, "tags": {"name": "Cafe Coffee Day", "amenity": "cafe", "addr:street": "MG Road", "addr:city": "Bengaluru"}},
			{"lat": 12.96, "lon": 77.56, "tags": {"name": "CCD Indiranagar", "brand": "Cafe Coffee Day", "amenity": "cafe"}},
			{"lat": 12.97, "lon": 77.57, "tags": {"name": "Apollo Pharmacy", "amenity": "pharmacy"}},
			{"lat": 12.98, "lon": 77.58, "tags": {"shop": "supermarket"}},
			{"lat": 12.99, "lon": 77.59, "tags": {"name": "Corner Store", "shop": "convenience"}}
		]}`))
	}))
	defer server.Close()

	c := newTestOverpass(server)

	pois, err := c.SearchBox(context.Background(), testBox())

	require.NoError(t, err)
	require.Len(t, pois, 3)

	// Brand tag wins over name; the second "Cafe Coffee Day" is a duplicate
	// and the first occurrence keeps its coordinates.
	assert.Equal(t, "Cafe Coffee Day", pois[0].Name)
	assert.Equal(t, "CAFE", pois[0].Category)
	assert.Equal(t, 12.95, pois[0].Lat)
	assert.Equal(t, "MG Road, Bengaluru", pois[0].NearestLabel)

	assert.Equal(t, "Apollo Pharmacy", pois[1].Name)
	assert.Equal(t, "PHARMACY", pois[1].Category)
	assert.Equal(t, "💊", pois[1].Icon)
	assert.Equal(t, "Along route", pois[1].NearestLabel)

	// Unnamed nodes are skipped entirely.
	assert.Equal(t, "Corner Store", pois[2].Name)
	assert.Equal(t, "CONVENIENCE", pois[2].Category)
}

func TestOverpassSearchBox_CategoryFallbacksAndStyle(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"elements": [
			{"lat": 12.95, "lon": 77.55, "tags": {"name": "Mystery Place", "brand": "Mystery Place"}},
			{"lat": 12.96, "lon": 77.56, "tags": {"name": "Vintage Records", "shop": "music"}}
		]}`))
	}))
	defer server.Close()

	c := newTestOverpass(server)

	pois, err := c.SearchBox(context.Background(), testBox())

	require.NoError(t, err)
	require.Len(t, pois, 2)

	// Neither shop nor amenity tag: category falls back to "shop".
	assert.Equal(t, "SHOP", pois[0].Category)
	assert.Equal(t, "🏪", pois[0].Icon)
	assert.Equal(t, "#2e3450", pois[0].Color)

	// Unknown shop value keeps its name but gets the default style.
	assert.Equal(t, "MUSIC", pois[1].Category)
	assert.Equal(t, "🏪", pois[1].Icon)
	assert.Equal(t, "#2e3450", pois[1].Color)
}

func TestOverpassSearchBox_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	c := newTestOverpass(server)

	_, err := c.SearchBox(context.Background(), testBox())

	require.Error(t, err)
}
