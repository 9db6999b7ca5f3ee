package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/gosafe-transit/service-routes/internal/domain"
	"github.com/gosafe-transit/service-routes/internal/domain/poi"
	"github.com/gosafe-transit/service-routes/internal/domain/route"
)

const (
	overpassTimeout = 20 * time.Second
	// Timeout passed to the Overpass server inside the query itself.
	overpassQueryTimeoutSecs = 18
	overpassMaxResults       = 150
)

// amenityFilter is the closed allow-list of amenity values considered
// points of interest.
const amenityFilter = "restaurant|cafe|fast_food|bank|atm|pharmacy|supermarket|cinema|fuel|hospital|mall"

// OverpassClient queries an Overpass API endpoint for named shops and
// amenities inside a bounding box.
type OverpassClient struct {
	endpoint   string
	userAgent  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewOverpassClient creates an OverpassClient. endpoint is the full
// interpreter URL.
func NewOverpassClient(endpoint, userAgent string, logger *zap.Logger) *OverpassClient {
	return &OverpassClient{
		endpoint:   endpoint,
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: overpassTimeout},
		logger:     logger,
	}
}

type overpassResponse struct {
	Elements []struct {
		Lat  float64           `json:"lat"`
		Lon  float64           `json:"lon"`
		Tags map[string]string `json:"tags"`
	} `json:"elements"`
}

// SearchBox fetches named shop/amenity/brand nodes inside box. Results are
// deduplicated by name, first occurrence winning. Category, icon and color
// come from the static catalog; the location label falls back to
// "Along route" when no address tags are present.
func (c *OverpassClient) SearchBox(ctx context.Context, box route.BoundingBox) ([]poi.POI, error) {
	bbox := fmt.Sprintf("%.5f,%.5f,%.5f,%.5f", box.South, box.West, box.North, box.East)
	query := fmt.Sprintf(`[out:json][timeout:%d];`+
		`(node["name"]["shop"](%s);`+
		`node["name"]["amenity"~"%s"](%s);`+
		`node["name"]["brand"](%s););`+
		`out %d;`,
		overpassQueryTimeoutSecs, bbox, amenityFilter, bbox, bbox, overpassMaxResults)

	body := strings.NewReader("data=" + url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, domain.NewUpstreamError("overpass", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, domain.NewUpstreamError("overpass", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewUpstreamError("overpass", fmt.Errorf("HTTP %d", resp.StatusCode))
	}

	var parsed overpassResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, domain.NewUpstreamError("overpass", err)
	}

	seen := make(map[string]struct{}, len(parsed.Elements))
	results := make([]poi.POI, 0, len(parsed.Elements))
	for _, el := range parsed.Elements {
		name := el.Tags["brand"]
		if name == "" {
			name = el.Tags["name"]
		}
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}

		rawCat := el.Tags["shop"]
		if rawCat == "" {
			rawCat = el.Tags["amenity"]
		}
		if rawCat == "" {
			rawCat = "shop"
		}

		style := poi.StyleFor(rawCat)
		results = append(results, poi.POI{
			Name:         name,
			Category:     strings.ToUpper(strings.ReplaceAll(rawCat, "_", " ")),
			Icon:         style.Icon,
			Color:        style.Color,
			Lat:          el.Lat,
			Lng:          el.Lon,
			NearestLabel: addressLabel(el.Tags),
		})
	}

	c.logger.Debug("fetched points of interest",
		zap.String("bbox", bbox),
		zap.Int("count", len(results)),
	)
	return results, nil
}

func addressLabel(tags map[string]string) string {
	var parts []string
	if street := tags["addr:street"]; street != "" {
		parts = append(parts, street)
	}
	if suburb := tags["addr:suburb"]; suburb != "" {
		parts = append(parts, suburb)
	} else if city := tags["addr:city"]; city != "" {
		parts = append(parts, city)
	}
	if len(parts) == 0 {
		return "Along route"
	}
	return strings.Join(parts, ", ")
}
