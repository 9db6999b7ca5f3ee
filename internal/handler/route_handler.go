package handler

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gosafe-transit/service-routes/internal/application"
	"github.com/gosafe-transit/service-routes/internal/auth"
	"github.com/gosafe-transit/service-routes/internal/domain/place"
	"github.com/gosafe-transit/service-routes/internal/domain/route"
	"github.com/gosafe-transit/service-routes/internal/middleware"
	"github.com/gosafe-transit/service-routes/internal/response"
)

// minQueryLength is the shortest autocomplete query worth forwarding
// upstream.
const minQueryLength = 2

// RouteHandler handles HTTP requests for route planning and autocomplete.
type RouteHandler struct {
	routes *application.RouteService
	trips  *application.TripService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(routes *application.RouteService, trips *application.TripService) *RouteHandler {
	return &RouteHandler{routes: routes, trips: trips}
}

// RegisterRoutes registers route planning endpoints.
func (h *RouteHandler) RegisterRoutes(r *gin.RouterGroup, jwtManager *auth.JWTManager) {
	r.GET("/api/health", h.Health)
	r.GET("/api/stations", h.Stations)
	r.GET("/api/routes/autocomplete", h.Autocomplete)
	r.POST("/api/routes/search", middleware.OptionalAuthMiddleware(jwtManager), h.Search)
	r.POST("/api/routes/finalize", h.Finalize)
	r.GET("/api/routes/live/:routeId", h.Live)
}

// Health handles GET /api/health.
func (h *RouteHandler) Health(c *gin.Context) {
	response.OK(c, gin.H{"status": "ok"})
}

// Stations handles GET /api/stations. When lat/lng are supplied the
// suggestions are biased toward that location.
func (h *RouteHandler) Stations(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if len(q) < minQueryLength {
		response.OK(c, gin.H{"stations": []place.Suggestion{}})
		return
	}

	var bias *route.Point
	lat, latErr := strconv.ParseFloat(c.Query("lat"), 64)
	lng, lngErr := strconv.ParseFloat(c.Query("lng"), 64)
	if latErr == nil && lngErr == nil {
		bias = &route.Point{Lat: lat, Lng: lng}
	}

	suggestions := h.routes.Suggest(c.Request.Context(), q, bias)
	response.OK(c, gin.H{"stations": suggestions})
}

// Autocomplete handles GET /api/routes/autocomplete.
func (h *RouteHandler) Autocomplete(c *gin.Context) {
	q := strings.TrimSpace(c.Query("q"))
	if len(q) < minQueryLength {
		response.OK(c, gin.H{"suggestions": []place.Suggestion{}})
		return
	}

	suggestions := h.routes.Suggest(c.Request.Context(), q, nil)
	response.OK(c, gin.H{"suggestions": suggestions})
}

// SearchRequest is the body of POST /api/routes/search.
type SearchRequest struct {
	Origin      string `json:"origin" binding:"required"`
	Destination string `json:"destination" binding:"required"`
}

// Search handles POST /api/routes/search. Authenticated searches persist
// the best route to history.
func (h *RouteHandler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Origin and destination are required.")
		return
	}

	origin := strings.TrimSpace(req.Origin)
	dest := strings.TrimSpace(req.Destination)
	if strings.EqualFold(origin, dest) {
		response.BadRequest(c, "Origin and destination cannot be the same.")
		return
	}

	result, err := h.routes.PlanRoutes(c.Request.Context(), origin, dest)
	if err != nil {
		response.RouteError(c, err)
		return
	}

	if userID, ok := middleware.GetUserID(c); ok && len(result.Routes) > 0 {
		h.trips.RecordSearch(c.Request.Context(), userID, origin, dest, result.Routes[0])
	}

	response.OK(c, gin.H{
		"success":     true,
		"origin":      origin,
		"destination": dest,
		"routes":      result.Routes,
	})
}

// Finalize handles POST /api/routes/finalize.
func (h *RouteHandler) Finalize(c *gin.Context) {
	var req struct {
		RouteID string `json:"routeId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.RouteID == "" {
		response.BadRequest(c, "routeId required.")
		return
	}
	response.OK(c, gin.H{"success": true, "routeId": req.RouteID, "status": "finalized"})
}

// Live handles GET /api/routes/live/:routeId.
func (h *RouteHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"routeId":     c.Param("routeId"),
		"status":      "active",
		"lastUpdated": time.Now().UTC().Format(time.RFC3339),
	})
}
