package application

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/gosafe-transit/service-routes/internal/domain"
	"github.com/gosafe-transit/service-routes/internal/domain/trip"
)

const historyLimit = 20

// SaveRouteRequest holds a route the user wants to pin.
type SaveRouteRequest struct {
	Origin      string          `json:"origin" binding:"required"`
	Destination string          `json:"destination" binding:"required"`
	RouteName   string          `json:"route_name"`
	Label       string          `json:"label"`
	RouteData   json.RawMessage `json:"route_data"`
}

// TripService is the application service for search history and saved
// routes.
type TripService struct {
	history trip.HistoryRepository
	saved   trip.SavedRouteRepository
	logger  *zap.Logger
}

// NewTripService creates a new TripService.
func NewTripService(history trip.HistoryRepository, saved trip.SavedRouteRepository, logger *zap.Logger) *TripService {
	return &TripService{history: history, saved: saved, logger: logger}
}

// RecordSearch appends a history entry for the best route of a successful
// search. Failures are logged and swallowed; history must never break a
// search response.
func (s *TripService) RecordSearch(ctx context.Context, userID int64, origin, destination string, best AssembledRoute) {
	entry := trip.HistoryEntry{
		UserID:      userID,
		Origin:      origin,
		Destination: destination,
		RouteName:   best.Name,
		Distance:    best.Distance,
		Duration:    best.Duration,
		SafetyScore: best.SafetyScore,
		SearchedAt:  time.Now().UTC(),
	}
	if err := s.history.Save(ctx, &entry); err != nil {
		s.logger.Warn("failed to record search history",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}
}

// GetHistory returns the user's recent searches, newest first.
func (s *TripService) GetHistory(ctx context.Context, userID int64) ([]trip.HistoryEntry, error) {
	entries, err := s.history.FindRecentByUserID(ctx, userID, historyLimit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []trip.HistoryEntry{}
	}
	return entries, nil
}

// SaveRoute pins a route for the user.
func (s *TripService) SaveRoute(ctx context.Context, userID int64, req SaveRouteRequest) error {
	if req.Origin == "" || req.Destination == "" {
		return domain.NewValidationError("Origin and destination are required.")
	}

	route := trip.SavedRoute{
		UserID:      userID,
		Origin:      req.Origin,
		Destination: req.Destination,
		RouteName:   req.RouteName,
		Label:       req.Label,
		RouteData:   req.RouteData,
		SavedAt:     time.Now().UTC(),
	}
	return s.saved.Save(ctx, &route)
}

// GetSavedRoutes returns the user's saved routes, newest first.
func (s *TripService) GetSavedRoutes(ctx context.Context, userID int64) ([]trip.SavedRoute, error) {
	routes, err := s.saved.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if routes == nil {
		routes = []trip.SavedRoute{}
	}
	return routes, nil
}

// DeleteSavedRoute removes one of the user's saved routes.
func (s *TripService) DeleteSavedRoute(ctx context.Context, userID, routeID int64) error {
	return s.saved.DeleteByIDAndUserID(ctx, routeID, userID)
}
