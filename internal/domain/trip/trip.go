// Package trip holds the append-only records a user accumulates: search
// history entries and saved routes. These are plain records rather than
// aggregates; they are written once and never mutated.
package trip

import (
	"context"
	"encoding/json"
	"time"
)

// HistoryEntry records one route search and its best result.
type HistoryEntry struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"-"`
	Origin      string    `json:"origin"`
	Destination string    `json:"destination"`
	RouteName   string    `json:"route_name"`
	Distance    string    `json:"distance"`
	Duration    string    `json:"duration"`
	SafetyScore int       `json:"safety_score"`
	SearchedAt  time.Time `json:"searched_at"`
}

// SavedRoute is a route the user pinned for later, with the full assembled
// route payload stored as JSON.
type SavedRoute struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"-"`
	Origin      string          `json:"origin"`
	Destination string          `json:"destination"`
	RouteName   string          `json:"route_name"`
	Label       string          `json:"label"`
	RouteData   json.RawMessage `json:"route_data,omitempty"`
	SavedAt     time.Time       `json:"saved_at"`
}

// HistoryRepository defines persistence for search history.
type HistoryRepository interface {
	Save(ctx context.Context, entry *HistoryEntry) error
	FindRecentByUserID(ctx context.Context, userID int64, limit int) ([]HistoryEntry, error)
}

// SavedRouteRepository defines persistence for saved routes.
type SavedRouteRepository interface {
	Save(ctx context.Context, route *SavedRoute) error
	FindByUserID(ctx context.Context, userID int64) ([]SavedRoute, error)
	DeleteByIDAndUserID(ctx context.Context, id, userID int64) error
}
