package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/gosafe-transit/service-routes/internal/domain/trip"
)

// HistoryModel is the GORM model for the route_history table.
type HistoryModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UserID      int64     `gorm:"index;not null"`
	Origin      string    `gorm:"size:300;not null"`
	Destination string    `gorm:"size:300;not null"`
	RouteName   string    `gorm:"size:120"`
	Distance    string    `gorm:"size:30"`
	Duration    string    `gorm:"size:30"`
	SafetyScore int
	SearchedAt  time.Time `gorm:"not null;index"`
}

// TableName returns the table name for the GORM model.
func (HistoryModel) TableName() string {
	return "route_history"
}

// SavedRouteModel is the GORM model for the saved_routes table.
type SavedRouteModel struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	UserID      int64           `gorm:"index;not null"`
	Origin      string          `gorm:"size:300;not null"`
	Destination string          `gorm:"size:300;not null"`
	RouteName   string          `gorm:"size:120"`
	Label       string          `gorm:"size:100"`
	RouteData   json.RawMessage `gorm:"type:jsonb"`
	SavedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (SavedRouteModel) TableName() string {
	return "saved_routes"
}

// GormHistoryRepository is the GORM-based implementation of HistoryRepository.
type GormHistoryRepository struct {
	db *gorm.DB
}

// NewGormHistoryRepository creates a new GormHistoryRepository.
func NewGormHistoryRepository(db *gorm.DB) *GormHistoryRepository {
	return &GormHistoryRepository{db: db}
}

// Save appends a history entry.
func (r *GormHistoryRepository) Save(ctx context.Context, entry *trip.HistoryEntry) error {
	model := HistoryModel{
		UserID:      entry.UserID,
		Origin:      entry.Origin,
		Destination: entry.Destination,
		RouteName:   entry.RouteName,
		Distance:    entry.Distance,
		Duration:    entry.Duration,
		SafetyScore: entry.SafetyScore,
		SearchedAt:  entry.SearchedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}
	entry.ID = model.ID
	return nil
}

// FindRecentByUserID returns the user's most recent searches, newest first.
func (r *GormHistoryRepository) FindRecentByUserID(ctx context.Context, userID int64, limit int) ([]trip.HistoryEntry, error) {
	var models []HistoryModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("searched_at DESC").
		Limit(limit).
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find history: %w", err)
	}

	entries := make([]trip.HistoryEntry, len(models))
	for i, m := range models {
		entries[i] = trip.HistoryEntry{
			ID:          m.ID,
			UserID:      m.UserID,
			Origin:      m.Origin,
			Destination: m.Destination,
			RouteName:   m.RouteName,
			Distance:    m.Distance,
			Duration:    m.Duration,
			SafetyScore: m.SafetyScore,
			SearchedAt:  m.SearchedAt,
		}
	}
	return entries, nil
}

// GormSavedRouteRepository is the GORM-based implementation of
// SavedRouteRepository.
type GormSavedRouteRepository struct {
	db *gorm.DB
}

// NewGormSavedRouteRepository creates a new GormSavedRouteRepository.
func NewGormSavedRouteRepository(db *gorm.DB) *GormSavedRouteRepository {
	return &GormSavedRouteRepository{db: db}
}

// Save stores a saved route.
func (r *GormSavedRouteRepository) Save(ctx context.Context, route *trip.SavedRoute) error {
	model := SavedRouteModel{
		UserID:      route.UserID,
		Origin:      route.Origin,
		Destination: route.Destination,
		RouteName:   route.RouteName,
		Label:       route.Label,
		RouteData:   route.RouteData,
		SavedAt:     route.SavedAt,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save route: %w", err)
	}
	route.ID = model.ID
	return nil
}

// FindByUserID returns the user's saved routes, newest first.
func (r *GormSavedRouteRepository) FindByUserID(ctx context.Context, userID int64) ([]trip.SavedRoute, error) {
	var models []SavedRouteModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("saved_at DESC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find saved routes: %w", err)
	}

	routes := make([]trip.SavedRoute, len(models))
	for i, m := range models {
		routes[i] = trip.SavedRoute{
			ID:          m.ID,
			UserID:      m.UserID,
			Origin:      m.Origin,
			Destination: m.Destination,
			RouteName:   m.RouteName,
			Label:       m.Label,
			RouteData:   m.RouteData,
			SavedAt:     m.SavedAt,
		}
	}
	return routes, nil
}

// DeleteByIDAndUserID removes a saved route only if it belongs to the user.
func (r *GormSavedRouteRepository) DeleteByIDAndUserID(ctx context.Context, id, userID int64) error {
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&SavedRouteModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete saved route: %w", err)
	}
	return nil
}
