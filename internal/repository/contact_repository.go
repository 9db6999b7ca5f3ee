package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	contactDomain "github.com/gosafe-transit/service-routes/internal/domain/contact"
)

// ContactModel is the GORM model for the emergency_contacts table.
type ContactModel struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"index;not null"`
	Name      string    `gorm:"size:120;not null"`
	Phone     string    `gorm:"size:25;not null"`
	Relation  string    `gorm:"size:60"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for the GORM model.
func (ContactModel) TableName() string {
	return "emergency_contacts"
}

// GormContactRepository is the GORM-based implementation of ContactRepository.
type GormContactRepository struct {
	db *gorm.DB
}

// NewGormContactRepository creates a new GormContactRepository.
func NewGormContactRepository(db *gorm.DB) *GormContactRepository {
	return &GormContactRepository{db: db}
}

// FindByUserID retrieves a user's contacts in insertion order.
func (r *GormContactRepository) FindByUserID(ctx context.Context, userID int64) ([]*contactDomain.EmergencyContact, error) {
	var models []ContactModel
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to find contacts: %w", err)
	}

	contacts := make([]*contactDomain.EmergencyContact, len(models))
	for i, m := range models {
		contacts[i] = contactDomain.Rehydrate(m.ID, m.UserID, m.Name, m.Phone, m.Relation, m.CreatedAt)
	}
	return contacts, nil
}

// CountByUserID counts a user's contacts.
func (r *GormContactRepository) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ContactModel{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}
	return count, nil
}

// Save inserts a new contact and backfills the generated ID.
func (r *GormContactRepository) Save(ctx context.Context, c *contactDomain.EmergencyContact) error {
	model := ContactModel{
		UserID:    c.UserID(),
		Name:      c.Name(),
		Phone:     c.Phone(),
		Relation:  c.Relation(),
		CreatedAt: c.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("failed to save contact: %w", err)
	}
	c.SetID(model.ID)
	return nil
}

// DeleteByIDAndUserID removes a contact only if it belongs to the user.
func (r *GormContactRepository) DeleteByIDAndUserID(ctx context.Context, id, userID int64) error {
	if err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&ContactModel{}).Error; err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}
	return nil
}
