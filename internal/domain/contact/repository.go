package contact

import "context"

// ContactRepository defines persistence operations for emergency contacts.
type ContactRepository interface {
	FindByUserID(ctx context.Context, userID int64) ([]*EmergencyContact, error)
	CountByUserID(ctx context.Context, userID int64) (int64, error)
	Save(ctx context.Context, c *EmergencyContact) error
	DeleteByIDAndUserID(ctx context.Context, id, userID int64) error
}
