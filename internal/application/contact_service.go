package application

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/gosafe-transit/service-routes/internal/domain"
	contactDomain "github.com/gosafe-transit/service-routes/internal/domain/contact"
)

// AddContactRequest holds the data for a new emergency contact.
type AddContactRequest struct {
	Name     string `json:"name" binding:"required"`
	Phone    string `json:"phone" binding:"required"`
	Relation string `json:"relation"`
}

// ContactDTO is the response representation of an emergency contact.
type ContactDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Relation  string    `json:"relation,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactService is the application service for emergency contacts.
type ContactService struct {
	repo   contactDomain.ContactRepository
	logger *zap.Logger
}

// NewContactService creates a new ContactService.
func NewContactService(repo contactDomain.ContactRepository, logger *zap.Logger) *ContactService {
	return &ContactService{repo: repo, logger: logger}
}

// ListContacts returns the user's contacts in insertion order.
func (s *ContactService) ListContacts(ctx context.Context, userID int64) ([]ContactDTO, error) {
	contacts, err := s.repo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	dtos := make([]ContactDTO, len(contacts))
	for i, c := range contacts {
		dtos[i] = toContactDTO(c)
	}
	return dtos, nil
}

// AddContact registers a new contact, enforcing the per-user cap.
func (s *ContactService) AddContact(ctx context.Context, userID int64, req AddContactRequest) (*ContactDTO, error) {
	count, err := s.repo.CountByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if count >= contactDomain.MaxPerUser {
		return nil, domain.NewValidationError("Maximum 5 emergency contacts allowed.")
	}

	c, err := contactDomain.NewEmergencyContact(userID, req.Name, req.Phone, req.Relation)
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.repo.Save(ctx, c); err != nil {
		return nil, err
	}

	s.logger.Info("emergency contact added", zap.Int64("user_id", userID))
	dto := toContactDTO(c)
	return &dto, nil
}

// DeleteContact removes one of the user's contacts. Deleting a contact that
// does not exist (or belongs to someone else) is a no-op.
func (s *ContactService) DeleteContact(ctx context.Context, userID, contactID int64) error {
	return s.repo.DeleteByIDAndUserID(ctx, contactID, userID)
}

func toContactDTO(c *contactDomain.EmergencyContact) ContactDTO {
	return ContactDTO{
		ID:        c.ID(),
		Name:      c.Name(),
		Phone:     c.Phone(),
		Relation:  c.Relation(),
		CreatedAt: c.CreatedAt(),
	}
}
