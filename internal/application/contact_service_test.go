package application

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/gosafe-transit/service-routes/internal/domain"
	contactDomain "github.com/gosafe-transit/service-routes/internal/domain/contact"
)

type fakeContactRepo struct {
	contacts []*contactDomain.EmergencyContact
	nextID   int64
	deleted  []int64
}

func (f *fakeContactRepo) FindByUserID(ctx context.Context, userID int64) ([]*contactDomain.EmergencyContact, error) {
	var out []*contactDomain.EmergencyContact
	for _, c := range f.contacts {
		if c.UserID() == userID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeContactRepo) CountByUserID(ctx context.Context, userID int64) (int64, error) {
	var n int64
	for _, c := range f.contacts {
		if c.UserID() == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeContactRepo) Save(ctx context.Context, c *contactDomain.EmergencyContact) error {
	f.nextID++
	c.SetID(f.nextID)
	f.contacts = append(f.contacts, c)
	return nil
}

func (f *fakeContactRepo) DeleteByIDAndUserID(ctx context.Context, id, userID int64) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func TestAddContact_SanitizesPhone(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewContactService(repo, zap.NewNop())

	dto, err := svc.AddContact(context.Background(), 1, AddContactRequest{
		Name:     "Asha",
		Phone:    "+91 (80) 1234-5678",
		Relation: "sister",
	})

	require.NoError(t, err)
	assert.Equal(t, "+918012345678", dto.Phone)
	assert.Equal(t, "Asha", dto.Name)
	assert.Equal(t, "sister", dto.Relation)
	assert.NotZero(t, dto.ID)
}

func TestAddContact_EnforcesCap(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewContactService(repo, zap.NewNop())

	for i := 0; i < contactDomain.MaxPerUser; i++ {
		_, err := svc.AddContact(context.Background(), 1, AddContactRequest{
			Name:  "Contact",
			Phone: "9876543210",
		})
		require.NoError(t, err)
	}

	_, err := svc.AddContact(context.Background(), 1, AddContactRequest{
		Name:  "One Too Many",
		Phone: "9876543211",
	})

	require.Error(t, err)
	appErr, ok := domain.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, domain.CodeValidation, appErr.Code)
	assert.Equal(t, "Maximum 5 emergency contacts allowed.", appErr.Message)

	// The cap is per user; another account is unaffected.
	_, err = svc.AddContact(context.Background(), 2, AddContactRequest{
		Name:  "Other User Contact",
		Phone: "9876543212",
	})
	assert.NoError(t, err)
}

func TestAddContact_RejectsBlankFields(t *testing.T) {
	svc := NewContactService(&fakeContactRepo{}, zap.NewNop())

	_, err := svc.AddContact(context.Background(), 1, AddContactRequest{Name: "  ", Phone: "123"})
	require.Error(t, err)

	_, err = svc.AddContact(context.Background(), 1, AddContactRequest{Name: "Asha", Phone: " - () "})
	require.Error(t, err)
}

func TestListContacts(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewContactService(repo, zap.NewNop())

	_, err := svc.AddContact(context.Background(), 1, AddContactRequest{Name: "Asha", Phone: "111"})
	require.NoError(t, err)
	_, err = svc.AddContact(context.Background(), 1, AddContactRequest{Name: "Ravi", Phone: "222"})
	require.NoError(t, err)

	dtos, err := svc.ListContacts(context.Background(), 1)

	require.NoError(t, err)
	require.Len(t, dtos, 2)
	assert.Equal(t, "Asha", dtos[0].Name)
	assert.Equal(t, "Ravi", dtos[1].Name)
}

func TestDeleteContact(t *testing.T) {
	repo := &fakeContactRepo{}
	svc := NewContactService(repo, zap.NewNop())

	require.NoError(t, svc.DeleteContact(context.Background(), 1, 42))
	assert.Equal(t, []int64{42}, repo.deleted)
}
