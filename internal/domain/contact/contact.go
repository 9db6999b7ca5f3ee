// Package contact holds the emergency contact aggregate.
package contact

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

// MaxPerUser caps how many emergency contacts one account may register.
const MaxPerUser = 5

var phoneNoise = regexp.MustCompile(`[\s\-()]`)

// EmergencyContact is a person to notify during a trip.
type EmergencyContact struct {
	id        int64
	userID    int64
	name      string
	phone     string
	relation  string
	createdAt time.Time
}

// NewEmergencyContact creates a contact for the given user. The phone number
// is sanitized of spaces, dashes and parentheses.
func NewEmergencyContact(userID int64, name, phone, relation string) (*EmergencyContact, error) {
	name = strings.TrimSpace(name)
	phone = phoneNoise.ReplaceAllString(strings.TrimSpace(phone), "")

	if userID == 0 {
		return nil, fmt.Errorf("user ID is required")
	}
	if name == "" {
		return nil, fmt.Errorf("contact name is required")
	}
	if phone == "" {
		return nil, fmt.Errorf("contact phone is required")
	}

	return &EmergencyContact{
		userID:    userID,
		name:      name,
		phone:     phone,
		relation:  strings.TrimSpace(relation),
		createdAt: time.Now().UTC(),
	}, nil
}

// Rehydrate reconstructs a contact from persistence.
func Rehydrate(id, userID int64, name, phone, relation string, createdAt time.Time) *EmergencyContact {
	return &EmergencyContact{
		id:        id,
		userID:    userID,
		name:      name,
		phone:     phone,
		relation:  relation,
		createdAt: createdAt,
	}
}

// SetID assigns the database identity after the initial insert.
func (c *EmergencyContact) SetID(id int64) { c.id = id }

func (c *EmergencyContact) ID() int64            { return c.id }
func (c *EmergencyContact) UserID() int64        { return c.userID }
func (c *EmergencyContact) Name() string         { return c.name }
func (c *EmergencyContact) Phone() string        { return c.phone }
func (c *EmergencyContact) Relation() string     { return c.relation }
func (c *EmergencyContact) CreatedAt() time.Time { return c.createdAt }
