package user

import (
	"fmt"
	"strings"
	"time"
)

// Role values for an account.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User is the aggregate root for an account.
type User struct {
	id           int64
	name         string
	email        string
	passwordHash string
	phone        string
	city         string
	avatarURL    string
	role         string
	isVerified   bool
	createdAt    time.Time
	updatedAt    time.Time
}

// NewUser creates a new unverified account. The email is normalized to
// lowercase.
func NewUser(name, email, passwordHash string) (*User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" {
		return nil, fmt.Errorf("name is required")
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("a valid email is required")
	}
	if passwordHash == "" {
		return nil, fmt.Errorf("password hash is required")
	}

	now := time.Now().UTC()
	return &User{
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		role:         RoleUser,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// Rehydrate reconstructs a User from persistence. Used only by the
// repository layer.
func Rehydrate(
	id int64,
	name, email, passwordHash, phone, city, avatarURL, role string,
	isVerified bool,
	createdAt, updatedAt time.Time,
) *User {
	return &User{
		id:           id,
		name:         name,
		email:        email,
		passwordHash: passwordHash,
		phone:        phone,
		city:         city,
		avatarURL:    avatarURL,
		role:         role,
		isVerified:   isVerified,
		createdAt:    createdAt,
		updatedAt:    updatedAt,
	}
}

// UpdateProfile applies the provided profile fields. Empty name is ignored
// so a partial update cannot blank it; city and phone may be cleared.
func (u *User) UpdateProfile(name, city, phone *string) {
	if name != nil && strings.TrimSpace(*name) != "" {
		u.name = strings.TrimSpace(*name)
	}
	if city != nil {
		u.city = strings.TrimSpace(*city)
	}
	if phone != nil {
		u.phone = strings.TrimSpace(*phone)
	}
	u.updatedAt = time.Now().UTC()
}

// ChangePassword replaces the stored password hash.
func (u *User) ChangePassword(passwordHash string) error {
	if passwordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	u.passwordHash = passwordHash
	u.updatedAt = time.Now().UTC()
	return nil
}

// SetID assigns the database identity after the initial insert.
func (u *User) SetID(id int64) { u.id = id }

func (u *User) ID() int64            { return u.id }
func (u *User) Name() string         { return u.name }
func (u *User) Email() string        { return u.email }
func (u *User) PasswordHash() string { return u.passwordHash }
func (u *User) Phone() string        { return u.phone }
func (u *User) City() string         { return u.city }
func (u *User) AvatarURL() string    { return u.avatarURL }
func (u *User) Role() string         { return u.role }
func (u *User) IsVerified() bool     { return u.isVerified }
func (u *User) CreatedAt() time.Time { return u.createdAt }
func (u *User) UpdatedAt() time.Time { return u.updatedAt }
