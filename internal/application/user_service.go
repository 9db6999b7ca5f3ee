package application

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gosafe-transit/service-routes/internal/auth"
	"github.com/gosafe-transit/service-routes/internal/domain"
	userDomain "github.com/gosafe-transit/service-routes/internal/domain/user"
)

const bcryptCost = 12

// SignupRequest holds the data needed to create an account.
type SignupRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

// LoginRequest holds login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest holds optional profile fields; nil fields are left
// untouched.
type UpdateProfileRequest struct {
	Name  *string `json:"name"`
	City  *string `json:"city"`
	Phone *string `json:"phone"`
}

// ChangePasswordRequest holds a password change.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" binding:"required"`
	NewPassword     string `json:"new_password" binding:"required,min=8"`
}

// UserDTO is the client-safe representation of an account; it never carries
// the password hash.
type UserDTO struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	AvatarURL string    `json:"avatar_url"`
	City      string    `json:"city"`
	Phone     string    `json:"phone"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// AuthResult is a token plus the account it was issued for.
type AuthResult struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// UserService is the application service for accounts.
type UserService struct {
	repo   userDomain.UserRepository
	jwt    *auth.JWTManager
	logger *zap.Logger
}

// NewUserService creates a new UserService.
func NewUserService(repo userDomain.UserRepository, jwt *auth.JWTManager, logger *zap.Logger) *UserService {
	return &UserService{repo: repo, jwt: jwt, logger: logger}
}

// Signup registers a new account and issues a token.
func (s *UserService) Signup(ctx context.Context, req SignupRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	exists, err := s.repo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.NewConflictError("An account with that email already exists.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, domain.NewInternalError(err)
	}

	u, err := userDomain.NewUser(req.Name, email, string(hash))
	if err != nil {
		return nil, domain.NewValidationError(err.Error())
	}

	if err := s.repo.Save(ctx, u); err != nil {
		return nil, err
	}

	s.logger.Info("account created", zap.Int64("user_id", u.ID()))
	return s.authResult(u)
}

// Login verifies credentials and issues a token. The failure message never
// reveals whether the email exists.
func (s *UserService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.NewUnauthorizedError("Invalid email or password.")
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash()), []byte(req.Password)) != nil {
		return nil, domain.NewUnauthorizedError("Invalid email or password.")
	}

	return s.authResult(u)
}

// GetUser returns the client-safe view of an account.
func (s *UserService) GetUser(ctx context.Context, userID int64) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	dto := toUserDTO(u)
	return &dto, nil
}

// UpdateProfile applies partial profile changes.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req UpdateProfileRequest) (*UserDTO, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	u.UpdateProfile(req.Name, req.City, req.Phone)
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, err
	}

	dto := toUserDTO(u)
	return &dto, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash()), []byte(req.CurrentPassword)) != nil {
		return domain.NewUnauthorizedError("Current password is incorrect.")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
	if err != nil {
		return domain.NewInternalError(err)
	}
	if err := u.ChangePassword(string(hash)); err != nil {
		return domain.NewValidationError(err.Error())
	}

	return s.repo.Update(ctx, u)
}

func (s *UserService) authResult(u *userDomain.User) (*AuthResult, error) {
	token, err := s.jwt.Generate(u.ID(), u.Email(), u.Name())
	if err != nil {
		return nil, domain.NewInternalError(err)
	}
	return &AuthResult{Token: token, User: toUserDTO(u)}, nil
}

func toUserDTO(u *userDomain.User) UserDTO {
	return UserDTO{
		ID:        u.ID(),
		Name:      u.Name(),
		Email:     u.Email(),
		AvatarURL: u.AvatarURL(),
		City:      u.City(),
		Phone:     u.Phone(),
		Role:      u.Role(),
		CreatedAt: u.CreatedAt(),
	}
}
