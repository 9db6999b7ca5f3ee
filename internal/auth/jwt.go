// Package auth implements token issuance and validation.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried in every access token.
type Claims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

// JWTManager issues and validates HS512-signed access tokens.
type JWTManager struct {
	key []byte
	ttl time.Duration
}

// NewJWTManager creates a JWTManager. The secret is cycled until it reaches
// the 64 bytes HS512 requires, so short development secrets still work.
func NewJWTManager(secret string, ttl time.Duration) *JWTManager {
	padded := secret
	for len(padded) < 64 {
		padded += secret
	}
	return &JWTManager{key: []byte(padded), ttl: ttl}
}

// Generate issues a token for the given user. The subject is the user ID.
func (m *JWTManager) Generate(userID int64, email, name string) (string, error) {
	now := time.Now()
	claims := Claims{
		Email: email,
		Name:  name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprintf("%d", userID),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(m.key)
}

// Verify validates a token and returns the user ID it was issued for.
func (m *JWTManager) Verify(token string) (int64, *Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.key, nil
	})
	if err != nil {
		return 0, nil, err
	}
	if !parsed.Valid {
		return 0, nil, fmt.Errorf("invalid token")
	}

	var userID int64
	if _, err := fmt.Sscanf(claims.Subject, "%d", &userID); err != nil {
		return 0, nil, fmt.Errorf("invalid subject %q: %w", claims.Subject, err)
	}
	return userID, claims, nil
}
