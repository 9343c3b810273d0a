// Package auth implements the JWT half of the dual-mode write guard.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/reelbase/catalog/internal/conf"
)

// Claims carried by catalog tokens.
type Claims struct {
	Email  string `json:"email"`
	UserID uint   `json:"uid"`
	jwt.RegisteredClaims
}

// JWTManager mints and validates HS256 tokens.
type JWTManager struct {
	secret []byte
	expiry time.Duration
}

// NewJWTManager creates a manager from the auth configuration. The secret
// must be set; tokens default to a 24h lifetime.
func NewJWTManager(c *conf.Auth) (*JWTManager, error) {
	if c.JwtSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required")
	}
	return &JWTManager{
		secret: []byte(c.JwtSecret),
		expiry: c.JwtExpiryOrDefault(24 * time.Hour),
	}, nil
}

// Issue signs a token for the given user.
func (m *JWTManager) Issue(email string, userID uint) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(m.expiry)
	claims := &Claims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Validate parses and verifies a token, returning its claims. Only HS256
// signatures are accepted.
func (m *JWTManager) Validate(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
