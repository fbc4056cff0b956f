package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenClaims is what a verified token proves about its bearer.
type TokenClaims struct {
	UserID    uuid.UUID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService defines the interface for token creation and validation.
// Implementations include PasetoService (PASETO v4.local) and JWTService (HS256).
type TokenService interface {
	CreateToken(userID uuid.UUID, duration time.Duration) (string, error)
	// VerifyToken returns ErrInvalidToken or ErrExpiredToken on failure.
	VerifyToken(tokenStr string) (*TokenClaims, error)
}

// RateLimiter reports whether another request for key fits in the current window.
type RateLimiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}
