package service

import (
	"time"

	"taskapi/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims defines the custom claims carried by access tokens. The subject is the login email.
type Claims struct {
	UserID   uuid.UUID `json:"userId"`
	Username string    `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited bearer tokens.
type TokenService interface {
	// Issue signs a token for the principal, valid for the configured TTL.
	Issue(principal *entity.Principal) (string, error)

	// Verify checks signature and expiry. Failures are reported as ErrMalformedToken,
	// ErrUnsupportedToken, ErrTokenExpired or ErrInvalidToken.
	Verify(token string) (*Claims, error)

	// IsExpired reports whether the token parses and fails solely on expiry.
	IsExpired(token string) bool

	// TTL returns the lifetime of issued tokens.
	TTL() time.Duration
}
