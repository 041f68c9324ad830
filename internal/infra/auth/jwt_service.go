package auth

import (
	"strings"
	"time"

	"taskapi/config"
	"taskapi/internal/domain/entity"
	domainerrors "taskapi/internal/domain/errors"
	"taskapi/internal/domain/service"
	"taskapi/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errUnsupportedAlgorithm = errors.New("unsupported signing algorithm")

// jwtService is a concrete implementation of the TokenService interface using HS256 JWTs.
// The signing key is loaded once at construction and never changes afterwards.
type jwtService struct {
	signingKey []byte
	ttl        time.Duration
	issuer     string
	now        func() time.Time
}

// NewJWTService is the constructor for jwtService.
// A missing signing key is a fatal misconfiguration.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	if cfg.JWT == nil {
		return nil, errors.New("jwt configuration must be provided")
	}

	return newJWTService(cfg.JWT.Secret, cfg.JWT.TTL(), cfg.JWT.Issuer, time.Now)
}

func newJWTService(secret string, ttl time.Duration, issuer string, now func() time.Time) (*jwtService, error) {
	if secret == "" {
		return nil, errors.New("jwt signing key must be provided")
	}
	if ttl <= 0 {
		return nil, errors.Errorf("jwt ttl must be positive, got %s", ttl)
	}

	return &jwtService{
		signingKey: []byte(secret),
		ttl:        ttl,
		issuer:     issuer,
		now:        now,
	}, nil
}

// Issue signs a token carrying the principal's email as subject plus its id and username.
func (s *jwtService) Issue(principal *entity.Principal) (string, error) {
	if principal == nil {
		return "", errors.New("principal must not be nil")
	}

	issuedAt := s.now()
	claims := service.Claims{
		UserID:   principal.ID,
		Username: principal.DisplayUsername,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   principal.LoginEmail,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.signingKey)
	if err != nil {
		return "", errors.Wrap(err, "sign access token")
	}

	return token, nil
}

// Verify parses the token and checks signature and expiry.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("empty token")
	}

	opts := []jwt.ParserOption{
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	}
	if s.issuer != "" {
		opts = append(opts, jwt.WithIssuer(s.issuer))
	}

	claims := &service.Claims{}
	if _, err := jwt.NewParser(opts...).ParseWithClaims(tokenString, claims, s.keyFunc); err != nil {
		return nil, classifyParseError(err)
	}

	if claims.Subject == "" || claims.UserID == uuid.Nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("token is missing identity claims")
	}

	return claims, nil
}

// IsExpired reports whether the token fails verification solely because it expired.
func (s *jwtService) IsExpired(tokenString string) bool {
	_, err := s.Verify(tokenString)

	return errors.Is(err, domainerrors.ErrTokenExpired)
}

// TTL returns the lifetime of issued tokens.
func (s *jwtService) TTL() time.Duration {
	return s.ttl
}

func (s *jwtService) keyFunc(token *jwt.Token) (any, error) {
	if token.Method == nil || token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, errUnsupportedAlgorithm
	}

	return s.signingKey, nil
}

func classifyParseError(err error) error {
	switch {
	case errors.Is(err, errUnsupportedAlgorithm), errors.Is(err, jwt.ErrTokenUnverifiable):
		return domainerrors.ErrUnsupportedToken.WrapMessage(err.Error())
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domainerrors.ErrMalformedToken.WrapMessage(err.Error())
	case errors.Is(err, jwt.ErrTokenExpired):
		return domainerrors.ErrTokenExpired.WrapMessage(err.Error())
	default:
		return domainerrors.ErrInvalidToken.WrapMessage(err.Error())
	}
}
