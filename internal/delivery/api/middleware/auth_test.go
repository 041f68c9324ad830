package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskapi/config"
	deliverycontext "taskapi/internal/delivery/context"
	"taskapi/internal/domain/entity"
	domainerrors "taskapi/internal/domain/errors"
	"taskapi/internal/domain/repository"
	"taskapi/internal/domain/service"
	"taskapi/internal/errors"
	mockRepo "taskapi/internal/mocks/repository"
	mockSvc "taskapi/internal/mocks/service"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type gateFixture struct {
	e        *echo.Echo
	tokenSvc *mockSvc.MockTokenService
	userRepo *mockRepo.MockUserRepository
	seen     *entity.Principal
	fromCtx  *entity.Principal
	hits     int
}

func newGateFixture(t *testing.T) *gateFixture {
	t.Helper()

	cfg := &config.Config{Auth: &config.AuthConfig{PublicPaths: config.DefaultPublicPaths}}
	f := &gateFixture{
		e:        newTestEcho(cfg),
		tokenSvc: mockSvc.NewMockTokenService(t),
		userRepo: mockRepo.NewMockUserRepository(t),
	}

	gate := NewAuthMiddleware(AuthMiddlewareParams{
		TokenService: f.tokenSvc,
		UserRepo:     f.userRepo,
		Config:       cfg,
		Logger:       newDiscardLogger(),
	})
	f.e.Use(gate.Authenticate)

	handler := func(c echo.Context) error {
		f.hits++
		f.seen, _ = PrincipalFrom(c)
		f.fromCtx, _ = deliverycontext.GetPrincipal(c.Request().Context())

		return c.NoContent(http.StatusNoContent)
	}
	f.e.GET("/tasks", handler)
	f.e.DELETE("/tasks/:id", handler)
	f.e.POST("/auth/login", handler)

	return f
}

func (f *gateFixture) do(method, target, authorization string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if authorization != "" {
		req.Header.Set(echo.HeaderAuthorization, authorization)
	}
	rec := httptest.NewRecorder()
	f.e.ServeHTTP(rec, req)

	return rec
}

func claimsFor(user *entity.User) *service.Claims {
	return &service.Claims{
		UserID:           user.ID,
		Username:         user.Username,
		RegisteredClaims: jwt.RegisteredClaims{Subject: user.Email},
	}
}

func TestAuthMiddleware_PublicPathSkipsGate(t *testing.T) {
	f := newGateFixture(t)

	rec := f.do(http.MethodPost, "/auth/login", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Nil(t, f.seen)
}

func TestAuthMiddleware_EncodedTraversalIsNotPublic(t *testing.T) {
	targets := []string{
		"/tasks/..%2Fauth%2Flogin",
		"/tasks/%2E%2E%2Fauth%2Flogin",
		"/tasks/..%2F..%2Fauth%2Flogin",
	}

	for _, target := range targets {
		t.Run(target, func(t *testing.T) {
			f := newGateFixture(t)

			rec := f.do(http.MethodDelete, target, "")

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "MISSING_TOKEN", decodeError(t, rec).Code)
			assert.Zero(t, f.hits)
		})
	}
}

func TestAuthMiddleware_MissingToken(t *testing.T) {
	headers := []string{"", "Basic abc", "Bearer", "Bearer    ", "Token abc"}

	for _, header := range headers {
		t.Run(header, func(t *testing.T) {
			f := newGateFixture(t)

			rec := f.do(http.MethodGet, "/tasks", header)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, "MISSING_TOKEN", decodeError(t, rec).Code)
		})
	}
}

func TestAuthMiddleware_VerifyFailures(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{name: "expired", err: domainerrors.ErrTokenExpired, wantCode: "TOKEN_EXPIRED"},
		{name: "malformed", err: domainerrors.ErrMalformedToken, wantCode: "MALFORMED_TOKEN"},
		{name: "unsupported", err: domainerrors.ErrUnsupportedToken, wantCode: "UNSUPPORTED_TOKEN"},
		{name: "invalid", err: domainerrors.ErrInvalidToken, wantCode: "INVALID_TOKEN"},
		{name: "unclassified", err: errors.New("boom"), wantCode: "INVALID_TOKEN"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGateFixture(t)
			f.tokenSvc.EXPECT().Verify("tok").Return(nil, tt.err).Once()

			rec := f.do(http.MethodGet, "/tasks", "Bearer tok")

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
			assert.Nil(t, f.seen)
		})
	}
}

func TestAuthMiddleware_UserLookupFailures(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "real@x.com", Username: "real", Active: true}

	tests := []struct {
		name       string
		find       func() (*entity.User, error)
		claims     *service.Claims
		wantStatus int
		wantCode   string
	}{
		{
			name:       "subject no longer exists",
			find:       func() (*entity.User, error) { return nil, repository.ErrUserNotFound },
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_TOKEN",
		},
		{
			name: "store unavailable",
			find: func() (*entity.User, error) {
				return nil, domainerrors.ErrUpstreamUnavailable.WrapMessage("find user")
			},
			wantStatus: http.StatusServiceUnavailable,
			wantCode:   "UPSTREAM_UNAVAILABLE",
		},
		{
			name:       "unexpected store error",
			find:       func() (*entity.User, error) { return nil, errors.New("driver exploded") },
			wantStatus: http.StatusUnauthorized,
			wantCode:   "AUTHENTICATION_FAILED",
		},
		{
			name:       "user id mismatch",
			find:       func() (*entity.User, error) { return user, nil },
			claims:     &service.Claims{UserID: uuid.New(), RegisteredClaims: jwt.RegisteredClaims{Subject: user.Email}},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "INVALID_TOKEN",
		},
		{
			name: "inactive account",
			find: func() (*entity.User, error) {
				inactive := *user
				inactive.Active = false

				return &inactive, nil
			},
			wantStatus: http.StatusUnauthorized,
			wantCode:   "ACCOUNT_DISABLED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGateFixture(t)
			claims := tt.claims
			if claims == nil {
				claims = claimsFor(user)
			}
			f.tokenSvc.EXPECT().Verify("tok").Return(claims, nil).Once()
			f.userRepo.EXPECT().FindByEmail(mock.Anything, user.Email).Return(tt.find()).Once()

			rec := f.do(http.MethodGet, "/tasks", "Bearer tok")

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, decodeError(t, rec).Code)
			assert.Nil(t, f.seen)
		})
	}
}

func TestAuthMiddleware_Success(t *testing.T) {
	user := &entity.User{ID: uuid.New(), Email: "real@x.com", Username: "real", Active: true}
	f := newGateFixture(t)

	claims := claimsFor(user)
	claims.Subject = "  Real@X.com "
	f.tokenSvc.EXPECT().Verify("tok").Return(claims, nil).Once()
	f.userRepo.EXPECT().
		FindByEmail(mock.Anything, "real@x.com").
		RunAndReturn(func(ctx context.Context, _ string) (*entity.User, error) {
			return user, nil
		}).Once()

	rec := f.do(http.MethodGet, "/tasks", "bEaReR tok")

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotNil(t, f.seen)
	assert.Equal(t, user.ID, f.seen.ID)
	assert.Equal(t, user.Email, f.seen.LoginEmail)
	assert.Equal(t, "real", f.seen.DisplayUsername)
	assert.Same(t, f.seen, f.fromCtx)
}

func TestPrincipalFrom_Missing(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	_, ok := PrincipalFrom(c)
	assert.False(t, ok)
}
