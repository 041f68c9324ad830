package context

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskapi/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())

	assert.Empty(t, GetRequestID(c))

	c.SetRequest(req.WithContext(WithRequestScope(req.Context(), "from-ctx", slog.New(slog.DiscardHandler))))
	assert.Equal(t, "from-ctx", GetRequestID(c))

	SetRequestID(c, "req-1")
	assert.Equal(t, "req-1", GetRequestID(c))
}

func TestLogger(t *testing.T) {
	fallback := slog.Default()
	assert.Same(t, fallback, GetLoggerOrDefault(context.Background(), fallback))

	scoped := slog.New(slog.DiscardHandler)
	assert.Same(t, scoped, GetLoggerOrDefault(WithLogger(context.Background(), scoped), fallback))
	assert.Same(t, scoped, GetLoggerOrDefault(WithRequestScope(context.Background(), "id", scoped), fallback))
	assert.Same(t, fallback, GetLoggerOrDefault(WithLogger(context.Background(), nil), fallback))
}

func TestPrincipal(t *testing.T) {
	_, ok := GetPrincipal(context.Background())
	assert.False(t, ok)

	_, ok = GetPrincipal(WithPrincipal(context.Background(), nil))
	assert.False(t, ok)

	principal := &entity.Principal{ID: uuid.New(), LoginEmail: "a@b.c"}
	got, ok := GetPrincipal(WithPrincipal(context.Background(), principal))
	require.True(t, ok)
	assert.Same(t, principal, got)
}
