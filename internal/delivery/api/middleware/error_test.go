package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"taskapi/config"
	domainerrors "taskapi/internal/domain/errors"
	"taskapi/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestErrorMiddleware_HandleHTTPError(t *testing.T) {
	tests := []struct {
		name        string
		hide        bool
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantDetails any
	}{
		{
			name:        "domain error",
			err:         domainerrors.ErrTaskNotFound,
			wantStatus:  http.StatusNotFound,
			wantCode:    "TASK_NOT_FOUND",
			wantMessage: "Task not found",
		},
		{
			name:        "wrapped domain error",
			err:         errors.Wrap(domainerrors.ErrTaskConflict, "update task"),
			wantStatus:  http.StatusConflict,
			wantCode:    "TASK_CONFLICT",
			wantMessage: domainerrors.ErrTaskConflict.Message(),
		},
		{
			name:        "validation error keeps field details",
			err:         domainerrors.NewValidationError(map[string]string{"title": "is required"}),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "VALIDATION_FAILED",
			wantMessage: "Input validation failed",
			wantDetails: map[string]any{"title": "is required"},
		},
		{
			name:        "details dropped for 401",
			err:         domainerrors.ErrInvalidToken.WithDetails("signature mismatch"),
			wantStatus:  http.StatusUnauthorized,
			wantCode:    "INVALID_TOKEN",
			wantMessage: "Authentication token is invalid",
		},
		{
			name:        "hidden message keeps code",
			hide:        true,
			err:         domainerrors.NewWeakPasswordError("password too short"),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "WEAK_PASSWORD",
			wantMessage: genericMessage,
		},
		{
			name:        "echo error",
			err:         echo.NewHTTPError(http.StatusMethodNotAllowed, "Method Not Allowed"),
			wantStatus:  http.StatusMethodNotAllowed,
			wantCode:    "HTTP_ERROR",
			wantMessage: "Method Not Allowed",
		},
		{
			name:        "unknown error",
			err:         errors.New("secret driver detail"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: internalMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{}
			cfg.HTTP.HideErrorDetails = tt.hide
			e := newTestEcho(cfg)
			e.GET("/boom", func(c echo.Context) error { return tt.err })

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/boom", nil))

			assert.Equal(t, tt.wantStatus, rec.Code)
			info := decodeError(t, rec)
			assert.Equal(t, tt.wantCode, info.Code)
			assert.Equal(t, tt.wantMessage, info.Message)
			assert.Equal(t, tt.wantDetails, info.Details)
			assert.NotContains(t, rec.Body.String(), "secret driver detail")
		})
	}
}

func TestErrorMiddleware_RouteNotFound(t *testing.T) {
	e := newTestEcho(&config.Config{})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "HTTP_ERROR", decodeError(t, rec).Code)
}
