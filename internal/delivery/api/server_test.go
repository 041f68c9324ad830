package api

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"taskapi/config"
	"taskapi/internal/delivery/api/middleware"
	"taskapi/internal/delivery/api/router"
	"taskapi/internal/delivery/api/router/handler"
	deliverycontext "taskapi/internal/delivery/context"
	mockRepo "taskapi/internal/mocks/repository"
	mockSvc "taskapi/internal/mocks/service"
	mockUC "taskapi/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newTestConfig() *config.Config {
	cfg := &config.Config{Auth: &config.AuthConfig{PublicPaths: config.DefaultPublicPaths}}
	cfg.HTTP.MaxRequestBodySize = "1KB"

	return cfg
}

func newRouterParams(t *testing.T, cfg *config.Config, logger *slog.Logger) router.RouterParams {
	t.Helper()

	return router.RouterParams{
		AuthHandler: handler.NewAuthHandler(handler.AuthHandlerParams{
			UserUC: mockUC.NewMockUserUsecase(t),
			Logger: logger,
		}),
		TaskHandler: handler.NewTaskHandler(handler.TaskHandlerParams{
			TaskUC: mockUC.NewMockTaskUsecase(t),
			Logger: logger,
		}),
		AuthMiddleware: middleware.NewAuthMiddleware(middleware.AuthMiddlewareParams{
			TokenService: mockSvc.NewMockTokenService(t),
			UserRepo:     mockRepo.NewMockUserRepository(t),
			Config:       cfg,
			Logger:       logger,
		}),
	}
}

func serve(e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	return rec
}

func TestNewEcho_Routes(t *testing.T) {
	cfg := newTestConfig()
	logger := slog.New(slog.DiscardHandler)
	e := NewEcho(cfg, logger, newRouterParams(t, cfg, logger))

	tests := []struct {
		name       string
		method     string
		target     string
		body       string
		wantStatus int
		wantBody   string
	}{
		{name: "health is public", method: http.MethodGet, target: "/health", wantStatus: http.StatusOK, wantBody: `"status":"ok"`},
		{name: "tasks need a token", method: http.MethodGet, target: "/tasks", wantStatus: http.StatusUnauthorized, wantBody: "MISSING_TOKEN"},
		{name: "task update needs a token", method: http.MethodPut, target: "/tasks/1", wantStatus: http.StatusUnauthorized, wantBody: "MISSING_TOKEN"},
		{name: "unknown protected path", method: http.MethodGet, target: "/admin", wantStatus: http.StatusUnauthorized, wantBody: "MISSING_TOKEN"},
		{name: "login is public", method: http.MethodPost, target: "/auth/login", body: `{}`, wantStatus: http.StatusBadRequest, wantBody: "VALIDATION_FAILED"},
		{
			name:       "body limit",
			method:     http.MethodPost,
			target:     "/auth/register",
			body:       `{"name":"` + strings.Repeat("a", 2048) + `"}`,
			wantStatus: http.StatusRequestEntityTooLarge,
			wantBody:   "HTTP_ERROR",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(e, tt.method, tt.target, tt.body)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.NotEmpty(t, rec.Header().Get(deliverycontext.HeaderXRequestID))
		})
	}
}

func TestNewServer(t *testing.T) {
	cfg := newTestConfig()
	logger := slog.New(slog.DiscardHandler)
	lc := fxtest.NewLifecycle(t)

	srv, err := NewServer(ServerParams{
		Lc:           lc,
		Cfg:          cfg,
		Logger:       logger,
		RouterParams: newRouterParams(t, cfg, logger),
	})
	require.NoError(t, err)
	require.NotNil(t, srv)

	lc.RequireStart()
	lc.RequireStop()
}
