package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"taskapi/config"
	deliverycontext "taskapi/internal/delivery/context"
	"taskapi/internal/domain/entity"
	domainerrors "taskapi/internal/domain/errors"
	"taskapi/internal/domain/repository"
	"taskapi/internal/domain/service"
	"taskapi/internal/errors"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

const (
	headerAuthorization = "Authorization"
	bearerPrefix        = "bearer "
)

// AuthMiddlewareParams holds dependencies for AuthMiddleware, injected by Fx.
type AuthMiddlewareParams struct {
	fx.In

	TokenService service.TokenService
	UserRepo     repository.UserRepository
	Config       *config.Config
	Logger       *slog.Logger
}

// AuthMiddleware authenticates every request that does not target a public path.
type AuthMiddleware struct {
	tokenSvc    service.TokenService
	userRepo    repository.UserRepository
	publicPaths *PathMatcher
	logger      *slog.Logger
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(params AuthMiddlewareParams) *AuthMiddleware {
	publicPaths := config.DefaultPublicPaths
	if params.Config.Auth != nil && len(params.Config.Auth.PublicPaths) > 0 {
		publicPaths = params.Config.Auth.PublicPaths
	}

	return &AuthMiddleware{
		tokenSvc:    params.TokenService,
		userRepo:    params.UserRepo,
		publicPaths: NewPathMatcher(publicPaths),
		logger:      params.Logger,
	}
}

// Authenticate resolves the bearer token into a principal and stores it on the request.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.publicPaths.Match(c.Request().URL.Path) {
			return next(c)
		}

		principal, err := m.authenticate(c)
		if err != nil {
			logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)
			logger.Log(c.Request().Context(), domainerrors.LogLevel(err), "Authentication rejected",
				slog.String("path", c.Request().URL.Path),
				slog.Any("error", err),
			)

			return err
		}

		c.Set(string(deliverycontext.KeyPrincipal), principal)
		c.SetRequest(c.Request().WithContext(
			deliverycontext.WithPrincipal(c.Request().Context(), principal),
		))

		return next(c)
	}
}

func (m *AuthMiddleware) authenticate(c echo.Context) (*entity.Principal, error) {
	token, ok := bearerToken(c.Request().Header.Get(headerAuthorization))
	if !ok {
		return nil, domainerrors.ErrMissingToken
	}

	claims, err := m.tokenSvc.Verify(token)
	if err != nil {
		if _, ok := errors.AsType[domainerrors.AppError](err); ok {
			return nil, err
		}

		return nil, domainerrors.ErrInvalidToken.WrapMessage(err.Error())
	}

	user, err := m.userRepo.FindByEmail(c.Request().Context(), entity.NormalizeEmail(claims.Subject))
	switch {
	case errors.Is(err, repository.ErrUserNotFound):
		return nil, domainerrors.ErrInvalidToken.WrapMessage("token subject no longer exists")
	case errors.Is(err, domainerrors.ErrUpstreamUnavailable):
		return nil, err
	case err != nil:
		return nil, errors.Wrap(domainerrors.ErrAuthenticationFailed, err.Error())
	}

	if user.ID != claims.UserID {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("token user id does not match subject")
	}

	if !user.Active {
		return nil, domainerrors.ErrAccountDisabled.WithHTTPCode(http.StatusUnauthorized)
	}

	return user.Principal(), nil
}

// bearerToken extracts the token from an Authorization header; the scheme is case-insensitive.
func bearerToken(header string) (string, bool) {
	header = strings.TrimSpace(header)
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}

	token := strings.TrimSpace(header[len(bearerPrefix):])

	return token, token != ""
}

// PrincipalFrom returns the principal stored by Authenticate.
func PrincipalFrom(c echo.Context) (*entity.Principal, bool) {
	if principal, ok := c.Get(string(deliverycontext.KeyPrincipal)).(*entity.Principal); ok && principal != nil {
		return principal, true
	}

	return deliverycontext.GetPrincipal(c.Request().Context())
}
