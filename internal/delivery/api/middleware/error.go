package middleware

import (
	"log/slog"
	"net/http"

	"taskapi/config"
	"taskapi/internal/delivery/api/response"
	deliverycontext "taskapi/internal/delivery/context"
	domainerrors "taskapi/internal/domain/errors"
	"taskapi/internal/errors"

	"github.com/labstack/echo/v4"
)

const (
	genericMessage  = "An error occurred"
	internalMessage = "Internal server error, please try again later"
)

// ErrorMiddleware handles errors in the HTTP pipeline
type ErrorMiddleware struct {
	logger      *slog.Logger
	hideDetails bool
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger, cfg *config.Config) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger:      logger,
		hideDetails: cfg.HTTP.HideErrorDetails,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.Error("Request failed",
				slog.String("code", appErr.ErrorCode()),
				slog.Any("error", err),
				slog.String("path", c.Request().URL.Path),
				slog.String("method", c.Request().Method),
			)
		}

		if m.hideDetails {
			_ = response.Error(c, appErr.HTTPCode(), appErr.ErrorCode(), genericMessage, nil)

			return
		}

		_ = response.AppError(c, appErr, appErr.Message())

		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := genericMessage
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}

		if m.hideDetails {
			message = genericMessage
		}

		_ = response.Error(c, httpErr.Code, "HTTP_ERROR", message, nil)

		return
	}

	// Default to internal error, log the error but return a generic message (do not expose internal details)
	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	_ = response.InternalServerError(c, domainerrors.ErrInternalError.ErrorCode(), internalMessage)
}
