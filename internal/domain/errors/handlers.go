package errors

import (
	"log/slog"

	"taskapi/internal/errors"
)

// LogLevel picks the severity an error should be logged with at the boundary.
// Expired tokens are routine; malformed or unsupported ones suggest tampering.
func LogLevel(err error) slog.Level {
	switch {
	case err == nil:
		return slog.LevelDebug
	case errors.Is(err, ErrTokenExpired):
		return slog.LevelDebug
	case errors.Is(err, ErrMalformedToken), errors.Is(err, ErrUnsupportedToken):
		return slog.LevelError
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrMissingToken), errors.Is(err, ErrAccountDisabled):
		return slog.LevelWarn
	}

	if appErr, ok := errors.AsType[AppError](err); ok && appErr.HTTPCode() < 500 {
		return slog.LevelInfo
	}

	return slog.LevelError
}
