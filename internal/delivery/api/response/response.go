// Package response renders the JSON envelopes returned by the API.
package response

import (
	"net/http"

	deliverycontext "taskapi/internal/delivery/context"
	domainerrors "taskapi/internal/domain/errors"
	"taskapi/internal/errors"

	"github.com/labstack/echo/v4"
)

// SuccessResponse defines the structure for successful responses
type SuccessResponse struct {
	Data any       `json:"data"`
	Meta *MetaInfo `json:"meta"`
}

// ErrorResponse defines the structure for error responses
type ErrorResponse struct {
	Error *ErrorInfo `json:"error"`
	Meta  *MetaInfo  `json:"meta"`
}

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Machine-readable error code, e.g., "VALIDATION_FAILED"
	Message string `json:"message"`           // User-friendly error message
	Details any    `json:"details,omitempty"` // Additional error context (only for 4xx errors)
}

// MetaInfo represents response metadata
type MetaInfo struct {
	RequestID string `json:"request_id"` // Request tracking ID
}

// Success returns a successful response
func Success(c echo.Context, statusCode int, data any) error {
	return c.JSON(statusCode, SuccessResponse{
		Data: data,
		Meta: &MetaInfo{
			RequestID: deliverycontext.GetRequestID(c),
		},
	})
}

// Error returns an error response
func Error(c echo.Context, statusCode int, errorCode string, message string, details any) error {
	// Details should not be included for 5xx errors or authentication/authorization errors
	if statusCode >= 500 || statusCode == http.StatusUnauthorized || statusCode == http.StatusForbidden {
		details = nil
	}

	return c.JSON(statusCode, ErrorResponse{
		Error: &ErrorInfo{
			Code:    errorCode,
			Message: message,
			Details: details,
		},
		Meta: &MetaInfo{
			RequestID: deliverycontext.GetRequestID(c),
		},
	})
}

// AppError renders a domain error with the given client message.
// Field level messages take precedence over the free-form details string.
func AppError(c echo.Context, appErr domainerrors.AppError, message string) error {
	return Error(c, appErr.HTTPCode(), appErr.ErrorCode(), message, Details(appErr))
}

// Details extracts the client-facing details of an error, or nil.
func Details(err error) any {
	var fieldErrs domainerrors.FieldErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs.FieldErrors()) > 0 {
		return fieldErrs.FieldErrors()
	}

	if appErr, ok := errors.AsType[domainerrors.AppError](err); ok && appErr.Details() != "" {
		return appErr.Details()
	}

	return nil
}

// InternalServerError returns a 500 error
func InternalServerError(c echo.Context, errorCode string, message string) error {
	return Error(c, http.StatusInternalServerError, errorCode, message, nil)
}
