// Package handler contains the HTTP handlers of the API.
package handler

import (
	"net/http"
	"strconv"

	"taskapi/internal/delivery/api/middleware"
	"taskapi/internal/delivery/api/response"
	"taskapi/internal/domain/entity"
	domainerrors "taskapi/internal/domain/errors"

	"github.com/labstack/echo/v4"
)

// HealthCheck reports that the process is serving.
func HealthCheck(c echo.Context) error {
	return response.Success(c, http.StatusOK, map[string]string{"status": "ok"})
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domainerrors.ErrValidationFailed.WithDetails("malformed request")
	}

	return c.Validate(req)
}

func principal(c echo.Context) (*entity.Principal, error) {
	p, ok := middleware.PrincipalFrom(c)
	if !ok {
		return nil, domainerrors.ErrMissingToken
	}

	return p, nil
}

func taskID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, domainerrors.NewValidationError(map[string]string{"id": "must be a positive integer"})
	}

	return id, nil
}
