// Package validator adapts the shared struct validator to echo.
package validator

import (
	domainerrors "taskapi/internal/domain/errors"
	"taskapi/internal/errors"
	"taskapi/internal/validation"

	playground "github.com/go-playground/validator/v10"
)

// RequestValidator implements echo.Validator.
type RequestValidator struct {
	validate *playground.Validate
}

// New returns a validator backed by the process-wide rule set.
func New() *RequestValidator {
	return &RequestValidator{validate: validation.Validator()}
}

// Validate reports field failures as a VALIDATION_FAILED error.
func (v *RequestValidator) Validate(i any) error {
	err := v.validate.Struct(i)
	if err == nil {
		return nil
	}

	if fields := validation.FieldErrors(err); fields != nil {
		return domainerrors.NewValidationError(fields)
	}

	return errors.Wrap(err, "validate request")
}
