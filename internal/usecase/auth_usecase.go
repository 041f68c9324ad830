// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"taskapi/internal/domain/entity"
	domainerrors "taskapi/internal/domain/errors"

	"github.com/google/uuid"
)

// Authenticator validates an email and password pair against the credential store.
type Authenticator interface {
	// Authenticate returns the principal of an active account whose stored hash matches the password.
	Authenticate(ctx context.Context, email, password string) (*entity.Principal, error)
}

// RequireOwner allows the action only when the principal owns the resource.
func RequireOwner(principal *entity.Principal, ownerID uuid.UUID) error {
	if principal == nil {
		return domainerrors.ErrAuthenticationFailed.WrapMessage("no authenticated principal")
	}
	if !principal.Owns(ownerID) {
		return domainerrors.ErrAccessDenied.WrapMessage("resource belongs to another user")
	}

	return nil
}
