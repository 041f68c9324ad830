package repository

import (
	"context"

	"taskapi/internal/domain/entity"

	"github.com/google/uuid"
)

// CredentialRepository stores password hashes, one record per user.
type CredentialRepository interface {
	// Create stores the credential of a freshly registered user.
	Create(ctx context.Context, credential *entity.Credential) error

	// FindByEmail returns the user with its stored hash, or ErrUserNotFound.
	FindByEmail(ctx context.Context, email string) (*entity.CredentialRecord, error)

	// UpdatePasswordHash replaces the stored hash of an existing user.
	UpdatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error
}
