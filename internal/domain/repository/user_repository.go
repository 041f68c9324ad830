// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"
	"errors"

	"taskapi/internal/domain/entity"

	"github.com/google/uuid"
)

// ErrUserNotFound is returned when no user matches the lookup.
var ErrUserNotFound = errors.New("user not found")

// UserRepository is the user half of the credential store.
// Emails passed in must already be normalized with entity.NormalizeEmail.
type UserRepository interface {
	// ExistsByEmail reports whether an account is registered for the email.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// FindByEmail retrieves a user by login email.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID retrieves a user by id.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)

	// Create persists a new user and fills in the generated id and timestamps.
	Create(ctx context.Context, user *entity.User) error
}
