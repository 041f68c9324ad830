package entity

import (
	"time"

	"github.com/google/uuid"
)

// Credential holds the stored password hash of a user. There is exactly one per user.
type Credential struct {
	UserID       uuid.UUID
	PasswordHash string // bcrypt output; never logged or serialized to clients.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CredentialRecord is the result of a credential lookup by email: the user joined with its hash.
type CredentialRecord struct {
	User         *User
	PasswordHash string
}
