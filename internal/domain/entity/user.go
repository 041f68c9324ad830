// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 50
	usernamePadding   = "123"
)

var usernameDisallowedChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

// User is the account owning tasks. The email is the login identifier and natural key.
type User struct {
	ID          uuid.UUID // Primary key, generated by the database.
	Email       string    // Normalized login email (trimmed and lowercased).
	Username    string    // Display username derived from the email at registration.
	Name        string    // Full name supplied at registration.
	PhoneNumber string    // Optional E.164-like phone number.
	Address     string    // Optional free-form postal address.
	Active      bool      // Inactive accounts can neither log in nor use issued tokens.
	Verified    bool      // Informational only.
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Principal builds the authenticated identity view of the user.
func (u *User) Principal() *Principal {
	return &Principal{
		ID:              u.ID,
		LoginEmail:      u.Email,
		DisplayUsername: u.Username,
		Active:          u.Active,
		Verified:        u.Verified,
	}
}

// NormalizeEmail trims surrounding whitespace and lowercases the address.
// Every credential store lookup and write goes through it.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// UsernameFromEmail derives a username from the local part of an email address.
func UsernameFromEmail(email string) string {
	localPart := email
	if at := strings.Index(email, "@"); at >= 0 {
		localPart = email[:at]
	}

	username := usernameDisallowedChars.ReplaceAllString(localPart, "")
	if len(username) < minUsernameLength {
		username += usernamePadding
	}
	if len(username) > maxUsernameLength {
		username = username[:maxUsernameLength]
	}

	return strings.ToLower(username)
}
