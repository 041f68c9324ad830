package entity

import "github.com/google/uuid"

// Principal is the authenticated identity of the current request.
// It never carries the password hash.
type Principal struct {
	ID              uuid.UUID
	LoginEmail      string
	DisplayUsername string
	Active          bool
	Verified        bool
}

// Owns reports whether the principal is the owner identified by ownerID.
func (p *Principal) Owns(ownerID uuid.UUID) bool {
	return p != nil && p.ID == ownerID
}
