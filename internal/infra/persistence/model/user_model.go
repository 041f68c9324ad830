package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. PostgreSQL generates UUIDs via gen_random_uuid().
type UserModel struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Email       string    `gorm:"type:varchar(255);not null"`
	Username    string    `gorm:"type:varchar(50);not null"`
	Name        string    `gorm:"type:varchar(100);not null"`
	PhoneNumber string    `gorm:"type:varchar(20)"`
	Address     string    `gorm:"type:varchar(255)"`
	IsActive    bool      `gorm:"not null"`
	IsVerified  bool      `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Credential *CredentialModel `gorm:"foreignKey:UserID"`
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
