package model

import (
	"time"

	"github.com/google/uuid"
)

// TaskModel mirrors the 'tasks' table.
type TaskModel struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index:idx_tasks_user_created"`
	Title       string    `gorm:"type:varchar(100);not null"`
	Description string    `gorm:"type:varchar(500);not null"`
	Status      string    `gorm:"type:varchar(20);not null"`
	CreatedBy   string    `gorm:"type:varchar(100)"`
	UpdatedBy   string    `gorm:"type:varchar(100)"`
	Version     int64     `gorm:"not null"`
	IsArchived  bool      `gorm:"not null"`
	CreatedAt   time.Time `gorm:"index:idx_tasks_user_created"`
	UpdatedAt   time.Time
}

// TableName explicitly sets the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}
