package entity

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// TaskStatus is the lifecycle state of a task.
type TaskStatus string

const (
	TaskStatusOpen TaskStatus = "OPEN"
	TaskStatusDone TaskStatus = "DONE"
)

// ParseTaskStatus parses a status case-insensitively. An empty value defaults to OPEN.
func ParseTaskStatus(raw string) (TaskStatus, bool) {
	switch TaskStatus(strings.ToUpper(strings.TrimSpace(raw))) {
	case "", TaskStatusOpen:
		return TaskStatusOpen, true
	case TaskStatusDone:
		return TaskStatusDone, true
	default:
		return "", false
	}
}

// Task is a unit of work owned by exactly one user.
type Task struct {
	ID          int64
	OwnerID     uuid.UUID // Set once at creation from the creating principal; never reassigned.
	Title       string
	Description string
	Status      TaskStatus
	CreatedBy   string
	UpdatedBy   string
	Version     int64 // Optimistic concurrency counter, incremented on every update.
	Archived    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TaskSortField is a column tasks can be ordered by.
type TaskSortField string

const (
	TaskSortByID        TaskSortField = "id"
	TaskSortByCreatedAt TaskSortField = "createdAt"
	TaskSortByUpdatedAt TaskSortField = "updatedAt"
	TaskSortByTitle     TaskSortField = "title"
	TaskSortByStatus    TaskSortField = "status"
)

// TaskQuery selects a page of an owner's tasks.
type TaskQuery struct {
	OwnerID    uuid.UUID
	Page       int
	Size       int
	SortBy     TaskSortField
	Descending bool
}

// TaskPage is one page of tasks plus the totals needed for pagination.
type TaskPage struct {
	Content       []*Task
	Page          int
	Size          int
	TotalElements int64
	TotalPages    int
}

// NewTaskPage computes page totals for the given content.
func NewTaskPage(content []*Task, page, size int, total int64) *TaskPage {
	totalPages := 0
	if size > 0 {
		totalPages = int((total + int64(size) - 1) / int64(size))
	}
	if content == nil {
		content = []*Task{}
	}

	return &TaskPage{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}
}
