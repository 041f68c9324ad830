package repository

import (
	"context"
	"errors"

	"taskapi/internal/domain/entity"
)

var (
	// ErrTaskNotFound is returned when no task has the requested id.
	ErrTaskNotFound = errors.New("task not found")
	// ErrTaskVersionConflict is returned when an update targets a stale version.
	ErrTaskVersionConflict = errors.New("task version conflict")
)

// TaskRepository persists tasks.
type TaskRepository interface {
	// Create stores a new task and fills in its id, version and timestamps.
	Create(ctx context.Context, task *entity.Task) error

	// FindByID loads a non-archived task.
	FindByID(ctx context.Context, id int64) (*entity.Task, error)

	// FindByOwner returns one page of the owner's tasks and the total count.
	FindByOwner(ctx context.Context, query entity.TaskQuery) ([]*entity.Task, int64, error)

	// Update writes the mutable fields if the stored version still equals task.Version,
	// then bumps task.Version. A stale version yields ErrTaskVersionConflict.
	Update(ctx context.Context, task *entity.Task) error

	// Delete removes the task.
	Delete(ctx context.Context, id int64) error
}
