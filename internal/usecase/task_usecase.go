package usecase

import (
	"context"

	"taskapi/internal/domain/entity"
)

// CreateTaskInput defines the data for a new task.
type CreateTaskInput struct {
	Title       string `json:"title" validate:"required,min=3,max=100,tasktitle,nohtml"`
	Description string `json:"description" validate:"max=500,freetext,nohtml"`
	Status      string `json:"status"`
}

// UpdateTaskInput carries the fields to change; nil fields are left untouched.
// A non-nil Version must equal the stored version.
type UpdateTaskInput struct {
	Title       *string `json:"title" validate:"omitempty,min=3,max=100,tasktitle,nohtml"`
	Description *string `json:"description" validate:"omitempty,max=500,freetext,nohtml"`
	Status      *string `json:"status"`
	Version     *int64  `json:"version" validate:"omitempty,gte=0"`
}

// ListTasksInput selects a page of the caller's tasks. Zero values pick the defaults.
type ListTasksInput struct {
	Page    *int   `json:"page" validate:"omitempty,gte=0"`
	Size    *int   `json:"size" validate:"omitempty,gte=1"`
	SortBy  string `json:"sortBy" validate:"omitempty,oneof=id createdAt updatedAt title status"`
	SortDir string `json:"sortDir" validate:"omitempty,oneof=asc desc ASC DESC"`
}

// TaskUsecase defines the task operations. Every call acts on behalf of the principal.
type TaskUsecase interface {
	Create(ctx context.Context, principal *entity.Principal, input *CreateTaskInput) (*entity.Task, error)
	List(ctx context.Context, principal *entity.Principal, input *ListTasksInput) (*entity.TaskPage, error)
	Update(ctx context.Context, principal *entity.Principal, id int64, input *UpdateTaskInput) (*entity.Task, error)
	Delete(ctx context.Context, principal *entity.Principal, id int64) error
}
