package impl

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"taskapi/config"
	deliverycontext "taskapi/internal/delivery/context"
	"taskapi/internal/domain/entity"
	domainerrors "taskapi/internal/domain/errors"
	"taskapi/internal/domain/repository"
	"taskapi/internal/errors"
	"taskapi/internal/usecase"

	"go.uber.org/fx"
)

const (
	fallbackPageSize    = 10
	fallbackMaxPageSize = 100
	sortDirAsc          = "asc"
)

// taskService implements the TaskUsecase interface.
type taskService struct {
	taskRepo        repository.TaskRepository
	defaultPageSize int
	maxPageSize     int
	logger          *slog.Logger
}

// TaskServiceParams holds dependencies for TaskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TaskRepo repository.TaskRepository
	Config   *config.Config
	Logger   *slog.Logger
}

// NewTaskService is the constructor for taskService.
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	defaultSize, maxSize := fallbackPageSize, fallbackMaxPageSize
	if params.Config != nil && params.Config.Tasks != nil {
		if params.Config.Tasks.MaxPageSize > 0 {
			maxSize = params.Config.Tasks.MaxPageSize
		}
		if params.Config.Tasks.DefaultPageSize > 0 {
			defaultSize = min(params.Config.Tasks.DefaultPageSize, maxSize)
		}
	}

	return &taskService{
		taskRepo:        params.TaskRepo,
		defaultPageSize: defaultSize,
		maxPageSize:     maxSize,
		logger:          params.Logger,
	}
}

func (srv *taskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *taskService) Create(ctx context.Context, principal *entity.Principal, input *usecase.CreateTaskInput) (*entity.Task, error) {
	if principal == nil {
		return nil, domainerrors.ErrAuthenticationFailed.WrapMessage("create task")
	}

	normalized := &usecase.CreateTaskInput{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Status:      input.Status,
	}
	if err := validateInput(normalized); err != nil {
		return nil, err
	}
	status, err := parseStatus(normalized.Status)
	if err != nil {
		return nil, err
	}

	task := &entity.Task{
		OwnerID:     principal.ID,
		Title:       normalized.Title,
		Description: normalized.Description,
		Status:      status,
		CreatedBy:   principal.DisplayUsername,
		UpdatedBy:   principal.DisplayUsername,
	}
	if err := srv.taskRepo.Create(ctx, task); err != nil {
		return nil, errors.Wrap(err, "failed to create task")
	}

	srv.log(ctx).Debug("Task created", slog.Int64("taskID", task.ID), slog.String("ownerID", principal.ID.String()))

	return task, nil
}

func (srv *taskService) List(ctx context.Context, principal *entity.Principal, input *usecase.ListTasksInput) (*entity.TaskPage, error) {
	if principal == nil {
		return nil, domainerrors.ErrAuthenticationFailed.WrapMessage("list tasks")
	}
	if input == nil {
		input = &usecase.ListTasksInput{}
	}
	if err := validateInput(input); err != nil {
		return nil, err
	}

	query := entity.TaskQuery{
		OwnerID:    principal.ID,
		Size:       srv.defaultPageSize,
		SortBy:     entity.TaskSortByCreatedAt,
		Descending: !strings.EqualFold(input.SortDir, sortDirAsc),
	}
	if input.Page != nil {
		query.Page = *input.Page
	}
	if input.Size != nil {
		if *input.Size > srv.maxPageSize {
			return nil, domainerrors.NewValidationError(map[string]string{
				"size": "must be less than or equal to " + strconv.Itoa(srv.maxPageSize),
			})
		}
		query.Size = *input.Size
	}
	if input.SortBy != "" {
		query.SortBy = entity.TaskSortField(input.SortBy)
	}

	tasks, total, err := srv.taskRepo.FindByOwner(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}

	return entity.NewTaskPage(tasks, query.Page, query.Size, total), nil
}

func (srv *taskService) Update(ctx context.Context, principal *entity.Principal, id int64, input *usecase.UpdateTaskInput) (*entity.Task, error) {
	if principal == nil {
		return nil, domainerrors.ErrAuthenticationFailed.WrapMessage("update task")
	}

	normalized := &usecase.UpdateTaskInput{
		Title:       trimmed(input.Title),
		Description: trimmed(input.Description),
		Status:      input.Status,
		Version:     input.Version,
	}
	if err := validateInput(normalized); err != nil {
		return nil, err
	}

	task, err := srv.loadOwned(ctx, principal, id)
	if err != nil {
		return nil, err
	}
	if normalized.Version != nil && *normalized.Version != task.Version {
		return nil, domainerrors.ErrTaskConflict.WrapMessage("stale task version")
	}

	if normalized.Title != nil {
		task.Title = *normalized.Title
	}
	if normalized.Description != nil {
		task.Description = *normalized.Description
	}
	if normalized.Status != nil {
		if strings.TrimSpace(*normalized.Status) == "" {
			return nil, domainerrors.NewValidationError(map[string]string{"status": "must not be empty"})
		}
		status, err := parseStatus(*normalized.Status)
		if err != nil {
			return nil, err
		}
		task.Status = status
	}
	task.UpdatedBy = principal.DisplayUsername

	if err := srv.taskRepo.Update(ctx, task); err != nil {
		if errors.Is(err, repository.ErrTaskVersionConflict) {
			srv.log(ctx).Info("Task update lost a version race", slog.Int64("taskID", id))

			return nil, domainerrors.ErrTaskConflict.WrapMessage("task modified concurrently")
		}

		return nil, errors.Wrap(err, "failed to update task")
	}

	return task, nil
}

func (srv *taskService) Delete(ctx context.Context, principal *entity.Principal, id int64) error {
	if principal == nil {
		return domainerrors.ErrAuthenticationFailed.WrapMessage("delete task")
	}

	if _, err := srv.loadOwned(ctx, principal, id); err != nil {
		return err
	}

	if err := srv.taskRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return domainerrors.ErrTaskNotFound.WrapMessage("delete task")
		}

		return errors.Wrap(err, "failed to delete task")
	}

	srv.log(ctx).Debug("Task deleted", slog.Int64("taskID", id))

	return nil
}

// loadOwned fetches the task, then checks ownership. A missing task is a 404 for every caller.
func (srv *taskService) loadOwned(ctx context.Context, principal *entity.Principal, id int64) (*entity.Task, error) {
	task, err := srv.taskRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTaskNotFound) {
			return nil, domainerrors.ErrTaskNotFound.WrapMessage("load task")
		}

		return nil, errors.Wrap(err, "failed to load task")
	}

	if err := usecase.RequireOwner(principal, task.OwnerID); err != nil {
		srv.log(ctx).Warn("Task access denied",
			slog.Int64("taskID", id),
			slog.String("principalID", principal.ID.String()),
		)

		return nil, err
	}

	return task, nil
}

func parseStatus(raw string) (entity.TaskStatus, error) {
	status, ok := entity.ParseTaskStatus(raw)
	if !ok {
		return "", domainerrors.NewValidationError(map[string]string{
			"status": "must be one of: OPEN DONE",
		})
	}

	return status, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)

	return &v
}
