package handler

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"taskapi/internal/delivery/api/response"
	deliverycontext "taskapi/internal/delivery/context"
	"taskapi/internal/domain/entity"
	domainerrors "taskapi/internal/domain/errors"
	"taskapi/internal/usecase"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

// TaskHandlerParams holds dependencies for TaskHandler, injected by Fx.
type TaskHandlerParams struct {
	fx.In

	TaskUC usecase.TaskUsecase
	Logger *slog.Logger
}

// TaskHandler serves the task endpoints. Every route requires a principal.
type TaskHandler struct {
	taskUC usecase.TaskUsecase
	logger *slog.Logger
}

// NewTaskHandler is the constructor for TaskHandler
func NewTaskHandler(params TaskHandlerParams) *TaskHandler {
	return &TaskHandler{
		taskUC: params.TaskUC,
		logger: params.Logger,
	}
}

// CreateTaskRequest represents the request body for creating a task
type CreateTaskRequest struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

// UpdateTaskRequest represents the request body for updating a task. Omitted fields are kept.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Version     *int64  `json:"version"`
}

// TaskResponse is the public view of a task.
type TaskResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      string    `json:"status"`
	CreatedBy   string    `json:"createdBy"`
	UpdatedBy   string    `json:"updatedBy"`
	Version     int64     `json:"version"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// TaskPageResponse is one page of tasks.
type TaskPageResponse struct {
	Content       []*TaskResponse `json:"content"`
	Page          int             `json:"page"`
	Size          int             `json:"size"`
	TotalElements int64           `json:"totalElements"`
	TotalPages    int             `json:"totalPages"`
}

// CreateTask handles POST /tasks
func (h *TaskHandler) CreateTask(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	var req CreateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskUC.Create(c.Request().Context(), p, &usecase.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		return err
	}

	deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
		Info("Task created", slog.Int64("task_id", task.ID))

	return response.Success(c, http.StatusCreated, toTaskResponse(task))
}

// ListTasks handles GET /tasks?page=&size=&sortBy=&sortDir=
func (h *TaskHandler) ListTasks(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	input := &usecase.ListTasksInput{
		SortBy:  c.QueryParam("sortBy"),
		SortDir: c.QueryParam("sortDir"),
	}

	fields := map[string]string{}
	if input.Page, err = queryInt(c, "page"); err != nil {
		fields["page"] = "must be an integer"
	}
	if input.Size, err = queryInt(c, "size"); err != nil {
		fields["size"] = "must be an integer"
	}
	if len(fields) > 0 {
		return domainerrors.NewValidationError(fields)
	}

	page, err := h.taskUC.List(c.Request().Context(), p, input)
	if err != nil {
		return err
	}

	content := make([]*TaskResponse, 0, len(page.Content))
	for _, task := range page.Content {
		content = append(content, toTaskResponse(task))
	}

	return response.Success(c, http.StatusOK, &TaskPageResponse{
		Content:       content,
		Page:          page.Page,
		Size:          page.Size,
		TotalElements: page.TotalElements,
		TotalPages:    page.TotalPages,
	})
}

// UpdateTask handles PUT /tasks/:id
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	id, err := taskID(c)
	if err != nil {
		return err
	}

	var req UpdateTaskRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	task, err := h.taskUC.Update(c.Request().Context(), p, id, &usecase.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Version:     req.Version,
	})
	if err != nil {
		return err
	}

	return response.Success(c, http.StatusOK, toTaskResponse(task))
}

// DeleteTask handles DELETE /tasks/:id
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	p, err := principal(c)
	if err != nil {
		return err
	}

	id, err := taskID(c)
	if err != nil {
		return err
	}

	if err := h.taskUC.Delete(c.Request().Context(), p, id); err != nil {
		return err
	}

	deliverycontext.GetLoggerOrDefault(c.Request().Context(), h.logger).
		Info("Task deleted", slog.Int64("task_id", id))

	return response.Success(c, http.StatusOK, nil)
}

func queryInt(c echo.Context, name string) (*int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, err
	}

	return &value, nil
}

func toTaskResponse(task *entity.Task) *TaskResponse {
	return &TaskResponse{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedBy:   task.CreatedBy,
		UpdatedBy:   task.UpdatedBy,
		Version:     task.Version,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
