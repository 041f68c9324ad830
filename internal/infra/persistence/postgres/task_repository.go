package postgres

import (
	"context"
	"time"

	"taskapi/config"
	"taskapi/internal/domain/entity"
	domainerrors "taskapi/internal/domain/errors"
	"taskapi/internal/domain/repository"
	"taskapi/internal/errors"
	"taskapi/internal/infra/persistence/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// taskSortColumns maps the sortable fields onto their columns.
var taskSortColumns = map[entity.TaskSortField]string{
	entity.TaskSortByID:        "id",
	entity.TaskSortByCreatedAt: "created_at",
	entity.TaskSortByUpdatedAt: "updated_at",
	entity.TaskSortByTitle:     "title",
	entity.TaskSortByStatus:    "status",
}

type taskRepository struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

// NewTaskRepository is the constructor for taskRepository.
func NewTaskRepository(db *gorm.DB, cfg *config.Config) repository.TaskRepository {
	return &taskRepository{db: db, queryTimeout: queryTimeoutFrom(cfg)}
}

func (repo *taskRepository) Create(ctx context.Context, task *entity.Task) error {
	ctx, cancel := withTimeout(ctx, repo.queryTimeout)
	defer cancel()

	m := fromTaskDomain(task)
	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrUserNotFound.WrapMessage("task owner does not exist")
		}

		return translateError(err, "failed to create task")
	}

	task.ID = m.ID
	task.Version = m.Version
	task.CreatedAt = m.CreatedAt
	task.UpdatedAt = m.UpdatedAt

	return nil
}

// FindByID reads from the primary because its result feeds optimistic updates.
func (repo *taskRepository) FindByID(ctx context.Context, id int64) (*entity.Task, error) {
	ctx, cancel := withTimeout(ctx, repo.queryTimeout)
	defer cancel()

	var m model.TaskModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Where("id = ? AND is_archived = ?", id, false).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrTaskNotFound
		}

		return nil, translateError(err, "failed to find task")
	}

	return toTaskDomain(&m), nil
}

func (repo *taskRepository) FindByOwner(ctx context.Context, query entity.TaskQuery) ([]*entity.Task, int64, error) {
	ctx, cancel := withTimeout(ctx, repo.queryTimeout)
	defer cancel()

	scope := func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ? AND is_archived = ?", query.OwnerID, false)
	}

	var total int64
	if err := repo.db.WithContext(ctx).Model(&model.TaskModel{}).Scopes(scope).Count(&total).Error; err != nil {
		return nil, 0, translateError(err, "failed to count tasks")
	}
	if total == 0 {
		return []*entity.Task{}, 0, nil
	}

	column, ok := taskSortColumns[query.SortBy]
	if !ok {
		column = taskSortColumns[entity.TaskSortByCreatedAt]
	}
	orderBy := clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: column}, Desc: query.Descending},
	}}
	if column != "id" {
		// Tie-break on id so pages stay stable when the sort column repeats.
		orderBy.Columns = append(orderBy.Columns, clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: query.Descending})
	}

	var models []model.TaskModel
	err := repo.db.WithContext(ctx).
		Scopes(scope).
		Clauses(orderBy).
		Limit(query.Size).
		Offset(query.Page * query.Size).
		Find(&models).Error
	if err != nil {
		return nil, 0, translateError(err, "failed to list tasks")
	}

	tasks := make([]*entity.Task, 0, len(models))
	for i := range models {
		tasks = append(tasks, toTaskDomain(&models[i]))
	}

	return tasks, total, nil
}

func (repo *taskRepository) Update(ctx context.Context, task *entity.Task) error {
	ctx, cancel := withTimeout(ctx, repo.queryTimeout)
	defer cancel()

	now := time.Now()
	result := repo.db.WithContext(ctx).
		Model(&model.TaskModel{}).
		Where("id = ? AND version = ? AND is_archived = ?", task.ID, task.Version, false).
		Updates(map[string]any{
			"title":       task.Title,
			"description": task.Description,
			"status":      string(task.Status),
			"updated_by":  task.UpdatedBy,
			"updated_at":  now,
			"version":     gorm.Expr("version + 1"),
		})
	if result.Error != nil {
		return translateError(result.Error, "failed to update task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskVersionConflict
	}

	task.Version++
	task.UpdatedAt = now

	return nil
}

func (repo *taskRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := withTimeout(ctx, repo.queryTimeout)
	defer cancel()

	result := repo.db.WithContext(ctx).Delete(&model.TaskModel{}, id)
	if result.Error != nil {
		return translateError(result.Error, "failed to delete task")
	}
	if result.RowsAffected == 0 {
		return repository.ErrTaskNotFound
	}

	return nil
}

func toTaskDomain(m *model.TaskModel) *entity.Task {
	return &entity.Task{
		ID:          m.ID,
		OwnerID:     m.UserID,
		Title:       m.Title,
		Description: m.Description,
		Status:      entity.TaskStatus(m.Status),
		CreatedBy:   m.CreatedBy,
		UpdatedBy:   m.UpdatedBy,
		Version:     m.Version,
		Archived:    m.IsArchived,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromTaskDomain(task *entity.Task) *model.TaskModel {
	return &model.TaskModel{
		ID:          task.ID,
		UserID:      task.OwnerID,
		Title:       task.Title,
		Description: task.Description,
		Status:      string(task.Status),
		CreatedBy:   task.CreatedBy,
		UpdatedBy:   task.UpdatedBy,
		Version:     task.Version,
		IsArchived:  task.Archived,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}
