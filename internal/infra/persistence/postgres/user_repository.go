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

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/plugin/dbresolver"
)

type userRepository struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

// NewUserRepository is the constructor for userRepository.
func NewUserRepository(db *gorm.DB, cfg *config.Config) repository.UserRepository {
	return &userRepository{db: db, queryTimeout: queryTimeoutFrom(cfg)}
}

// ExistsByEmail always reads from the primary so a registration right after
// another one never misses the fresh row on a lagging replica.
func (repo *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	ctx, cancel := withTimeout(ctx, repo.queryTimeout)
	defer cancel()

	var count int64
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Model(&model.UserModel{}).
		Where("email = ?", email).
		Count(&count).Error
	if err != nil {
		return false, translateError(err, "failed to check user email")
	}

	return count > 0, nil
}

func (repo *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	ctx, cancel := withTimeout(ctx, repo.queryTimeout)
	defer cancel()

	var m model.UserModel
	if err := repo.db.WithContext(ctx).Where("email = ?", email).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, translateError(err, "failed to find user by email")
	}

	return toUserDomain(&m), nil
}

func (repo *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	ctx, cancel := withTimeout(ctx, repo.queryTimeout)
	defer cancel()

	var m model.UserModel
	if err := repo.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, translateError(err, "failed to find user by id")
	}

	return toUserDomain(&m), nil
}

func (repo *userRepository) Create(ctx context.Context, user *entity.User) error {
	ctx, cancel := withTimeout(ctx, repo.queryTimeout)
	defer cancel()

	m := fromUserDomain(user)
	if err := repo.db.WithContext(ctx).Omit("Credential").Create(m).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already registered")
		}

		return translateError(err, "failed to create user")
	}

	user.ID = m.ID
	user.CreatedAt = m.CreatedAt
	user.UpdatedAt = m.UpdatedAt

	return nil
}

func toUserDomain(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}

	return &entity.User{
		ID:          m.ID,
		Email:       m.Email,
		Username:    m.Username,
		Name:        m.Name,
		PhoneNumber: m.PhoneNumber,
		Address:     m.Address,
		Active:      m.IsActive,
		Verified:    m.IsVerified,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func fromUserDomain(user *entity.User) *model.UserModel {
	return &model.UserModel{
		ID:          user.ID,
		Email:       user.Email,
		Username:    user.Username,
		Name:        user.Name,
		PhoneNumber: user.PhoneNumber,
		Address:     user.Address,
		IsActive:    user.Active,
		IsVerified:  user.Verified,
		CreatedAt:   user.CreatedAt,
		UpdatedAt:   user.UpdatedAt,
	}
}
