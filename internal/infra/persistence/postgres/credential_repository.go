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

type credentialRepository struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

// NewCredentialRepository is the constructor for credentialRepository.
func NewCredentialRepository(db *gorm.DB, cfg *config.Config) repository.CredentialRepository {
	return &credentialRepository{db: db, queryTimeout: queryTimeoutFrom(cfg)}
}

func (repo *credentialRepository) Create(ctx context.Context, credential *entity.Credential) error {
	ctx, cancel := withTimeout(ctx, repo.queryTimeout)
	defer cancel()

	m := &model.CredentialModel{
		UserID:       credential.UserID,
		PasswordHash: credential.PasswordHash,
	}
	if err := repo.db.WithContext(ctx).Create(m).Error; err != nil {
		switch {
		case isUniqueConstraintViolation(err):
			return domainerrors.ErrUserAlreadyExists.WrapMessage("credential already exists")
		case isForeignKeyConstraintViolation(err):
			return domainerrors.ErrUserNotFound.WrapMessage("credential owner does not exist")
		}

		return translateError(err, "failed to create credential")
	}

	credential.CreatedAt = m.CreatedAt
	credential.UpdatedAt = m.UpdatedAt

	return nil
}

// FindByEmail loads the user together with its hash. Reads hit the primary so a
// login right after registration sees the new account.
func (repo *credentialRepository) FindByEmail(ctx context.Context, email string) (*entity.CredentialRecord, error) {
	ctx, cancel := withTimeout(ctx, repo.queryTimeout)
	defer cancel()

	var m model.UserModel
	err := repo.db.WithContext(ctx).
		Clauses(dbresolver.Write).
		Preload("Credential").
		Where("email = ?", email).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrUserNotFound
		}

		return nil, translateError(err, "failed to load credential")
	}
	// A user row without a credential cannot authenticate.
	if m.Credential == nil {
		return nil, repository.ErrUserNotFound
	}

	return &entity.CredentialRecord{
		User:         toUserDomain(&m),
		PasswordHash: m.Credential.PasswordHash,
	}, nil
}

func (repo *credentialRepository) UpdatePasswordHash(ctx context.Context, userID uuid.UUID, passwordHash string) error {
	ctx, cancel := withTimeout(ctx, repo.queryTimeout)
	defer cancel()

	result := repo.db.WithContext(ctx).
		Model(&model.CredentialModel{}).
		Where("user_id = ?", userID).
		Update("password_hash", passwordHash)
	if result.Error != nil {
		return translateError(result.Error, "failed to update password hash")
	}
	if result.RowsAffected == 0 {
		return repository.ErrUserNotFound
	}

	return nil
}
