// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"
	"time"

	"taskapi/config"
	"taskapi/internal/domain/repository"
	"taskapi/internal/errors"

	"gorm.io/gorm"
)

// gormTransactionManager implements the domain's TransactionManager interface using GORM.
type gormTransactionManager struct {
	db           *gorm.DB
	queryTimeout time.Duration
}

// gormRepositoryFactory hands out repositories bound to a single transaction.
type gormRepositoryFactory struct {
	tx           *gorm.DB // In GORM, a transaction object is also a *gorm.DB
	queryTimeout time.Duration
}

func (f *gormRepositoryFactory) UserRepo() repository.UserRepository {
	return &userRepository{db: f.tx, queryTimeout: f.queryTimeout}
}

func (f *gormRepositoryFactory) CredentialRepo() repository.CredentialRepository {
	return &credentialRepository{db: f.tx, queryTimeout: f.queryTimeout}
}

func (f *gormRepositoryFactory) TaskRepo() repository.TaskRepository {
	return &taskRepository{db: f.tx, queryTimeout: f.queryTimeout}
}

// NewTransactionManager is the constructor for gormTransactionManager.
func NewTransactionManager(db *gorm.DB, cfg *config.Config) repository.TransactionManager {
	return &gormTransactionManager{db: db, queryTimeout: queryTimeoutFrom(cfg)}
}

// Execute runs the given function within a single database transaction.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) error {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		if isUnavailable(tx.Error) {
			return translateError(tx.Error, "failed to begin transaction")
		}

		return errors.Wrap(tx.Error, "failed to begin transaction")
	}

	// Roll back on panic, then re-panic so the recover middleware sees it.
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
	}()

	factory := &gormRepositoryFactory{tx: tx, queryTimeout: tm.queryTimeout}

	if err := fn(factory); err != nil {
		if rbErr := tx.Rollback().Error; rbErr != nil {
			return errors.Wrapf(err, "transaction rollback failed: %v", rbErr)
		}

		return err
	}

	if err := tx.Commit().Error; err != nil {
		return translateError(err, "failed to commit transaction")
	}

	return nil
}

func queryTimeoutFrom(cfg *config.Config) time.Duration {
	if cfg == nil || cfg.Persistence == nil {
		return 0
	}

	return cfg.Persistence.QueryTimeout
}

// withTimeout bounds a single repository call. A zero timeout leaves ctx untouched.
func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return ctx, func() {}
	}

	return context.WithTimeout(ctx, timeout)
}
