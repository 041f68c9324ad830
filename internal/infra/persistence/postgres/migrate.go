package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"taskapi/internal/errors"
	"taskapi/internal/infra/persistence/migrations"

	"github.com/pressly/goose/v3"
)

const migrationsDialect = "postgres"

// gooseUpContext is swapped in tests so migrations can run without a database.
var gooseUpContext = goose.UpContext

// gooseLogger adapts slog to goose's printf style logger.
type gooseLogger struct {
	logger *slog.Logger
}

func (l gooseLogger) Printf(format string, args ...any) {
	l.logger.Info(fmt.Sprintf(format, args...), slog.String("component", "migrations"))
}

func (l gooseLogger) Fatalf(format string, args ...any) {
	l.logger.Error(fmt.Sprintf(format, args...), slog.String("component", "migrations"))
}

// Migrate applies every pending embedded migration.
func Migrate(ctx context.Context, db *sql.DB, logger *slog.Logger) error {
	if db == nil {
		return errors.New("migrate: nil database")
	}

	goose.SetBaseFS(migrations.FS)
	if logger != nil {
		goose.SetLogger(gooseLogger{logger: logger})
	}
	if err := goose.SetDialect(migrationsDialect); err != nil {
		return errors.Wrap(err, "failed to set migration dialect")
	}

	if err := gooseUpContext(ctx, db, "."); err != nil {
		return errors.Wrap(err, "failed to apply migrations")
	}

	return nil
}
