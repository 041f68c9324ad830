package impl

import (
	"io"
	"log/slog"

	"taskapi/config"
	"taskapi/internal/domain/entity"

	"github.com/google/uuid"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig() *config.Config {
	return &config.Config{
		Tasks: &config.TasksConfig{DefaultPageSize: 10, MaxPageSize: 50},
	}
}

func newActiveUser(email string) *entity.User {
	return &entity.User{
		ID:       uuid.New(),
		Email:    email,
		Username: entity.UsernameFromEmail(email),
		Name:     "Alice Doe",
		Active:   true,
	}
}
