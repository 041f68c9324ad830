package postgres

import (
	"context"
	"errors"
	"net"
	"testing"

	domainerrors "taskapi/internal/domain/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintChecks(t *testing.T) {
	wrapped := func(code string) error {
		return errors.Join(errors.New("exec"), &pgconn.PgError{Code: code})
	}

	assert.True(t, isUniqueConstraintViolation(wrapped(sqlStateUniqueViolation)))
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueConstraintViolation(wrapped(sqlStateCheckViolation)))
	assert.True(t, isForeignKeyConstraintViolation(wrapped(sqlStateForeignKeyViolation)))
	assert.True(t, isNotNullConstraintViolation(wrapped(sqlStateNotNullViolation)))
	assert.True(t, isCheckConstraintViolation(wrapped(sqlStateCheckViolation)))
	assert.False(t, isCheckConstraintViolation(errors.New("plain")))
}

func TestTranslateError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "deadline", err: context.DeadlineExceeded, want: domainerrors.ErrUpstreamUnavailable},
		{name: "network", err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("refused")}, want: domainerrors.ErrUpstreamUnavailable},
		{name: "not null", err: &pgconn.PgError{Code: sqlStateNotNullViolation}, want: domainerrors.ErrValidationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, translateError(tt.err, "op"), tt.want)
		})
	}

	generic := translateError(errors.New("syntax error"), "op")
	var dbErr *domainerrors.DatabaseExecuteError
	assert.ErrorAs(t, generic, &dbErr)
}
