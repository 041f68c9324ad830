package usecase

import (
	"testing"

	"taskapi/internal/domain/entity"
	domainerrors "taskapi/internal/domain/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRequireOwner(t *testing.T) {
	owner := uuid.New()

	tests := []struct {
		name      string
		principal *entity.Principal
		ownerID   uuid.UUID
		wantErr   error
	}{
		{name: "owner", principal: &entity.Principal{ID: owner}, ownerID: owner},
		{name: "other user", principal: &entity.Principal{ID: uuid.New()}, ownerID: owner, wantErr: domainerrors.ErrAccessDenied},
		{name: "no principal", principal: nil, ownerID: owner, wantErr: domainerrors.ErrAuthenticationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := RequireOwner(tt.principal, tt.ownerID)
			if tt.wantErr == nil {
				assert.NoError(t, err)

				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
