package impl

import (
	"context"
	"testing"

	"taskapi/internal/domain/entity"
	domainerrors "taskapi/internal/domain/errors"
	"taskapi/internal/domain/repository"
	mockRepo "taskapi/internal/mocks/repository"
	mockSvc "taskapi/internal/mocks/service"
	"taskapi/internal/errors"
	"taskapi/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type authenticatorFixtures struct {
	authenticator  usecase.Authenticator
	credentialRepo *mockRepo.MockCredentialRepository
	hasher         *mockSvc.MockPasswordHasher
}

func createTestAuthenticator(t *testing.T) authenticatorFixtures {
	credentialRepo := mockRepo.NewMockCredentialRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	hasher.EXPECT().Hash(timingPassword).Return("dummy-hash", nil).Once()

	return authenticatorFixtures{
		authenticator: NewAuthenticator(AuthenticatorParams{
			CredentialRepo: credentialRepo,
			Hasher:         hasher,
			Logger:         newDiscardLogger(),
		}),
		credentialRepo: credentialRepo,
		hasher:         hasher,
	}
}

func TestAuthenticator_Success(t *testing.T) {
	fx := createTestAuthenticator(t)
	ctx := context.Background()
	user := newActiveUser("alice@example.com")

	fx.credentialRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(&entity.CredentialRecord{User: user, PasswordHash: "stored-hash"}, nil)
	fx.hasher.EXPECT().Check("password123", "stored-hash").Return(true)

	principal, err := fx.authenticator.Authenticate(ctx, "  Alice@Example.COM ", "password123")
	require.NoError(t, err)
	assert.Equal(t, user.ID, principal.ID)
	assert.Equal(t, "alice@example.com", principal.LoginEmail)
	assert.Equal(t, "alice", principal.DisplayUsername)
	assert.True(t, principal.Active)
}

// The timing hash is computed by the constructor, so every unknown-email
// login performs exactly one comparison and no hashing, including the first.
func TestAuthenticator_UnknownEmailStillHashes(t *testing.T) {
	fx := createTestAuthenticator(t)
	ctx := context.Background()

	fx.credentialRepo.EXPECT().
		FindByEmail(ctx, "ghost@example.com").
		Return(nil, repository.ErrUserNotFound).
		Times(2)
	fx.hasher.EXPECT().Check("password123", "dummy-hash").Return(false).Times(2)

	for range 2 {
		principal, err := fx.authenticator.Authenticate(ctx, "ghost@example.com", "password123")
		assert.Nil(t, principal)
		assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	}
}

func TestAuthenticator_WrongPassword(t *testing.T) {
	fx := createTestAuthenticator(t)
	ctx := context.Background()

	fx.credentialRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(&entity.CredentialRecord{User: newActiveUser("alice@example.com"), PasswordHash: "stored-hash"}, nil)
	fx.hasher.EXPECT().Check("wrong-password", "stored-hash").Return(false)

	_, err := fx.authenticator.Authenticate(ctx, "alice@example.com", "wrong-password")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthenticator_DisabledAccount(t *testing.T) {
	tests := []struct {
		name         string
		passwordOK   bool
		expectedCode error
	}{
		{name: "right password", passwordOK: true, expectedCode: domainerrors.ErrAccountDisabled},
		{name: "wrong password", passwordOK: false, expectedCode: domainerrors.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fx := createTestAuthenticator(t)
			ctx := context.Background()
			user := newActiveUser("alice@example.com")
			user.Active = false

			fx.credentialRepo.EXPECT().
				FindByEmail(ctx, "alice@example.com").
				Return(&entity.CredentialRecord{User: user, PasswordHash: "stored-hash"}, nil)
			fx.hasher.EXPECT().Check("password123", "stored-hash").Return(tt.passwordOK)

			_, err := fx.authenticator.Authenticate(ctx, "alice@example.com", "password123")
			assert.ErrorIs(t, err, tt.expectedCode)
		})
	}
}

func TestAuthenticator_StoreUnavailable(t *testing.T) {
	fx := createTestAuthenticator(t)
	ctx := context.Background()

	fx.credentialRepo.EXPECT().
		FindByEmail(ctx, "alice@example.com").
		Return(nil, domainerrors.ErrUpstreamUnavailable.WrapMessage("failed to load credential"))

	_, err := fx.authenticator.Authenticate(ctx, "alice@example.com", "password123")
	assert.ErrorIs(t, err, domainerrors.ErrUpstreamUnavailable)
	assert.NotErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuthenticator_TimingHashUnavailable(t *testing.T) {
	credentialRepo := mockRepo.NewMockCredentialRepository(t)
	hasher := mockSvc.NewMockPasswordHasher(t)
	hasher.EXPECT().Hash(timingPassword).Return("", errors.New("rng failure")).Once()

	authenticator := NewAuthenticator(AuthenticatorParams{
		CredentialRepo: credentialRepo,
		Hasher:         hasher,
		Logger:         newDiscardLogger(),
	})

	ctx := context.Background()
	credentialRepo.EXPECT().FindByEmail(ctx, "ghost@example.com").Return(nil, repository.ErrUserNotFound).Once()

	_, err := authenticator.Authenticate(ctx, "ghost@example.com", "password123")
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
	hasher.AssertNotCalled(t, "Check", "password123", "")
}
