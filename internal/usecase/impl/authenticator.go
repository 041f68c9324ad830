// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "taskapi/internal/delivery/context"
	"taskapi/internal/domain/entity"
	domainerrors "taskapi/internal/domain/errors"
	"taskapi/internal/domain/repository"
	"taskapi/internal/domain/service"
	"taskapi/internal/errors"
	"taskapi/internal/usecase"

	"go.uber.org/fx"
)

// timingPassword is hashed once and compared against for unknown emails,
// so that lookups for missing accounts cost about as much as a wrong password.
const timingPassword = "taskapi-timing-equalizer"

type authenticator struct {
	credentialRepo repository.CredentialRepository
	hasher         service.PasswordHasher
	logger         *slog.Logger

	// timingHash is empty when it could not be computed; unknown emails then skip the comparison.
	timingHash string
}

// AuthenticatorParams holds dependencies for the authenticator, injected by Fx.
type AuthenticatorParams struct {
	fx.In

	CredentialRepo repository.CredentialRepository
	Hasher         service.PasswordHasher
	Logger         *slog.Logger
}

// NewAuthenticator is the constructor for the credential authenticator.
// It hashes the timing password up front so no login request pays for it.
func NewAuthenticator(params AuthenticatorParams) usecase.Authenticator {
	timingHash, err := params.Hasher.Hash(timingPassword)
	if err != nil {
		params.Logger.Warn("Failed to prepare timing hash", slog.Any("error", err))
		timingHash = ""
	}

	return &authenticator{
		credentialRepo: params.CredentialRepo,
		hasher:         params.Hasher,
		logger:         params.Logger,
		timingHash:     timingHash,
	}
}

func (a *authenticator) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, a.logger)
}

func (a *authenticator) Authenticate(ctx context.Context, email, password string) (*entity.Principal, error) {
	email = entity.NormalizeEmail(email)

	record, err := a.credentialRepo.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrUserNotFound) {
		a.equalizeTiming(password)
		a.log(ctx).Info("Login attempt for unknown account")

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("authentication failed")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load credentials")
	}

	if !a.hasher.Check(password, record.PasswordHash) {
		a.log(ctx).Info("Login attempt with wrong password", slog.String("userID", record.User.ID.String()))

		return nil, domainerrors.ErrInvalidCredentials.WrapMessage("authentication failed")
	}

	if !record.User.Active {
		a.log(ctx).Warn("Login attempt on disabled account", slog.String("userID", record.User.ID.String()))

		return nil, domainerrors.ErrAccountDisabled.WrapMessage("authentication failed")
	}

	return record.User.Principal(), nil
}

func (a *authenticator) equalizeTiming(password string) {
	if a.timingHash != "" {
		a.hasher.Check(password, a.timingHash)
	}
}
