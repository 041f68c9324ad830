package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "taskapi/internal/delivery/context"
	"taskapi/internal/domain/entity"
	domainerrors "taskapi/internal/domain/errors"
	"taskapi/internal/domain/repository"
	"taskapi/internal/domain/service"
	"taskapi/internal/errors"
	"taskapi/internal/usecase"
	"taskapi/internal/validation"

	"go.uber.org/fx"
)

const bearerTokenType = "Bearer"

// userService implements the UserUsecase interface.
type userService struct {
	txManager     repository.TransactionManager
	userRepo      repository.UserRepository
	authenticator usecase.Authenticator
	hasher        service.PasswordHasher
	tokenService  service.TokenService
	logger        *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	UserRepo      repository.UserRepository
	Authenticator usecase.Authenticator
	Hasher        service.PasswordHasher
	TokenService  service.TokenService
	Logger        *slog.Logger
}

// NewUserService is the constructor for userService.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:     params.TxManager,
		userRepo:      params.UserRepo,
		authenticator: params.Authenticator,
		hasher:        params.Hasher,
		tokenService:  params.TokenService,
		logger:        params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates the input, then stores the user and its credential in one transaction.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.RegisterOutput, error) {
	normalized := normalizeRegistration(input)
	if err := validateRegistration(normalized); err != nil {
		return nil, err
	}

	srv.log(ctx).Debug("Starting registration")

	exists, err := srv.userRepo.ExistsByEmail(ctx, normalized.Email)
	if err != nil {
		return nil, errors.Wrap(err, "failed to check existing account")
	}
	if exists {
		return nil, domainerrors.ErrUserAlreadyExists.WrapMessage("registration rejected")
	}

	hashedPassword, err := srv.hasher.Hash(normalized.Password)
	if err != nil {
		if _, ok := errors.AsType[domainerrors.AppError](err); ok {
			return nil, err
		}
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}

	newUser := &entity.User{
		Email:       normalized.Email,
		Username:    entity.UsernameFromEmail(normalized.Email),
		Name:        normalized.Name,
		PhoneNumber: normalized.PhoneNumber,
		Address:     normalized.Address,
		Active:      true,
		Verified:    false,
	}

	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, newUser); err != nil {
			return errors.WithStack(err)
		}

		credential := &entity.Credential{UserID: newUser.ID, PasswordHash: hashedPassword}
		if err := repoFactory.CredentialRepo().Create(ctx, credential); err != nil {
			return errors.WithStack(err)
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to execute registration transaction", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.log(ctx).Info("User registered", slog.String("userID", newUser.ID.String()))

	return &usecase.RegisterOutput{User: newUser}, nil
}

// Login authenticates the credentials and issues a bearer token for the principal.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	normalized := &usecase.LoginInput{
		Email:    entity.NormalizeEmail(input.Email),
		Password: input.Password,
	}
	if err := validateInput(normalized); err != nil {
		return nil, err
	}

	principal, err := srv.authenticator.Authenticate(ctx, normalized.Email, normalized.Password)
	if err != nil {
		return nil, err
	}

	token, err := srv.tokenService.Issue(principal)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token", slog.String("userID", principal.ID.String()), slog.Any("error", err))

		return nil, domainerrors.ErrTokenIssueFailed.WrapMessage(err.Error())
	}

	srv.log(ctx).Info("Login succeeded", slog.String("userID", principal.ID.String()))

	return &usecase.LoginOutput{
		TokenType: bearerTokenType,
		Token:     token,
		ExpiresIn: int64(srv.tokenService.TTL().Seconds()),
	}, nil
}

func normalizeRegistration(input *usecase.RegisterInput) *usecase.RegisterInput {
	return &usecase.RegisterInput{
		Email:       entity.NormalizeEmail(input.Email),
		Password:    input.Password,
		Name:        strings.TrimSpace(input.Name),
		PhoneNumber: strings.TrimSpace(input.PhoneNumber),
		Address:     strings.TrimSpace(input.Address),
	}
}

// validateRegistration reports a password length problem as WEAK_PASSWORD and
// everything else as VALIDATION_FAILED.
func validateRegistration(input *usecase.RegisterInput) error {
	fields, err := validation.Struct(input)
	if err != nil {
		return errors.Wrap(err, "failed to validate registration")
	}
	if fields == nil {
		return nil
	}
	if msg, ok := fields["password"]; ok && input.Password != "" {
		return domainerrors.NewWeakPasswordError("password " + msg)
	}

	return domainerrors.NewValidationError(fields)
}

// validateInput runs the struct rules and wraps failures as VALIDATION_FAILED.
func validateInput(input any) error {
	fields, err := validation.Struct(input)
	if err != nil {
		return errors.Wrap(err, "failed to validate input")
	}
	if fields != nil {
		return domainerrors.NewValidationError(fields)
	}

	return nil
}
