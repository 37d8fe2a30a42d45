// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "tasker/internal/delivery/context"
	"tasker/internal/domain/entity"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/repository"
	"tasker/internal/domain/service"
	"tasker/internal/domain/validation"
	"tasker/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// userService implements the UserUsecase interface.
type userService struct {
	txManager    repository.TransactionManager
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	hasher       service.PasswordHasher
	tokenService service.TokenService
	notifier     service.Notifier
	validator    *validation.Validator
	logger       *slog.Logger
}

// UserServiceParams holds dependencies for UserService, injected by Fx.
type UserServiceParams struct {
	fx.In

	TxManager    repository.TransactionManager
	UserRepo     repository.UserRepository
	SessionRepo  repository.SessionRepository
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Notifier     service.Notifier
	Validator    *validation.Validator
	Logger       *slog.Logger
}

// NewUserService is the constructor for userService. It receives all dependencies as interfaces.
func NewUserService(params UserServiceParams) usecase.UserUsecase {
	return &userService{
		txManager:    params.TxManager,
		userRepo:     params.UserRepo,
		sessionRepo:  params.SessionRepo,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		notifier:     params.Notifier,
		validator:    params.Validator,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *userService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register validates, hashes and persists a new user, then opens its first session.
func (srv *userService) Register(ctx context.Context, input *usecase.RegisterUserInput) (*usecase.AuthOutput, error) {
	user := &entity.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: input.Password,
		Age:      input.Age,
	}
	srv.log(ctx).Info("Starting registration", slog.String("email", strings.ToLower(strings.TrimSpace(user.Email))))

	// 1. Validate the normalized candidate.
	if err := srv.validator.User(user); err != nil {
		srv.log(ctx).Warn("Registration rejected", slog.Any("error", err))

		return nil, errors.WithStack(err)
	}

	// 2. Hash the password.
	if err := srv.hashPendingPassword(user); err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, err
	}

	// 3. Persist the user and its first session together.
	var token string
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := repoFactory.UserRepo().Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user during registration")
		}

		var err error
		token, err = srv.openSession(ctx, repoFactory.SessionRepo(), user.ID)

		return err
	})
	if err != nil {
		srv.log(ctx).Warn("Failed to execute registration transaction", slog.String("email", user.Email), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute user registration transaction")
	}

	srv.notify(ctx, "welcome", user, srv.notifier.SendWelcome)
	srv.log(ctx).Debug("Registration completed", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{User: user, Token: token}, nil
}

// Login checks credentials and opens a new session. An unknown email and a
// wrong password fail identically.
func (srv *userService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	srv.log(ctx).Debug("Starting user login", slog.String("email", email))

	user, err := srv.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", "unknown email"))

			return nil, domainerrors.ErrLoginFailed.WrapMessage("login failed")
		}

		return nil, errors.Wrap(err, "failed to find user by email")
	}

	if !srv.hasher.Check(input.Password, user.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", email), slog.String("reason", "password mismatch"))

		return nil, domainerrors.ErrLoginFailed.WrapMessage("login failed")
	}

	token, err := srv.openSession(ctx, srv.sessionRepo, user.ID)
	if err != nil {
		return nil, err
	}
	srv.log(ctx).Debug("User logged in successfully", slog.Any("userID", user.ID))

	return &usecase.AuthOutput{User: user, Token: token}, nil
}

// GetProfile returns the stored user.
func (srv *userService) GetProfile(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translateUserLookup(err)
	}

	return user, nil
}

// UpdateProfile applies the supplied fields, re-validates the whole user and
// re-hashes only when a new password was given.
func (srv *userService) UpdateProfile(ctx context.Context, userID uuid.UUID, input *usecase.UpdateUserInput) (*entity.User, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, translateUserLookup(err)
	}

	applyUserUpdate(user, input)

	if err := srv.validator.User(user); err != nil {
		srv.log(ctx).Warn("Profile update rejected", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.WithStack(err)
	}

	if err := srv.hashPendingPassword(user); err != nil {
		srv.log(ctx).Error("Failed to hash password during profile update", slog.Any("error", err))

		return nil, err
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, translateUserLookup(err)
		}

		return nil, errors.Wrap(err, "failed to update user")
	}
	srv.log(ctx).Info("Profile updated", slog.Any("userID", userID))

	return user, nil
}

// DeleteAccount removes the user's tasks, sessions and the user atomically.
func (srv *userService) DeleteAccount(ctx context.Context, userID uuid.UUID) (*entity.User, error) {
	var deleted *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.UserRepo()

		user, err := userRepo.FindByID(ctx, userID)
		if err != nil {
			return translateUserLookup(err)
		}

		if err := repoFactory.TaskRepo().DeleteByOwner(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to delete tasks of user")
		}

		if err := repoFactory.SessionRepo().DeleteByUser(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to delete sessions of user")
		}

		if err := userRepo.Delete(ctx, userID); err != nil {
			return errors.Wrap(err, "failed to delete user")
		}
		deleted = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Error("Failed to delete account", slog.Any("userID", userID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute account deletion transaction")
	}

	srv.notify(ctx, "cancellation", deleted, srv.notifier.SendCancellation)
	srv.log(ctx).Info("Account deleted", slog.Any("userID", userID))

	return deleted, nil
}

func (srv *userService) hashPendingPassword(user *entity.User) error {
	if user.Password == "" {
		return nil
	}

	hash, err := srv.hasher.Hash(user.Password)
	if err != nil {
		return domainerrors.ErrPasswordHashFailed.WrapMessage(err.Error())
	}
	user.PasswordHash = hash
	user.Password = ""

	return nil
}

func (srv *userService) openSession(ctx context.Context, sessionRepo repository.SessionRepository, userID uuid.UUID) (string, error) {
	token, err := srv.tokenService.GenerateToken(userID)
	if err != nil {
		return "", errors.Wrap(err, "failed to generate session token")
	}

	session := &entity.SessionToken{
		UserID:    userID,
		TokenHash: srv.tokenService.HashToken(token),
	}
	if err := sessionRepo.Create(ctx, session); err != nil {
		return "", errors.Wrap(err, "failed to store session token")
	}

	return token, nil
}

func (srv *userService) notify(ctx context.Context, kind string, user *entity.User, send func(context.Context, service.Recipient) error) {
	recipient := service.Recipient{Name: user.Name, Email: user.Email}
	if err := send(ctx, recipient); err != nil {
		srv.log(ctx).Warn("Failed to dispatch notification", slog.String("type", kind), slog.Any("userID", user.ID), slog.Any("error", err))
	}
}

func applyUserUpdate(user *entity.User, input *usecase.UpdateUserInput) {
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Age != nil {
		user.Age = *input.Age
	}
	if input.Password != nil {
		// A supplied password replaces the stored hash and must pass validation.
		user.Password = *input.Password
		user.PasswordHash = ""
	}
}

func translateUserLookup(err error) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound.WrapMessage("user not found")
	}

	return errors.Wrap(err, "failed to find user")
}
