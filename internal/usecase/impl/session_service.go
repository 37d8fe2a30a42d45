package impl

import (
	"context"
	"log/slog"

	deliverycontext "tasker/internal/delivery/context"
	"tasker/internal/domain/entity"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/repository"
	"tasker/internal/domain/service"
	"tasker/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// sessionService implements the SessionUsecase interface.
type sessionService struct {
	userRepo     repository.UserRepository
	sessionRepo  repository.SessionRepository
	tokenService service.TokenService
	logger       *slog.Logger
}

// SessionServiceParams holds dependencies for SessionService, injected by Fx.
type SessionServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	SessionRepo  repository.SessionRepository
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewSessionService is the constructor for sessionService.
func NewSessionService(params SessionServiceParams) usecase.SessionUsecase {
	return &sessionService{
		userRepo:     params.UserRepo,
		sessionRepo:  params.SessionRepo,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *sessionService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Authenticate verifies the token, loads its user and checks the token is
// still in the user's active list.
func (srv *sessionService) Authenticate(ctx context.Context, token string) (*entity.User, error) {
	claims, err := srv.tokenService.ValidateToken(token)
	if err != nil {
		srv.log(ctx).Debug("Rejected session token", slog.Any("error", err))

		return nil, domainerrors.ErrUnauthenticated.WrapMessage("invalid token")
	}

	user, err := srv.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrUnauthenticated.WrapMessage("token owner no longer exists")
		}

		return nil, errors.Wrap(err, "failed to load token owner")
	}

	if _, err := srv.sessionRepo.FindByUserAndHash(ctx, user.ID, srv.tokenService.HashToken(token)); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			srv.log(ctx).Debug("Session is not active", tokenAttrs(user.ID, claims)...)

			return nil, domainerrors.ErrUnauthenticated.WrapMessage("session is not active")
		}

		return nil, errors.Wrap(err, "failed to find session")
	}
	srv.log(ctx).Debug("Session authenticated", tokenAttrs(user.ID, claims)...)

	return user, nil
}

// tokenAttrs describes a session token for logs without exposing it.
func tokenAttrs(userID uuid.UUID, claims *service.Claims) []any {
	attrs := []any{slog.Any("userID", userID), slog.Any("token_id", claims.TokenID)}
	if claims.IssuedAt != nil {
		attrs = append(attrs, slog.Time("issued_at", claims.IssuedAt.Time))
	}
	if claims.ExpiresAt != nil {
		attrs = append(attrs, slog.Time("expires_at", claims.ExpiresAt.Time))
	}

	return attrs
}

// Logout ends the session of exactly this token.
func (srv *sessionService) Logout(ctx context.Context, userID uuid.UUID, token string) error {
	err := srv.sessionRepo.DeleteByUserAndHash(ctx, userID, srv.tokenService.HashToken(token))
	if err != nil && !errors.Is(err, repository.ErrSessionNotFound) {
		srv.log(ctx).Error("Failed to revoke session", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to revoke session")
	}
	attrs := []any{slog.Any("userID", userID)}
	if claims, err := srv.tokenService.ValidateToken(token); err == nil {
		attrs = tokenAttrs(userID, claims)
	}
	srv.log(ctx).Info("Session revoked", attrs...)

	return nil
}

// LogoutAll ends every session of the user.
func (srv *sessionService) LogoutAll(ctx context.Context, userID uuid.UUID) error {
	if err := srv.sessionRepo.DeleteByUser(ctx, userID); err != nil {
		srv.log(ctx).Error("Failed to revoke all sessions", slog.Any("userID", userID), slog.Any("error", err))

		return errors.Wrap(err, "failed to revoke all sessions")
	}
	srv.log(ctx).Info("All sessions revoked", slog.Any("userID", userID))

	return nil
}
