package middleware

import (
	"log/slog"
	"strings"

	deliverycontext "tasker/internal/delivery/context"
	"tasker/internal/domain/entity"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	contextKeyUser  = "user"
	contextKeyToken = "token"
	bearerPrefix    = "Bearer "
)

// AuthMiddleware guards routes that need an active session.
type AuthMiddleware struct {
	sessions usecase.SessionUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(sessions usecase.SessionUsecase) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// Authenticate resolves the bearer token to a user with an active session.
// Every rejection is 401 "Please authenticate"; store failures stay 500.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		token, found := strings.CutPrefix(authHeader, bearerPrefix)
		if !found || strings.TrimSpace(token) == "" {
			return domainerrors.ErrUnauthenticated.WrapMessage("missing bearer token")
		}

		ctx := c.Request().Context()
		user, err := m.sessions.Authenticate(ctx, token)
		if err != nil {
			return errors.WithStack(err)
		}

		c.Set(contextKeyUser, user)
		c.Set(contextKeyToken, token)

		ctx = deliverycontext.WithUserID(ctx, user.ID)
		if logger := deliverycontext.GetLogger(ctx); logger != nil {
			ctx = deliverycontext.WithLogger(ctx, logger.With(slog.String("user_id", user.ID.String())))
		}
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}

// GetUser returns the user set by Authenticate.
func GetUser(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(contextKeyUser).(*entity.User)

	return user, ok && user != nil
}

// GetUserID returns the ID of the user set by Authenticate.
func GetUserID(c echo.Context) (uuid.UUID, bool) {
	user, ok := GetUser(c)
	if !ok {
		return uuid.Nil, false
	}

	return user.ID, true
}

// GetToken returns the raw bearer token accepted by Authenticate.
func GetToken(c echo.Context) (string, bool) {
	token, ok := c.Get(contextKeyToken).(string)

	return token, ok
}
