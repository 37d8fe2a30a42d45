package handler

import (
	"log/slog"
	"net/http"

	"tasker/internal/delivery/api/middleware"
	"tasker/internal/delivery/api/response"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/usecase"
	"tasker/internal/util"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const avatarFormField = "avatar"

// UserHandlerParams holds dependencies for UserHandler, injected by Fx.
type UserHandlerParams struct {
	fx.In

	UserUC    usecase.UserUsecase
	SessionUC usecase.SessionUsecase
	AvatarUC  usecase.AvatarUsecase
	Logger    *slog.Logger
}

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	userUC    usecase.UserUsecase
	sessionUC usecase.SessionUsecase
	avatarUC  usecase.AvatarUsecase
	logger    *slog.Logger
}

// NewUserHandler is the constructor for UserHandler.
func NewUserHandler(params UserHandlerParams) *UserHandler {
	return &UserHandler{
		userUC:    params.UserUC,
		sessionUC: params.SessionUC,
		avatarUC:  params.AvatarUC,
		logger:    params.Logger,
	}
}

// RegisterRequest represents the request body for registering a user.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Age      int    `json:"age"`
}

// LoginRequest represents the request body for logging in.
type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Register handles the user registration request.
func (h *UserHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("request body is malformed"))
	}

	output, err := h.userUC.Register(c.Request().Context(), &usecase.RegisterUserInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Age:      req.Age,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, &AuthResponse{
		User:  newUserResponse(output.User),
		Token: output.Token,
	})
}

// Login handles the user login request. Malformed credentials fail like wrong ones.
func (h *UserHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return domainerrors.ErrLoginFailed.WrapMessage("malformed login body")
	}
	if err := c.Validate(&req); err != nil {
		return domainerrors.ErrLoginFailed.WrapMessage("missing credentials")
	}

	output, err := h.userUC.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, &AuthResponse{
		User:  newUserResponse(output.User),
		Token: output.Token,
	})
}

// Logout ends the session of the presented token.
func (h *UserHandler) Logout(c echo.Context) error {
	userID, token, err := currentSession(c)
	if err != nil {
		return err
	}

	if err := h.sessionUC.Logout(c.Request().Context(), userID, token); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Logged out")
}

// LogoutAll ends every session of the caller.
func (h *UserHandler) LogoutAll(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.sessionUC.LogoutAll(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Logged out of all sessions")
}

// GetProfile returns the caller's profile.
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, ok := middleware.GetUser(c)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no user in context")
	}

	return response.Success(c, http.StatusOK, newUserResponse(user))
}

// UpdateProfile applies a partial update limited to name, email, password and age.
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	fields, err := bindPartialUpdate(c, usecase.UpdatableUserFields)
	if err != nil {
		return err
	}

	input := &usecase.UpdateUserInput{}
	if input.Name, err = optionalField[string](fields, "name"); err != nil {
		return err
	}
	if input.Email, err = optionalField[string](fields, "email"); err != nil {
		return err
	}
	if input.Password, err = optionalField[string](fields, "password"); err != nil {
		return err
	}
	if input.Age, err = optionalField[int](fields, "age"); err != nil {
		return err
	}

	user, err := h.userUC.UpdateProfile(c.Request().Context(), userID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user))
}

// DeleteAccount removes the caller together with its tasks and sessions.
func (h *UserHandler) DeleteAccount(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	user, err := h.userUC.DeleteAccount(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newUserResponse(user))
}

// UploadAvatar stores the multipart "avatar" file as the caller's picture.
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var upload *usecase.AvatarUpload
	if header, formErr := c.FormFile(avatarFormField); formErr == nil {
		file, openErr := header.Open()
		if openErr != nil {
			return errors.Wrap(openErr, "failed to open avatar upload")
		}
		defer file.Close()

		upload = &usecase.AvatarUpload{
			Filename: header.Filename,
			Size:     header.Size,
			Content:  file,
		}
	}

	if err := h.avatarUC.Upload(c.Request().Context(), userID, upload); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Avatar uploaded")
}

// DeleteAvatar clears the caller's picture.
func (h *UserHandler) DeleteAvatar(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	if err := h.avatarUC.Remove(c.Request().Context(), userID); err != nil {
		return errors.WithStack(err)
	}

	return response.Message(c, "Avatar removed")
}

// GetAvatar serves any user's picture as image/png. It needs no session.
func (h *UserHandler) GetAvatar(c echo.Context) error {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return domainerrors.ErrAvatarNotFound.WrapMessage("malformed user id")
	}

	avatar, err := h.avatarUC.Get(c.Request().Context(), userID)
	if err != nil {
		return errors.WithStack(err)
	}

	etag := util.ContentETag(avatar)
	c.Response().Header().Set("ETag", etag)
	if c.Request().Header.Get("If-None-Match") == etag {
		return c.NoContent(http.StatusNotModified)
	}

	return c.Blob(http.StatusOK, "image/png", avatar)
}

func currentUserID(c echo.Context) (uuid.UUID, error) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		return uuid.Nil, domainerrors.ErrUnauthenticated.WrapMessage("no user in context")
	}

	return userID, nil
}

func currentSession(c echo.Context) (uuid.UUID, string, error) {
	userID, err := currentUserID(c)
	if err != nil {
		return uuid.Nil, "", err
	}

	token, ok := middleware.GetToken(c)
	if !ok {
		return uuid.Nil, "", domainerrors.ErrUnauthenticated.WrapMessage("no token in context")
	}

	return userID, token, nil
}
