package impl

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"regexp"

	"tasker/config"
	deliverycontext "tasker/internal/delivery/context"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/repository"
	"tasker/internal/domain/service"
	"tasker/internal/usecase"
	"tasker/internal/util"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultAvatarMaxSize int64 = 1_000_000

var avatarFilename = regexp.MustCompile(`\.(png|jpg)$`)

// avatarService implements the AvatarUsecase interface.
type avatarService struct {
	userRepo  repository.UserRepository
	processor service.ImageProcessor
	maxSize   int64
	logger    *slog.Logger
}

// AvatarServiceParams holds dependencies for AvatarService, injected by Fx.
type AvatarServiceParams struct {
	fx.In

	UserRepo  repository.UserRepository
	Processor service.ImageProcessor
	Config    *config.Config
	Logger    *slog.Logger
}

// NewAvatarService is the constructor for avatarService.
func NewAvatarService(params AvatarServiceParams) usecase.AvatarUsecase {
	maxSize := defaultAvatarMaxSize
	if params.Config != nil && params.Config.Avatar != nil && params.Config.Avatar.MaxSizeBytes > 0 {
		maxSize = params.Config.Avatar.MaxSizeBytes
	}

	return &avatarService{
		userRepo:  params.UserRepo,
		processor: params.Processor,
		maxSize:   maxSize,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *avatarService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Upload rejects oversize files and unsupported names before decoding anything.
func (srv *avatarService) Upload(ctx context.Context, userID uuid.UUID, upload *usecase.AvatarUpload) error {
	if upload == nil || upload.Content == nil {
		return errors.WithStack(domainerrors.ErrInvalidAvatar.WithDetails("Please upload an image"))
	}
	if upload.Size > srv.maxSize {
		return errors.WithStack(srv.tooLarge())
	}
	if !avatarFilename.MatchString(upload.Filename) {
		return errors.WithStack(domainerrors.ErrInvalidAvatar.WithDetails("Please upload an image"))
	}

	// The declared size is not trusted; read at most one byte past the limit.
	raw, err := io.ReadAll(io.LimitReader(upload.Content, srv.maxSize+1))
	if err != nil {
		return errors.Wrap(err, "failed to read avatar upload")
	}
	if int64(len(raw)) > srv.maxSize {
		return errors.WithStack(srv.tooLarge())
	}

	avatar, err := srv.processor.Thumbnail(bytes.NewReader(raw))
	if err != nil {
		srv.log(ctx).Warn("Avatar could not be processed", slog.Any("userID", userID), slog.Any("error", err))

		return errors.WithStack(domainerrors.ErrInvalidAvatar.WithDetails("Unable to read image"))
	}

	if err := srv.userRepo.UpdateAvatar(ctx, userID, avatar); err != nil {
		return translateUserWrite(err, "failed to store avatar")
	}
	srv.log(ctx).Info("Avatar uploaded",
		slog.Any("userID", userID),
		slog.String("upload_size", util.FormatBytes(int64(len(raw)))),
		slog.String("stored_size", util.FormatBytes(int64(len(avatar)))),
	)

	return nil
}

// Remove clears the avatar.
func (srv *avatarService) Remove(ctx context.Context, userID uuid.UUID) error {
	if err := srv.userRepo.UpdateAvatar(ctx, userID, nil); err != nil {
		return translateUserWrite(err, "failed to clear avatar")
	}
	srv.log(ctx).Info("Avatar removed", slog.Any("userID", userID))

	return nil
}

// Get returns the stored PNG of any user.
func (srv *avatarService) Get(ctx context.Context, userID uuid.UUID) ([]byte, error) {
	user, err := srv.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, domainerrors.ErrAvatarNotFound.WrapMessage("user not found")
		}

		return nil, errors.Wrap(err, "failed to find user")
	}

	if !user.HasAvatar() {
		return nil, domainerrors.ErrAvatarNotFound.WrapMessage("user has no avatar")
	}

	return user.Avatar, nil
}

func (srv *avatarService) tooLarge() error {
	return domainerrors.ErrInvalidAvatar.WithDetails("File too large, the limit is " + util.FormatBytes(srv.maxSize))
}

func translateUserWrite(err error, message string) error {
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound.WrapMessage(message)
	}

	return errors.Wrap(err, message)
}
