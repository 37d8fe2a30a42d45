package impl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"tasker/config"
	domainerrors "tasker/internal/domain/errors"
	mockSvc "tasker/internal/mocks/service"
	"tasker/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type avatarFixtures struct {
	*serviceFixtures
	processor *mockSvc.MockImageProcessor
	avatars   usecase.AvatarUsecase
}

func newAvatarFixtures(t *testing.T, maxSize int64) *avatarFixtures {
	t.Helper()

	base := newServiceFixtures(t)
	processor := mockSvc.NewMockImageProcessor(t)

	return &avatarFixtures{
		serviceFixtures: base,
		processor:       processor,
		avatars: NewAvatarService(AvatarServiceParams{
			UserRepo:  base.userRepo,
			Processor: processor,
			Config:    &config.Config{Avatar: &config.AvatarConfig{MaxSizeBytes: maxSize}},
			Logger:    newDiscardLogger(),
		}),
	}
}

func upload(name string, content []byte) *usecase.AvatarUpload {
	return &usecase.AvatarUpload{Filename: name, Size: int64(len(content)), Content: bytes.NewReader(content)}
}

func TestAvatarService_UploadStoresThumbnail(t *testing.T) {
	fx := newAvatarFixtures(t, 1_000_000)
	ctx := context.Background()
	ann := fx.register(t, "Ann", "ann@x.io")

	fx.processor.On("Thumbnail", mock.Anything).Return([]byte("png-bytes"), nil).Once()

	require.NoError(t, fx.avatars.Upload(ctx, ann.User.ID, upload("me.jpg", []byte("raw"))))

	avatar, err := fx.avatars.Get(ctx, ann.User.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), avatar)

	require.NoError(t, fx.avatars.Remove(ctx, ann.User.ID))
	_, err = fx.avatars.Get(ctx, ann.User.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrAvatarNotFound))
}

func TestAvatarService_RejectsBeforeProcessing(t *testing.T) {
	fx := newAvatarFixtures(t, 10)
	ctx := context.Background()
	ann := fx.register(t, "Ann", "ann@x.io")

	tests := []struct {
		name   string
		upload *usecase.AvatarUpload
		detail string
	}{
		{name: "missing file", upload: nil, detail: "Please upload an image"},
		{name: "declared oversize", upload: upload("me.png", bytes.Repeat([]byte{1}, 11)), detail: "File too large"},
		{name: "undeclared oversize", upload: &usecase.AvatarUpload{Filename: "me.png", Content: strings.NewReader(strings.Repeat("x", 50))}, detail: "File too large"},
		{name: "gif extension", upload: upload("me.gif", []byte("x")), detail: "Please upload an image"},
		{name: "upper case extension", upload: upload("me.PNG", []byte("x")), detail: "Please upload an image"},
		{name: "extension not at end", upload: upload("me.png.exe", []byte("x")), detail: "Please upload an image"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := fx.avatars.Upload(ctx, ann.User.ID, tt.upload)

			require.Error(t, err)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidAvatar))

			var appErr domainerrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Contains(t, appErr.Details(), tt.detail)
		})
	}

	_, err := fx.avatars.Get(ctx, ann.User.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrAvatarNotFound))
}

func TestAvatarService_UndecodableImage(t *testing.T) {
	fx := newAvatarFixtures(t, 1_000_000)
	ann := fx.register(t, "Ann", "ann@x.io")

	fx.processor.On("Thumbnail", mock.Anything).Return(nil, errors.New("unknown format")).Once()

	err := fx.avatars.Upload(context.Background(), ann.User.ID, upload("me.png", []byte("not an image")))
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidAvatar))
}

func TestAvatarService_GetUnknownUser(t *testing.T) {
	fx := newAvatarFixtures(t, 1_000_000)

	_, err := fx.avatars.Get(context.Background(), uuid.New())
	assert.True(t, errors.Is(err, domainerrors.ErrAvatarNotFound))
}
