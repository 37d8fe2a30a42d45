package impl

import (
	"context"
	"testing"

	"tasker/internal/domain/entity"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/validation"
	mockRepo "tasker/internal/mocks/repository"
	"tasker/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestParseTaskSort(t *testing.T) {
	tests := []struct {
		sortBy string
		want   *entity.TaskSort
	}{
		{sortBy: "description_asc", want: &entity.TaskSort{Field: entity.TaskSortDescription}},
		{sortBy: "description_desc", want: &entity.TaskSort{Field: entity.TaskSortDescription, Descending: true}},
		{sortBy: "createdAt_whatever", want: &entity.TaskSort{Field: entity.TaskSortCreatedAt, Descending: true}},
		{sortBy: "updatedAt", want: &entity.TaskSort{Field: entity.TaskSortUpdatedAt, Descending: true}},
		{sortBy: "owner_asc", want: nil},
		{sortBy: "", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.sortBy, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseTaskSort(tt.sortBy))
		})
	}
}

func TestTaskService_CreateIsOwnedByCaller(t *testing.T) {
	fx := newServiceFixtures(t)
	ctx := context.Background()
	ann := fx.register(t, "Ann", "ann@x.io")

	task, err := fx.tasks.Create(ctx, ann.User.ID, &usecase.CreateTaskInput{Description: "  buy milk  "})
	require.NoError(t, err)
	assert.Equal(t, "buy milk", task.Description)
	assert.False(t, task.Completed)
	assert.Equal(t, ann.User.ID, task.OwnerID)

	_, err = fx.tasks.Create(ctx, ann.User.ID, &usecase.CreateTaskInput{Description: "   "})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))
}

func TestTaskService_OwnerScoping(t *testing.T) {
	fx := newServiceFixtures(t)
	ctx := context.Background()
	ann := fx.register(t, "Ann", "ann@x.io")
	bob := fx.register(t, "Bob", "bob@x.io")

	task, err := fx.tasks.Create(ctx, ann.User.ID, &usecase.CreateTaskInput{Description: "ann only"})
	require.NoError(t, err)

	_, err = fx.tasks.Get(ctx, bob.User.ID, task.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrTaskNotFound))

	_, err = fx.tasks.Update(ctx, bob.User.ID, task.ID, &usecase.UpdateTaskInput{Completed: ptr(true)})
	assert.True(t, errors.Is(err, domainerrors.ErrTaskNotFound))

	_, err = fx.tasks.Delete(ctx, bob.User.ID, task.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrTaskNotFound))

	stored, err := fx.tasks.Get(ctx, ann.User.ID, task.ID)
	require.NoError(t, err)
	assert.False(t, stored.Completed)
}

func TestTaskService_UpdateAndDelete(t *testing.T) {
	fx := newServiceFixtures(t)
	ctx := context.Background()
	ann := fx.register(t, "Ann", "ann@x.io")

	task, err := fx.tasks.Create(ctx, ann.User.ID, &usecase.CreateTaskInput{Description: "write report"})
	require.NoError(t, err)

	updated, err := fx.tasks.Update(ctx, ann.User.ID, task.ID, &usecase.UpdateTaskInput{Completed: ptr(true)})
	require.NoError(t, err)
	assert.True(t, updated.Completed)
	assert.Equal(t, "write report", updated.Description)

	_, err = fx.tasks.Update(ctx, ann.User.ID, task.ID, &usecase.UpdateTaskInput{Description: ptr("")})
	assert.True(t, errors.Is(err, domainerrors.ErrValidationFailed))

	deleted, err := fx.tasks.Delete(ctx, ann.User.ID, task.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, deleted.ID)

	_, err = fx.tasks.Delete(ctx, ann.User.ID, task.ID)
	assert.True(t, errors.Is(err, domainerrors.ErrTaskNotFound))
}

func TestTaskService_ListBuildsQuery(t *testing.T) {
	taskRepo := mockRepo.NewMockTaskRepository(t)
	tasks := NewTaskService(TaskServiceParams{
		TaskRepo:  taskRepo,
		Validator: validation.New(),
		Logger:    newDiscardLogger(),
	})
	ownerID := uuid.New()

	taskRepo.On("List", mock.Anything, entity.TaskQuery{
		OwnerID:   ownerID,
		Completed: ptr(true),
		Filter:    "milk",
		Sort:      &entity.TaskSort{Field: entity.TaskSortDescription},
		Limit:     5,
		Skip:      1,
	}).Return(nil, nil).Once()

	result, err := tasks.List(context.Background(), ownerID, &usecase.ListTasksInput{
		Completed: ptr(true),
		Filter:    "milk",
		SortBy:    "description_asc",
		Limit:     5,
		Skip:      1,
	})

	require.NoError(t, err)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}
