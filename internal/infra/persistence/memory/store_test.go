package memory

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"tasker/internal/domain/entity"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, store *Store, email string) *entity.User {
	t.Helper()

	user := &entity.User{Name: "Ann", Email: email, PasswordHash: "hash"}
	require.NoError(t, NewUserRepository(store).Create(context.Background(), user))

	return user
}

func TestUserRepository_DuplicateEmailRejected(t *testing.T) {
	store := NewStore()
	first := seedUser(t, store, "ann@x.io")

	err := NewUserRepository(store).Create(context.Background(), &entity.User{Name: "Other", Email: "ann@x.io", PasswordHash: "h"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))

	stored, err := NewUserRepository(store).FindByEmail(context.Background(), "ann@x.io")
	require.NoError(t, err)
	assert.Equal(t, first.ID, stored.ID)
	assert.Equal(t, "Ann", stored.Name)
}

func TestUserRepository_UpdateMovesEmailIndex(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewUserRepository(store)
	user := seedUser(t, store, "ann@x.io")
	other := seedUser(t, store, "bob@x.io")

	user.Email = "ann2@x.io"
	require.NoError(t, repo.Update(ctx, user))

	_, err := repo.FindByEmail(ctx, "ann@x.io")
	assert.ErrorIs(t, err, repository.ErrUserNotFound)

	other.Email = "ann2@x.io"
	err = repo.Update(ctx, other)
	assert.True(t, errors.Is(err, domainerrors.ErrUserAlreadyExists))
}

func TestUserRepository_AvatarIsCopied(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewUserRepository(store)
	user := seedUser(t, store, "ann@x.io")

	avatar := []byte{1, 2, 3}
	require.NoError(t, repo.UpdateAvatar(ctx, user.ID, avatar))
	avatar[0] = 9

	stored, err := repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, stored.Avatar)

	require.NoError(t, repo.UpdateAvatar(ctx, user.ID, nil))
	stored, err = repo.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.False(t, stored.HasAvatar())
}

func TestTaskRepository_ScopedByOwner(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewTaskRepository(store)
	ann := seedUser(t, store, "ann@x.io")
	bob := seedUser(t, store, "bob@x.io")

	task := &entity.Task{Description: "ann's task", OwnerID: ann.ID}
	require.NoError(t, repo.Create(ctx, task))

	_, err := repo.FindByIDAndOwner(ctx, task.ID, bob.ID)
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)

	_, err = repo.DeleteByIDAndOwner(ctx, task.ID, bob.ID)
	assert.ErrorIs(t, err, repository.ErrTaskNotFound)

	foreign := &entity.Task{ID: task.ID, Description: "hijack", OwnerID: bob.ID}
	assert.ErrorIs(t, repo.Update(ctx, foreign), repository.ErrTaskNotFound)

	found, err := repo.FindByIDAndOwner(ctx, task.ID, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann's task", found.Description)
}

func TestTaskRepository_List(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := NewTaskRepository(store)
	owner := seedUser(t, store, "ann@x.io")
	other := seedUser(t, store, "bob@x.io")

	for i := 1; i <= 12; i++ {
		require.NoError(t, repo.Create(ctx, &entity.Task{
			Description: fmt.Sprintf("task %02d", i),
			Completed:   i%2 == 0,
			OwnerID:     owner.ID,
		}))
	}
	require.NoError(t, repo.Create(ctx, &entity.Task{Description: "Buy MILK", OwnerID: owner.ID}))
	require.NoError(t, repo.Create(ctx, &entity.Task{Description: "foreign", Completed: true, OwnerID: other.ID}))

	completed := true
	tasks, err := repo.List(ctx, entity.TaskQuery{OwnerID: owner.ID, Completed: &completed})
	require.NoError(t, err)
	assert.Len(t, tasks, 6)
	for _, task := range tasks {
		assert.True(t, task.Completed)
		assert.Equal(t, owner.ID, task.OwnerID)
	}

	tasks, err = repo.List(ctx, entity.TaskQuery{OwnerID: owner.ID, Filter: "milk"})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy MILK", tasks[0].Description)

	tasks, err = repo.List(ctx, entity.TaskQuery{OwnerID: owner.ID, Limit: 5, Skip: 1})
	require.NoError(t, err)
	require.Len(t, tasks, 5)
	assert.Equal(t, "task 06", tasks[0].Description)
	assert.Equal(t, "task 10", tasks[4].Description)

	tasks, err = repo.List(ctx, entity.TaskQuery{
		OwnerID: owner.ID,
		Sort:    &entity.TaskSort{Field: entity.TaskSortDescription, Descending: true},
	})
	require.NoError(t, err)
	assert.Equal(t, "task 12", tasks[0].Description)
	assert.Equal(t, "Buy MILK", tasks[len(tasks)-1].Description)

	tasks, err = repo.List(ctx, entity.TaskQuery{OwnerID: owner.ID, Limit: 5, Skip: 10})
	require.NoError(t, err)
	assert.Empty(t, tasks)

	tasks, err = repo.List(ctx, entity.TaskQuery{OwnerID: owner.ID, Limit: 1 << 62, Skip: 3})
	require.NoError(t, err)
	assert.Empty(t, tasks)

	tasks, err = repo.List(ctx, entity.TaskQuery{OwnerID: owner.ID, Limit: math.MaxInt})
	require.NoError(t, err)
	assert.Len(t, tasks, 13)
}

func TestTransactionManager_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	user := seedUser(t, store, "ann@x.io")
	require.NoError(t, NewTaskRepository(store).Create(ctx, &entity.Task{Description: "keep", OwnerID: user.ID}))

	boom := errors.New("boom")
	err := NewTransactionManager(store).Execute(ctx, func(f repository.RepositoryFactory) error {
		require.NoError(t, f.TaskRepo().DeleteByOwner(ctx, user.ID))
		require.NoError(t, f.UserRepo().Delete(ctx, user.ID))

		return boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = NewUserRepository(store).FindByID(ctx, user.ID)
	require.NoError(t, err)
	tasks, err := NewTaskRepository(store).List(ctx, entity.TaskQuery{OwnerID: user.ID})
	require.NoError(t, err)
	assert.Len(t, tasks, 1)
}

func TestTransactionManager_Commits(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	user := seedUser(t, store, "ann@x.io")
	sessions := NewSessionRepository(store)
	require.NoError(t, sessions.Create(ctx, &entity.SessionToken{UserID: user.ID, TokenHash: "a"}))

	err := NewTransactionManager(store).Execute(ctx, func(f repository.RepositoryFactory) error {
		if err := f.SessionRepo().DeleteByUser(ctx, user.ID); err != nil {
			return err
		}

		return f.UserRepo().Delete(ctx, user.ID)
	})
	require.NoError(t, err)

	count, err := sessions.CountByUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestSessionRepository_PerTokenDelete(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	store.now = func() time.Time { return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC) }
	user := seedUser(t, store, "ann@x.io")
	repo := NewSessionRepository(store)

	require.NoError(t, repo.Create(ctx, &entity.SessionToken{UserID: user.ID, TokenHash: "a"}))
	require.NoError(t, repo.Create(ctx, &entity.SessionToken{UserID: user.ID, TokenHash: "b"}))

	require.NoError(t, repo.DeleteByUserAndHash(ctx, user.ID, "a"))

	_, err := repo.FindByUserAndHash(ctx, user.ID, "a")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	_, err = repo.FindByUserAndHash(ctx, user.ID, "b")
	assert.NoError(t, err)

	_, err = repo.FindByUserAndHash(ctx, uuid.New(), "b")
	assert.ErrorIs(t, err, repository.ErrSessionNotFound)

	err = repo.Create(ctx, &entity.SessionToken{UserID: uuid.New(), TokenHash: "c"})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}
