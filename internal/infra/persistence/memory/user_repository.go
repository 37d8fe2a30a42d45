package memory

import (
	"bytes"
	"context"

	"tasker/internal/domain/entity"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	store *Store
	inTx  bool
}

// NewUserRepository returns a user repository over the store.
func NewUserRepository(store *Store) repository.UserRepository {
	return &userRepository{store: store}
}

func (repo *userRepository) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	var found *entity.User
	err := repo.store.access(repo.inTx, false, func(d *dataset) error {
		user, ok := d.users[id]
		if !ok {
			return repository.ErrUserNotFound
		}
		found = copyUser(user)

		return nil
	})

	return found, err
}

func (repo *userRepository) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	var found *entity.User
	err := repo.store.access(repo.inTx, false, func(d *dataset) error {
		id, ok := d.emails[email]
		if !ok {
			return repository.ErrUserNotFound
		}
		found = copyUser(d.users[id])

		return nil
	})

	return found, err
}

func (repo *userRepository) Create(_ context.Context, user *entity.User) error {
	return repo.store.access(repo.inTx, true, func(d *dataset) error {
		if _, taken := d.emails[user.Email]; taken {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}
		if user.ID == uuid.Nil {
			user.ID = uuid.New()
		}
		now := repo.store.now()
		user.CreatedAt = now
		user.UpdatedAt = now

		stored := *copyUser(*user)
		stored.Password = ""
		d.users[user.ID] = stored
		d.emails[user.Email] = user.ID

		return nil
	})
}

func (repo *userRepository) Update(_ context.Context, user *entity.User) error {
	return repo.store.access(repo.inTx, true, func(d *dataset) error {
		current, ok := d.users[user.ID]
		if !ok {
			return repository.ErrUserNotFound
		}
		if owner, taken := d.emails[user.Email]; taken && owner != user.ID {
			return domainerrors.ErrUserAlreadyExists.WrapMessage("email already exists")
		}

		delete(d.emails, current.Email)
		current.Name = user.Name
		current.Email = user.Email
		current.PasswordHash = user.PasswordHash
		current.Age = user.Age
		current.UpdatedAt = repo.store.now()
		d.users[user.ID] = current
		d.emails[current.Email] = user.ID

		user.UpdatedAt = current.UpdatedAt

		return nil
	})
}

func (repo *userRepository) UpdateAvatar(_ context.Context, id uuid.UUID, avatar []byte) error {
	return repo.store.access(repo.inTx, true, func(d *dataset) error {
		current, ok := d.users[id]
		if !ok {
			return repository.ErrUserNotFound
		}
		current.Avatar = bytes.Clone(avatar)
		d.users[id] = current

		return nil
	})
}

func (repo *userRepository) Delete(_ context.Context, id uuid.UUID) error {
	return repo.store.access(repo.inTx, true, func(d *dataset) error {
		current, ok := d.users[id]
		if !ok {
			return repository.ErrUserNotFound
		}
		delete(d.users, id)
		delete(d.emails, current.Email)

		return nil
	})
}

func copyUser(user entity.User) *entity.User {
	user.Avatar = bytes.Clone(user.Avatar)

	return &user
}
