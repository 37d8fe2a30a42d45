package memory

import (
	"context"

	"tasker/internal/domain/entity"
	"tasker/internal/domain/repository"

	"github.com/google/uuid"
)

type sessionRepository struct {
	store *Store
	inTx  bool
}

// NewSessionRepository returns a session repository over the store.
func NewSessionRepository(store *Store) repository.SessionRepository {
	return &sessionRepository{store: store}
}

func (repo *sessionRepository) Create(_ context.Context, session *entity.SessionToken) error {
	return repo.store.access(repo.inTx, true, func(d *dataset) error {
		if _, ok := d.users[session.UserID]; !ok {
			return repository.ErrUserNotFound
		}
		if session.ID == uuid.Nil {
			session.ID = uuid.New()
		}
		session.CreatedAt = repo.store.now()
		d.sessions[session.ID] = *session

		return nil
	})
}

func (repo *sessionRepository) FindByUserAndHash(_ context.Context, userID uuid.UUID, tokenHash string) (*entity.SessionToken, error) {
	var found *entity.SessionToken
	err := repo.store.access(repo.inTx, false, func(d *dataset) error {
		for _, session := range d.sessions {
			if session.UserID == userID && session.TokenHash == tokenHash {
				found = &session

				return nil
			}
		}

		return repository.ErrSessionNotFound
	})

	return found, err
}

func (repo *sessionRepository) DeleteByUserAndHash(_ context.Context, userID uuid.UUID, tokenHash string) error {
	return repo.store.access(repo.inTx, true, func(d *dataset) error {
		for id, session := range d.sessions {
			if session.UserID == userID && session.TokenHash == tokenHash {
				delete(d.sessions, id)

				return nil
			}
		}

		return repository.ErrSessionNotFound
	})
}

func (repo *sessionRepository) DeleteByUser(_ context.Context, userID uuid.UUID) error {
	return repo.store.access(repo.inTx, true, func(d *dataset) error {
		for id, session := range d.sessions {
			if session.UserID == userID {
				delete(d.sessions, id)
			}
		}

		return nil
	})
}

func (repo *sessionRepository) CountByUser(_ context.Context, userID uuid.UUID) (int, error) {
	count := 0
	err := repo.store.access(repo.inTx, false, func(d *dataset) error {
		for _, session := range d.sessions {
			if session.UserID == userID {
				count++
			}
		}

		return nil
	})

	return count, err
}
