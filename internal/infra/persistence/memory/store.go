// Package memory is an in-process implementation of the persistence layer.
// It backs local runs without PostgreSQL and the HTTP end-to-end tests.
package memory

import (
	"context"
	"maps"
	"sync"
	"time"

	"tasker/internal/domain/entity"
	"tasker/internal/domain/repository"

	"github.com/google/uuid"
)

type taskRecord struct {
	task entity.Task
	seq  int64
}

type dataset struct {
	users    map[uuid.UUID]entity.User
	emails   map[string]uuid.UUID
	tasks    map[uuid.UUID]taskRecord
	sessions map[uuid.UUID]entity.SessionToken
	seq      int64
}

func newDataset() *dataset {
	return &dataset{
		users:    make(map[uuid.UUID]entity.User),
		emails:   make(map[string]uuid.UUID),
		tasks:    make(map[uuid.UUID]taskRecord),
		sessions: make(map[uuid.UUID]entity.SessionToken),
	}
}

func (d *dataset) clone() *dataset {
	return &dataset{
		users:    maps.Clone(d.users),
		emails:   maps.Clone(d.emails),
		tasks:    maps.Clone(d.tasks),
		sessions: maps.Clone(d.sessions),
		seq:      d.seq,
	}
}

// Store holds all records behind one lock.
type Store struct {
	mu   sync.RWMutex
	data *dataset
	now  func() time.Time
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		data: newDataset(),
		now:  time.Now,
	}
}

// access runs fn against the dataset, taking the lock unless the caller
// already holds it inside a transaction.
func (s *Store) access(inTx, write bool, fn func(d *dataset) error) error {
	if !inTx {
		if write {
			s.mu.Lock()
			defer s.mu.Unlock()
		} else {
			s.mu.RLock()
			defer s.mu.RUnlock()
		}
	}

	return fn(s.data)
}

type transactionManager struct {
	store *Store
}

// NewTransactionManager runs each transaction under the store's write lock and
// restores the previous state when the callback fails.
func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

func (tm *transactionManager) Execute(_ context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	snapshot := tm.store.data.clone()
	committed := false
	defer func() {
		if !committed {
			tm.store.data = snapshot
		}
	}()

	if err := fn(&repositoryFactory{store: tm.store}); err != nil {
		return err
	}
	committed = true

	return nil
}

type repositoryFactory struct {
	store *Store
}

func (f *repositoryFactory) UserRepo() repository.UserRepository {
	return &userRepository{store: f.store, inTx: true}
}

func (f *repositoryFactory) TaskRepo() repository.TaskRepository {
	return &taskRepository{store: f.store, inTx: true}
}

func (f *repositoryFactory) SessionRepo() repository.SessionRepository {
	return &sessionRepository{store: f.store, inTx: true}
}
