// Package postgres implements the repositories on PostgreSQL through GORM.
package postgres

import (
	"context"

	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/repository"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

type gormTransactionManager struct {
	db *gorm.DB
}

// gormRepositoryFactory hands out repositories bound to one GORM transaction.
type gormRepositoryFactory struct {
	tx *gorm.DB
}

// UserRepo creates a user repository bound to the transaction.
func (f *gormRepositoryFactory) UserRepo() repository.UserRepository {
	return NewUserRepository(f.tx)
}

// TaskRepo creates a task repository bound to the transaction.
func (f *gormRepositoryFactory) TaskRepo() repository.TaskRepository {
	return NewTaskRepository(f.tx)
}

// SessionRepo creates a session repository bound to the transaction.
func (f *gormRepositoryFactory) SessionRepo() repository.SessionRepository {
	return NewSessionRepository(f.tx)
}

// NewTransactionManager returns a TransactionManager backed by GORM transactions.
func NewTransactionManager(db *gorm.DB) repository.TransactionManager {
	return &gormTransactionManager{db: db}
}

// Execute commits when fn returns nil and rolls back otherwise. Begin and
// commit failures surface as ErrTransactionFailed.
func (tm *gormTransactionManager) Execute(ctx context.Context, fn func(repoFactory repository.RepositoryFactory) error) (err error) {
	tx := tm.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return errors.WithStack(domainerrors.ErrTransactionFailed.WithDetails("begin: " + tx.Error.Error()))
	}

	committed := false
	defer func() {
		if committed {
			return
		}
		if r := recover(); r != nil {
			tx.Rollback()
			panic(r)
		}
		if rbErr := tx.Rollback().Error; rbErr != nil {
			err = errors.Wrapf(err, "rollback failed: %v", rbErr)
		}
	}()

	if err := fn(&gormRepositoryFactory{tx: tx}); err != nil {
		return err
	}

	committed = true
	if err := tx.Commit().Error; err != nil {
		return errors.WithStack(domainerrors.ErrTransactionFailed.WithDetails("commit: " + err.Error()))
	}

	return nil
}
