package repository

import (
	"context"

	"tasker/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// ErrTaskNotFound is returned when no task matches both id and owner.
var ErrTaskNotFound = errors.New("task not found")

// TaskRepository persists tasks. Every lookup is scoped by owner.
type TaskRepository interface {
	Create(ctx context.Context, task *entity.Task) error

	// FindByIDAndOwner returns ErrTaskNotFound for absent and foreign tasks alike.
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Task, error)

	List(ctx context.Context, query entity.TaskQuery) ([]*entity.Task, error)

	Update(ctx context.Context, task *entity.Task) error

	// DeleteByIDAndOwner removes and returns the matching task.
	DeleteByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Task, error)

	// DeleteByOwner removes every task of the owner.
	DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error
}
