package usecase

import (
	"context"

	"tasker/internal/domain/entity"

	"github.com/google/uuid"
)

// UpdatableTaskFields are the only keys a task update may carry.
var UpdatableTaskFields = []string{"description", "completed"}

// CreateTaskInput defines the data required to create a task.
type CreateTaskInput struct {
	Description string
	Completed   bool
}

// UpdateTaskInput carries the fields present in a task update; nil means untouched.
type UpdateTaskInput struct {
	Description *string
	Completed   *bool
}

// ListTasksInput holds the raw listing query of GET /tasks.
type ListTasksInput struct {
	Completed *bool
	Filter    string
	SortBy    string
	Limit     int
	Skip      int
}

// TaskUsecase defines the task operations, always scoped to the calling owner.
type TaskUsecase interface {
	Create(ctx context.Context, ownerID uuid.UUID, input *CreateTaskInput) (*entity.Task, error)
	List(ctx context.Context, ownerID uuid.UUID, input *ListTasksInput) ([]*entity.Task, error)
	Get(ctx context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error)
	Update(ctx context.Context, ownerID, taskID uuid.UUID, input *UpdateTaskInput) (*entity.Task, error)
	Delete(ctx context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error)
}
