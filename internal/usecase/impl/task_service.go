package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "tasker/internal/delivery/context"
	"tasker/internal/domain/entity"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/domain/repository"
	"tasker/internal/domain/validation"
	"tasker/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// taskService implements the TaskUsecase interface.
type taskService struct {
	taskRepo  repository.TaskRepository
	validator *validation.Validator
	logger    *slog.Logger
}

// TaskServiceParams holds dependencies for TaskService, injected by Fx.
type TaskServiceParams struct {
	fx.In

	TaskRepo  repository.TaskRepository
	Validator *validation.Validator
	Logger    *slog.Logger
}

// NewTaskService is the constructor for taskService.
func NewTaskService(params TaskServiceParams) usecase.TaskUsecase {
	return &taskService{
		taskRepo:  params.TaskRepo,
		validator: params.Validator,
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *taskService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Create stores a task owned by the caller.
func (srv *taskService) Create(ctx context.Context, ownerID uuid.UUID, input *usecase.CreateTaskInput) (*entity.Task, error) {
	task := &entity.Task{
		Description: input.Description,
		Completed:   input.Completed,
		OwnerID:     ownerID,
	}

	if err := srv.validator.Task(task); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := srv.taskRepo.Create(ctx, task); err != nil {
		srv.log(ctx).Error("Failed to create task", slog.Any("ownerID", ownerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create task")
	}
	srv.log(ctx).Debug("Task created", slog.Any("taskID", task.ID))

	return task, nil
}

// List returns the caller's tasks narrowed by the listing query.
func (srv *taskService) List(ctx context.Context, ownerID uuid.UUID, input *usecase.ListTasksInput) ([]*entity.Task, error) {
	query := entity.TaskQuery{
		OwnerID:   ownerID,
		Completed: input.Completed,
		Filter:    input.Filter,
		Sort:      ParseTaskSort(input.SortBy),
		Limit:     input.Limit,
		Skip:      input.Skip,
	}

	tasks, err := srv.taskRepo.List(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list tasks")
	}

	if tasks == nil {
		tasks = []*entity.Task{}
	}

	return tasks, nil
}

// Get returns one of the caller's tasks.
func (srv *taskService) Get(ctx context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error) {
	task, err := srv.taskRepo.FindByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		return nil, translateTaskLookup(err)
	}

	return task, nil
}

// Update applies the supplied fields and re-validates the task.
func (srv *taskService) Update(ctx context.Context, ownerID, taskID uuid.UUID, input *usecase.UpdateTaskInput) (*entity.Task, error) {
	task, err := srv.taskRepo.FindByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		return nil, translateTaskLookup(err)
	}

	if input.Description != nil {
		task.Description = *input.Description
	}
	if input.Completed != nil {
		task.Completed = *input.Completed
	}

	if err := srv.validator.Task(task); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := srv.taskRepo.Update(ctx, task); err != nil {
		return nil, translateTaskLookup(err)
	}
	srv.log(ctx).Debug("Task updated", slog.Any("taskID", task.ID))

	return task, nil
}

// Delete removes one of the caller's tasks and returns it.
func (srv *taskService) Delete(ctx context.Context, ownerID, taskID uuid.UUID) (*entity.Task, error) {
	task, err := srv.taskRepo.DeleteByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		return nil, translateTaskLookup(err)
	}
	srv.log(ctx).Debug("Task deleted", slog.Any("taskID", task.ID))

	return task, nil
}

// ParseTaskSort reads "<field>_<dir>". Only "asc" sorts ascending; unknown
// fields yield nil so the default order applies.
func ParseTaskSort(sortBy string) *entity.TaskSort {
	field, dir, _ := strings.Cut(sortBy, "_")
	sortField := entity.TaskSortField(field)
	if !sortField.Valid() {
		return nil
	}

	return &entity.TaskSort{Field: sortField, Descending: dir != "asc"}
}

func translateTaskLookup(err error) error {
	if errors.Is(err, repository.ErrTaskNotFound) {
		return domainerrors.ErrTaskNotFound.WrapMessage("task not found")
	}

	return errors.Wrap(err, "failed to access task")
}
