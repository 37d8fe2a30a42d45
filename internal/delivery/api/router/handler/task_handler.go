package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"tasker/internal/delivery/api/response"
	domainerrors "tasker/internal/domain/errors"
	"tasker/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// TaskHandlerParams holds dependencies for TaskHandler, injected by Fx.
type TaskHandlerParams struct {
	fx.In

	TaskUC usecase.TaskUsecase
	Logger *slog.Logger
}

// TaskHandler holds dependencies for task-related handlers.
type TaskHandler struct {
	taskUC usecase.TaskUsecase
	logger *slog.Logger
}

// NewTaskHandler is the constructor for TaskHandler.
func NewTaskHandler(params TaskHandlerParams) *TaskHandler {
	return &TaskHandler{
		taskUC: params.TaskUC,
		logger: params.Logger,
	}
}

// CreateTaskRequest represents the request body for creating a task.
// Any client-supplied owner is ignored.
type CreateTaskRequest struct {
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// CreateTask handles task creation for the caller.
func (h *TaskHandler) CreateTask(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateTaskRequest
	if err := c.Bind(&req); err != nil {
		return errors.WithStack(domainerrors.ErrValidationFailed.WithDetails("request body is malformed"))
	}

	task, err := h.taskUC.Create(c.Request().Context(), ownerID, &usecase.CreateTaskInput{
		Description: req.Description,
		Completed:   req.Completed,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Created(c, newTaskResponse(task))
}

// ListTasks handles GET /tasks?completed=&filter=&sortBy=&limit=&skip=.
func (h *TaskHandler) ListTasks(c echo.Context) error {
	ownerID, err := currentUserID(c)
	if err != nil {
		return err
	}

	input := &usecase.ListTasksInput{
		Filter: c.QueryParam("filter"),
		SortBy: c.QueryParam("sortBy"),
		Limit:  queryInt(c, "limit"),
		Skip:   queryInt(c, "skip"),
	}
	// An empty value means no completion filter.
	if value := c.QueryParam("completed"); value != "" {
		completed := value == "true"
		input.Completed = &completed
	}

	tasks, err := h.taskUC.List(c.Request().Context(), ownerID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTaskResponses(tasks))
}

// GetTask returns one of the caller's tasks.
func (h *TaskHandler) GetTask(c echo.Context) error {
	ownerID, taskID, err := taskTarget(c)
	if err != nil {
		return err
	}

	task, err := h.taskUC.Get(c.Request().Context(), ownerID, taskID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTaskResponse(task))
}

// UpdateTask applies a partial update limited to description and completed.
func (h *TaskHandler) UpdateTask(c echo.Context) error {
	fields, err := bindPartialUpdate(c, usecase.UpdatableTaskFields)
	if err != nil {
		return err
	}

	ownerID, taskID, err := taskTarget(c)
	if err != nil {
		return err
	}

	input := &usecase.UpdateTaskInput{}
	if input.Description, err = optionalField[string](fields, "description"); err != nil {
		return err
	}
	if input.Completed, err = optionalField[bool](fields, "completed"); err != nil {
		return err
	}

	task, err := h.taskUC.Update(c.Request().Context(), ownerID, taskID, input)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTaskResponse(task))
}

// DeleteTask removes one of the caller's tasks.
func (h *TaskHandler) DeleteTask(c echo.Context) error {
	ownerID, taskID, err := taskTarget(c)
	if err != nil {
		return err
	}

	task, err := h.taskUC.Delete(c.Request().Context(), ownerID, taskID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, newTaskResponse(task))
}

// taskTarget resolves the caller and the :id path parameter. A malformed id
// is reported like a missing task.
func taskTarget(c echo.Context) (uuid.UUID, uuid.UUID, error) {
	ownerID, err := currentUserID(c)
	if err != nil {
		return uuid.Nil, uuid.Nil, err
	}

	taskID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, uuid.Nil, domainerrors.ErrTaskNotFound.WrapMessage("malformed task id")
	}

	return ownerID, taskID, nil
}

// queryInt parses an integer query parameter; absent or invalid values are 0.
func queryInt(c echo.Context, name string) int {
	value, err := strconv.Atoi(c.QueryParam(name))
	if err != nil {
		return 0
	}

	return value
}
