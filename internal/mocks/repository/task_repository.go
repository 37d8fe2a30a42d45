package repository

import (
	"context"

	"tasker/internal/domain/entity"
	"tasker/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockTaskRepository is a mock of repository.TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

var _ repository.TaskRepository = (*MockTaskRepository)(nil)

// NewMockTaskRepository creates a MockTaskRepository whose expectations are asserted on cleanup.
func NewMockTaskRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockTaskRepository {
	m := &MockTaskRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockTaskRepository) Create(ctx context.Context, task *entity.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Task, error) {
	args := m.Called(ctx, id, ownerID)

	return taskResult(args)
}

func (m *MockTaskRepository) List(ctx context.Context, query entity.TaskQuery) ([]*entity.Task, error) {
	args := m.Called(ctx, query)

	var tasks []*entity.Task
	if v := args.Get(0); v != nil {
		tasks = v.([]*entity.Task)
	}

	return tasks, args.Error(1)
}

func (m *MockTaskRepository) Update(ctx context.Context, task *entity.Task) error {
	return m.Called(ctx, task).Error(0)
}

func (m *MockTaskRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*entity.Task, error) {
	args := m.Called(ctx, id, ownerID)

	return taskResult(args)
}

func (m *MockTaskRepository) DeleteByOwner(ctx context.Context, ownerID uuid.UUID) error {
	return m.Called(ctx, ownerID).Error(0)
}

func taskResult(args mock.Arguments) (*entity.Task, error) {
	var task *entity.Task
	if v := args.Get(0); v != nil {
		task = v.(*entity.Task)
	}

	return task, args.Error(1)
}
