package repository

import (
	"context"

	"tasker/internal/domain/entity"
	"tasker/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// MockSessionRepository is a mock of repository.SessionRepository.
type MockSessionRepository struct {
	mock.Mock
}

var _ repository.SessionRepository = (*MockSessionRepository)(nil)

// NewMockSessionRepository creates a MockSessionRepository whose expectations are asserted on cleanup.
func NewMockSessionRepository(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockSessionRepository {
	m := &MockSessionRepository{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockSessionRepository) Create(ctx context.Context, session *entity.SessionToken) error {
	return m.Called(ctx, session).Error(0)
}

func (m *MockSessionRepository) FindByUserAndHash(ctx context.Context, userID uuid.UUID, tokenHash string) (*entity.SessionToken, error) {
	args := m.Called(ctx, userID, tokenHash)

	var session *entity.SessionToken
	if v := args.Get(0); v != nil {
		session = v.(*entity.SessionToken)
	}

	return session, args.Error(1)
}

func (m *MockSessionRepository) DeleteByUserAndHash(ctx context.Context, userID uuid.UUID, tokenHash string) error {
	return m.Called(ctx, userID, tokenHash).Error(0)
}

func (m *MockSessionRepository) DeleteByUser(ctx context.Context, userID uuid.UUID) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockSessionRepository) CountByUser(ctx context.Context, userID uuid.UUID) (int, error) {
	args := m.Called(ctx, userID)

	return args.Int(0), args.Error(1)
}
