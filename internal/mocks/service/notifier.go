// Package service holds testify mocks of the domain service interfaces.
package service

import (
	"context"

	"tasker/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockNotifier is a mock of service.Notifier.
type MockNotifier struct {
	mock.Mock
}

var _ service.Notifier = (*MockNotifier)(nil)

// NewMockNotifier creates a MockNotifier whose expectations are asserted on cleanup.
func NewMockNotifier(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockNotifier {
	m := &MockNotifier{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockNotifier) SendWelcome(ctx context.Context, to service.Recipient) error {
	args := m.Called(ctx, to)

	return args.Error(0)
}

func (m *MockNotifier) SendCancellation(ctx context.Context, to service.Recipient) error {
	args := m.Called(ctx, to)

	return args.Error(0)
}
