package service

import (
	"io"

	"tasker/internal/domain/service"

	"github.com/stretchr/testify/mock"
)

// MockImageProcessor is a mock of service.ImageProcessor.
type MockImageProcessor struct {
	mock.Mock
}

var _ service.ImageProcessor = (*MockImageProcessor)(nil)

// NewMockImageProcessor creates a MockImageProcessor whose expectations are asserted on cleanup.
func NewMockImageProcessor(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockImageProcessor {
	m := &MockImageProcessor{}
	m.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

func (m *MockImageProcessor) Thumbnail(src io.Reader) ([]byte, error) {
	args := m.Called(src)

	var out []byte
	if v := args.Get(0); v != nil {
		out = v.([]byte)
	}

	return out, args.Error(1)
}
