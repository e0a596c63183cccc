package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstrecon/internal/domain"
)

// MockTextExtractor is a mock implementation of port.TextExtractor.
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) ExtractText(ctx context.Context, data []byte, fileType domain.FileType) (string, error) {
	args := m.Called(ctx, data, fileType)
	return args.String(0), args.Error(1)
}
