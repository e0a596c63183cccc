package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockRateLookup is a mock implementation of port.RateLookup.
type MockRateLookup struct {
	mock.Mock
}

func (m *MockRateLookup) Lookup(ctx context.Context, keyword string) (string, error) {
	args := m.Called(ctx, keyword)
	return args.String(0), args.Error(1)
}
