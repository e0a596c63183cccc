package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstrecon/internal/domain"
)

// MockRateService is a mock implementation of service.RateService.
type MockRateService struct {
	mock.Mock
}

func (m *MockRateService) Resolve(ctx context.Context, hsn, text string) (*domain.RateResolution, error) {
	args := m.Called(ctx, hsn, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateResolution), args.Error(1)
}
