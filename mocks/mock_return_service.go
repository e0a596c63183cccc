package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstrecon/internal/domain"
)

// MockReturnService is a mock implementation of service.ReturnService.
type MockReturnService struct {
	mock.Mock
}

func (m *MockReturnService) GSTR1(ctx context.Context, ownerID uuid.UUID, month string) (*domain.GSTR1Return, error) {
	args := m.Called(ctx, ownerID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GSTR1Return), args.Error(1)
}

func (m *MockReturnService) GSTR2A(ctx context.Context, ownerID uuid.UUID) ([]domain.PurchaseCreditEntry, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseCreditEntry), args.Error(1)
}

func (m *MockReturnService) SummarizeITC(ctx context.Context, ownerID uuid.UUID) (*domain.ITCSummary, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ITCSummary), args.Error(1)
}

func (m *MockReturnService) GSTR3B(ctx context.Context, ownerID uuid.UUID, month string) (*domain.GSTR3BReturn, error) {
	args := m.Called(ctx, ownerID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GSTR3BReturn), args.Error(1)
}

func (m *MockReturnService) SummarizePeriod(ctx context.Context, ownerID uuid.UUID, start, end time.Time) (*domain.PeriodSummary, error) {
	args := m.Called(ctx, ownerID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodSummary), args.Error(1)
}

func (m *MockReturnService) MonthlySummary(ctx context.Context, ownerID uuid.UUID, month string) (*domain.PeriodSummary, error) {
	args := m.Called(ctx, ownerID, month)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PeriodSummary), args.Error(1)
}
