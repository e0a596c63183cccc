package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstrecon/internal/domain"
)

// MockPurchaseCreditRepo is a mock implementation of port.PurchaseCreditRepository.
type MockPurchaseCreditRepo struct {
	mock.Mock
}

func (m *MockPurchaseCreditRepo) Create(ctx context.Context, entry *domain.PurchaseCreditEntry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

func (m *MockPurchaseCreditRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.PurchaseCreditEntry, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PurchaseCreditEntry), args.Error(1)
}

func (m *MockPurchaseCreditRepo) DeleteByInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) error {
	args := m.Called(ctx, ownerID, invoiceID)
	return args.Error(0)
}
