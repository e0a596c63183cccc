package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"gstrecon/internal/domain"
	"gstrecon/internal/service"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Upload(ctx context.Context, input service.UploadInvoiceInput) (*service.ReconcileResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReconcileResult), args.Error(1)
}

func (m *MockInvoiceService) SubmitVoice(ctx context.Context, ownerID uuid.UUID, input service.VoiceInvoiceInput) (*service.ReconcileResult, error) {
	args := m.Called(ctx, ownerID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ReconcileResult), args.Error(1)
}

func (m *MockInvoiceService) List(ctx context.Context, ownerID uuid.UUID, txType domain.TransactionType, offset, limit int) ([]domain.ReconciledInvoice, int, error) {
	args := m.Called(ctx, ownerID, txType, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ReconciledInvoice), args.Int(1), args.Error(2)
}

func (m *MockInvoiceService) GetByID(ctx context.Context, ownerID, invoiceID uuid.UUID) (*domain.ReconciledInvoice, error) {
	args := m.Called(ctx, ownerID, invoiceID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ReconciledInvoice), args.Error(1)
}

func (m *MockInvoiceService) Delete(ctx context.Context, ownerID, invoiceID uuid.UUID) error {
	args := m.Called(ctx, ownerID, invoiceID)
	return args.Error(0)
}

func (m *MockInvoiceService) GetFileURL(ctx context.Context, ownerID, invoiceID uuid.UUID) (string, error) {
	args := m.Called(ctx, ownerID, invoiceID)
	return args.String(0), args.Error(1)
}
