package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"gstrecon/internal/domain"
)

// MockAlertSender is a mock implementation of port.AlertSender.
type MockAlertSender struct {
	mock.Mock
}

func (m *MockAlertSender) SendMismatchAlert(ctx context.Context, toEmail, toName string, alert domain.MismatchAlert) error {
	args := m.Called(ctx, toEmail, toName, alert)
	return args.Error(0)
}
