package noop

import (
	"context"
	"log"

	"gstrecon/internal/domain"
	"gstrecon/internal/email"
	"gstrecon/internal/port"
)

type noopSender struct {
	frontendURL string
}

// NewNoopSender creates a no-op AlertSender that logs alerts to stdout.
func NewNoopSender(frontendURL string) port.AlertSender {
	return &noopSender{frontendURL: frontendURL}
}

func (s *noopSender) SendMismatchAlert(_ context.Context, toEmail, toName string, alert domain.MismatchAlert) error {
	msg := email.MismatchMessage(toName, s.frontendURL, alert)
	log.Printf("[NOOP EMAIL] %s for %s (%s): invoice %s", msg.Subject, toName, toEmail, alert.InvoiceID)
	return nil
}
