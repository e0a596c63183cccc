package port

import (
	"context"

	"gstrecon/internal/domain"
)

// AlertSender notifies an owner that an invoice's declared rate was corrected.
type AlertSender interface {
	SendMismatchAlert(ctx context.Context, toEmail, toName string, alert domain.MismatchAlert) error
}
