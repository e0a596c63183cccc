package port

import (
	"context"
	"time"

	"github.com/google/uuid"

	"gstrecon/internal/domain"
)

// UserRepository defines the contract for user persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, userID uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateGSTIN(ctx context.Context, userID uuid.UUID, gstin string) error
}

// InvoiceRepository defines the contract for reconciled invoice persistence.
// Every query is scoped to the owning user.
type InvoiceRepository interface {
	Create(ctx context.Context, inv *domain.ReconciledInvoice) error
	GetByID(ctx context.Context, ownerID, invoiceID uuid.UUID) (*domain.ReconciledInvoice, error)
	// ListByOwner pages through invoices newest first. An empty txType lists both sides.
	ListByOwner(ctx context.Context, ownerID uuid.UUID, txType domain.TransactionType, offset, limit int) ([]domain.ReconciledInvoice, int, error)
	// ListByDateRange returns invoices dated in [start, end).
	ListByDateRange(ctx context.Context, ownerID uuid.UUID, txType domain.TransactionType, start, end time.Time) ([]domain.ReconciledInvoice, error)
	Delete(ctx context.Context, ownerID, invoiceID uuid.UUID) error
}

// PurchaseCreditRepository defines the contract for GSTR-2A style credit entries.
type PurchaseCreditRepository interface {
	Create(ctx context.Context, entry *domain.PurchaseCreditEntry) error
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.PurchaseCreditEntry, error)
	DeleteByInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) error
}
