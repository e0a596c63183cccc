package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstrecon/internal/domain"
	"gstrecon/internal/port"
)

type purchaseCreditRepo struct {
	db *sqlx.DB
}

// NewPurchaseCreditRepo creates a new PostgreSQL-backed PurchaseCreditRepository.
func NewPurchaseCreditRepo(db *sqlx.DB) port.PurchaseCreditRepository {
	return &purchaseCreditRepo{db: db}
}

func (r *purchaseCreditRepo) Create(ctx context.Context, entry *domain.PurchaseCreditEntry) error {
	entry.ID = uuid.New()
	entry.CreatedAt = time.Now().UTC()

	query := `INSERT INTO purchase_credit_entries (
			id, user_id, invoice_id, supplier_gstin, supplier_name, invoice_number, invoice_date,
			taxable_value, cgst, sgst, igst, total_gst, created_at)
		VALUES (
			:id, :user_id, :invoice_id, :supplier_gstin, :supplier_name, :invoice_number, :invoice_date,
			:taxable_value, :cgst, :sgst, :igst, :total_gst, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, entry); err != nil {
		return fmt.Errorf("purchaseCreditRepo.Create: %w", err)
	}
	return nil
}

func (r *purchaseCreditRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]domain.PurchaseCreditEntry, error) {
	var entries []domain.PurchaseCreditEntry
	err := r.db.SelectContext(ctx, &entries,
		"SELECT * FROM purchase_credit_entries WHERE user_id = $1 ORDER BY invoice_date DESC, created_at DESC",
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("purchaseCreditRepo.ListByOwner: %w", err)
	}
	return entries, nil
}

// DeleteByInvoice removes the entry derived from an invoice. Missing rows
// are not an error: sale invoices never had one.
func (r *purchaseCreditRepo) DeleteByInvoice(ctx context.Context, ownerID, invoiceID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM purchase_credit_entries WHERE invoice_id = $1 AND user_id = $2", invoiceID, ownerID)
	if err != nil {
		return fmt.Errorf("purchaseCreditRepo.DeleteByInvoice: %w", err)
	}
	return nil
}
