package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"gstrecon/internal/domain"
	"gstrecon/internal/port"
)

type invoiceRepo struct {
	db *sqlx.DB
}

// NewInvoiceRepo creates a new PostgreSQL-backed InvoiceRepository.
func NewInvoiceRepo(db *sqlx.DB) port.InvoiceRepository {
	return &invoiceRepo{db: db}
}

func (r *invoiceRepo) Create(ctx context.Context, inv *domain.ReconciledInvoice) error {
	inv.ID = uuid.New()
	inv.CreatedAt = time.Now().UTC()
	if inv.ParseWarnings == nil {
		inv.ParseWarnings = domain.StringList{}
	}
	if inv.AllGSTINs == nil {
		inv.AllGSTINs = domain.StringList{}
	}

	query := `INSERT INTO invoices (
			id, user_id, source, file_name, file_key, raw_text,
			vendor, invoice_number, date_string, invoice_date, gstin, all_gstins, hsn, product,
			total_amount, declared_tax_rate, declared_tax_regime,
			declared_cgst, declared_sgst, declared_igst, declared_total_tax,
			taxable_value, verified_rate, verified_rate_source, gst_verified,
			corrected_tax_rate, corrected_cgst, corrected_sgst, corrected_igst, corrected_total_tax,
			transaction_type, invoice_type, supplier_gstin, buyer_gstin,
			verification_message, parse_warnings, created_at)
		VALUES (
			:id, :user_id, :source, :file_name, :file_key, :raw_text,
			:vendor, :invoice_number, :date_string, :invoice_date, :gstin, :all_gstins, :hsn, :product,
			:total_amount, :declared_tax_rate, :declared_tax_regime,
			:declared_cgst, :declared_sgst, :declared_igst, :declared_total_tax,
			:taxable_value, :verified_rate, :verified_rate_source, :gst_verified,
			:corrected_tax_rate, :corrected_cgst, :corrected_sgst, :corrected_igst, :corrected_total_tax,
			:transaction_type, :invoice_type, :supplier_gstin, :buyer_gstin,
			:verification_message, :parse_warnings, :created_at)`

	if _, err := r.db.NamedExecContext(ctx, query, inv); err != nil {
		return fmt.Errorf("invoiceRepo.Create: %w", err)
	}
	return nil
}

func (r *invoiceRepo) GetByID(ctx context.Context, ownerID, invoiceID uuid.UUID) (*domain.ReconciledInvoice, error) {
	var inv domain.ReconciledInvoice
	err := r.db.GetContext(ctx, &inv,
		"SELECT * FROM invoices WHERE id = $1 AND user_id = $2", invoiceID, ownerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvoiceNotFound
		}
		return nil, fmt.Errorf("invoiceRepo.GetByID: %w", err)
	}
	return &inv, nil
}

// buildWhereClause scopes a query to one owner and optionally one side.
func buildWhereClause(ownerID uuid.UUID, txType domain.TransactionType) (clause string, args []interface{}) {
	args = []interface{}{ownerID}
	clause = "WHERE user_id = $1"
	if txType != "" {
		clause += " AND transaction_type = $2"
		args = append(args, txType)
	}
	return clause, args
}

func (r *invoiceRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID, txType domain.TransactionType, offset, limit int) ([]domain.ReconciledInvoice, int, error) {
	where, args := buildWhereClause(ownerID, txType)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM invoices "+where, args...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByOwner count: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf("SELECT * FROM invoices %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", where, n+1, n+2)
	var invoices []domain.ReconciledInvoice
	if err := r.db.SelectContext(ctx, &invoices, query, append(args, limit, offset)...); err != nil {
		return nil, 0, fmt.Errorf("invoiceRepo.ListByOwner: %w", err)
	}
	return invoices, total, nil
}

func (r *invoiceRepo) ListByDateRange(ctx context.Context, ownerID uuid.UUID, txType domain.TransactionType, start, end time.Time) ([]domain.ReconciledInvoice, error) {
	where, args := buildWhereClause(ownerID, txType)
	n := len(args)
	// invoices whose date could not be read have a NULL invoice_date and
	// never fall inside a range
	query := fmt.Sprintf("SELECT * FROM invoices %s AND invoice_date >= $%d AND invoice_date < $%d ORDER BY invoice_date, created_at",
		where, n+1, n+2)

	var invoices []domain.ReconciledInvoice
	if err := r.db.SelectContext(ctx, &invoices, query, append(args, start, end)...); err != nil {
		return nil, fmt.Errorf("invoiceRepo.ListByDateRange: %w", err)
	}
	return invoices, nil
}

func (r *invoiceRepo) Delete(ctx context.Context, ownerID, invoiceID uuid.UUID) error {
	result, err := r.db.ExecContext(ctx,
		"DELETE FROM invoices WHERE id = $1 AND user_id = $2", invoiceID, ownerID)
	if err != nil {
		return fmt.Errorf("invoiceRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrInvoiceNotFound
	}
	return nil
}
