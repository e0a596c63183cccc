package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// User is a registered taxpayer. GSTIN is the user's own registration and
// drives supplier/buyer assignment during reconciliation.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Name         string    `db:"name" json:"name"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	GSTIN        string    `db:"gstin" json:"gstin"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt    time.Time `db:"updated_at" json:"updatedAt"`
}

// StringList is a []string persisted as a JSONB array.
type StringList []string

// Value implements driver.Valuer.
func (s StringList) Value() (driver.Value, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(s))
}

// Scan implements sql.Scanner.
func (s *StringList) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*s = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("StringList.Scan: unsupported type %T", src)
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("StringList.Scan: %w", err)
	}
	*s = out
	return nil
}

// ExtractedFields is the result of running every field extractor over one
// normalized text. Each field defaults to its sentinel independently.
type ExtractedFields struct {
	Vendor            string     `db:"vendor" json:"vendor"`
	InvoiceNumber     string     `db:"invoice_number" json:"invoiceNumber"`
	DateString        string     `db:"date_string" json:"dateString"`
	InvoiceDate       *time.Time `db:"invoice_date" json:"invoiceDate"`
	GSTIN             string     `db:"gstin" json:"gstin"`
	AllGSTINs         StringList `db:"all_gstins" json:"allGstins"`
	HSN               string     `db:"hsn" json:"hsn"`
	Product           string     `db:"product" json:"product"`
	TotalAmount       float64    `db:"total_amount" json:"totalAmount"`
	DeclaredTaxRate   float64    `db:"declared_tax_rate" json:"declaredTaxRate"`
	DeclaredTaxRegime TaxRegime  `db:"declared_tax_regime" json:"declaredTaxRegime"`
	DeclaredCGST      float64    `db:"declared_cgst" json:"declaredCgst"`
	DeclaredSGST      float64    `db:"declared_sgst" json:"declaredSgst"`
	DeclaredIGST      float64    `db:"declared_igst" json:"declaredIgst"`
	DeclaredTotalTax  float64    `db:"declared_total_tax" json:"declaredTotalTax"`
}

// TaxComponents is a CGST/SGST/IGST breakdown of one tax amount.
type TaxComponents struct {
	CGST float64 `json:"cgst"`
	SGST float64 `json:"sgst"`
	IGST float64 `json:"igst"`
}

// Total returns the sum of the three components.
func (t TaxComponents) Total() float64 {
	return t.CGST + t.SGST + t.IGST
}

// VerifiedRate is the authoritative rate resolved for one invoice.
type VerifiedRate struct {
	Rate   float64    `json:"rate"`
	Source RateSource `json:"source"`
}

// ReconciledInvoice is the persisted outcome of reconciling one invoice. It
// carries the declared view (as extracted) and the corrected view (as per
// the verified rate).
type ReconciledInvoice struct {
	ID          uuid.UUID `db:"id" json:"id"`
	OwnerUserID uuid.UUID `db:"user_id" json:"ownerUserId"`
	Source      Source    `db:"source" json:"source"`
	FileName    string    `db:"file_name" json:"fileName,omitempty"`
	FileKey     string    `db:"file_key" json:"-"`
	RawText     string    `db:"raw_text" json:"rawText,omitempty"`

	ExtractedFields

	TaxableValue        float64         `db:"taxable_value" json:"taxableValue"`
	VerifiedRate        float64         `db:"verified_rate" json:"verifiedRate"`
	VerifiedRateSource  RateSource      `db:"verified_rate_source" json:"verifiedRateSource"`
	GSTVerified         bool            `db:"gst_verified" json:"gstVerified"`
	CorrectedTaxRate    float64         `db:"corrected_tax_rate" json:"correctedTaxRate"`
	CorrectedCGST       float64         `db:"corrected_cgst" json:"correctedCgst"`
	CorrectedSGST       float64         `db:"corrected_sgst" json:"correctedSgst"`
	CorrectedIGST       float64         `db:"corrected_igst" json:"correctedIgst"`
	CorrectedTotalTax   float64         `db:"corrected_total_tax" json:"correctedTotalTax"`
	TransactionType     TransactionType `db:"transaction_type" json:"transactionType"`
	InvoiceType         InvoiceType     `db:"invoice_type" json:"invoiceType"`
	SupplierGSTIN       string          `db:"supplier_gstin" json:"supplierGSTIN"`
	BuyerGSTIN          string          `db:"buyer_gstin" json:"buyerGSTIN"`
	VerificationMessage string          `db:"verification_message" json:"verificationMessage"`
	ParseWarnings       StringList      `db:"parse_warnings" json:"parseWarnings"`
	CreatedAt           time.Time       `db:"created_at" json:"createdAt"`
}

// EffectiveTax returns the corrected components when any is set, else the
// declared ones. Return summaries always read tax through this.
func (inv *ReconciledInvoice) EffectiveTax() TaxComponents {
	corrected := TaxComponents{CGST: inv.CorrectedCGST, SGST: inv.CorrectedSGST, IGST: inv.CorrectedIGST}
	if corrected.Total() > 0 {
		return corrected
	}
	return TaxComponents{CGST: inv.DeclaredCGST, SGST: inv.DeclaredSGST, IGST: inv.DeclaredIGST}
}

// HasKnownGSTIN reports whether the counterparty GSTIN was extracted.
func (inv *ReconciledInvoice) HasKnownGSTIN() bool {
	return inv.GSTIN != "" && inv.GSTIN != NotFound && inv.GSTIN != Unknown
}

// PurchaseCreditEntry is the GSTR-2A style record derived from a PURCHASE
// invoice. It backs input tax credit aggregation.
type PurchaseCreditEntry struct {
	ID            uuid.UUID `db:"id" json:"id"`
	OwnerUserID   uuid.UUID `db:"user_id" json:"ownerUserId"`
	InvoiceID     uuid.UUID `db:"invoice_id" json:"invoiceId"`
	SupplierGSTIN string    `db:"supplier_gstin" json:"supplierGSTIN"`
	SupplierName  string    `db:"supplier_name" json:"supplierName"`
	InvoiceNumber string    `db:"invoice_number" json:"invoiceNumber"`
	InvoiceDate   time.Time `db:"invoice_date" json:"invoiceDate"`
	TaxableValue  float64   `db:"taxable_value" json:"taxableValue"`
	CGST          float64   `db:"cgst" json:"cgst"`
	SGST          float64   `db:"sgst" json:"sgst"`
	IGST          float64   `db:"igst" json:"igst"`
	TotalGST      float64   `db:"total_gst" json:"totalGST"`
	CreatedAt     time.Time `db:"created_at" json:"createdAt"`
}

// PeriodSummary aggregates reconciled invoices over a date range. It is
// always recomputed on demand.
type PeriodSummary struct {
	Period       string  `json:"period"`
	InvoiceCount int     `json:"invoiceCount"`
	B2BCount     int     `json:"b2bCount"`
	B2CCount     int     `json:"b2cCount"`
	TaxableTotal float64 `json:"taxableTotal"`
	IGSTTotal    float64 `json:"igstTotal"`
	CGSTTotal    float64 `json:"cgstTotal"`
	SGSTTotal    float64 `json:"sgstTotal"`
	TotalTax     float64 `json:"totalTax"`
}

// ITCRow is the per-entry eligibility split of a GSTR-2B style summary.
type ITCRow struct {
	SupplierGSTIN string  `json:"supplierGSTIN"`
	InvoiceNumber string  `json:"invoiceNumber"`
	TotalGST      float64 `json:"totalGST"`
	EligibleITC   float64 `json:"eligibleITC"`
	IneligibleITC float64 `json:"ineligibleITC"`
}

// ITCTotals holds the summary-level input tax credit totals.
type ITCTotals struct {
	TotalEligibleITC   float64 `json:"totalEligibleITC"`
	TotalIneligibleITC float64 `json:"totalIneligibleITC"`
}

// ITCSummary is the GSTR-2B style view over purchase credit entries.
type ITCSummary struct {
	Summary  ITCTotals `json:"summary"`
	Invoices []ITCRow  `json:"invoices"`
}

// HSNSummaryRow totals taxable value and tax per HSN code.
type HSNSummaryRow struct {
	HSN     string  `json:"hsn"`
	Taxable float64 `json:"taxable"`
	CGST    float64 `json:"cgst"`
	SGST    float64 `json:"sgst"`
	IGST    float64 `json:"igst"`
}

// GSTR1Return is the outward supplies return built from SALE invoices.
type GSTR1Return struct {
	GSTIN  string              `json:"gstin"`
	Period string              `json:"period"`
	B2B    []ReconciledInvoice `json:"b2b"`
	B2C    []ReconciledInvoice `json:"b2c"`
	HSN    []HSNSummaryRow     `json:"hsn"`
}

// OutwardSupplies totals SALE invoices for GSTR-3B.
type OutwardSupplies struct {
	Taxable float64 `json:"taxable"`
	CGST    float64 `json:"cgst"`
	SGST    float64 `json:"sgst"`
	IGST    float64 `json:"igst"`
}

// GSTR3BReturn is the net liability view: outward tax less eligible ITC.
type GSTR3BReturn struct {
	GSTIN         string          `json:"gstin"`
	Period        string          `json:"period"`
	Outward       OutwardSupplies `json:"outward"`
	EligibleITC   float64         `json:"eligibleITC"`
	NetTaxPayable float64         `json:"netTaxPayable"`
	ITCCarryOver  float64         `json:"itcCarryForward"`
	PeriodSummary PeriodSummary   `json:"summary"`
}

// RateResolution answers a direct rate query by HSN code or free text.
type RateResolution struct {
	Rate    *float64 `json:"rate"`
	Source  string   `json:"source"`
	Matched string   `json:"matched,omitempty"`
	Notes   string   `json:"notes,omitempty"`
}

// MismatchAlert describes an invoice whose declared rate disagreed with the
// verified rate.
type MismatchAlert struct {
	InvoiceID         uuid.UUID
	InvoiceNumber     string
	Vendor            string
	DeclaredRate      float64
	VerifiedRate      float64
	DeclaredTotalTax  float64
	CorrectedTotalTax float64
}
