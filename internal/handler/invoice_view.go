package handler

import (
	"github.com/google/uuid"

	"gstrecon/internal/domain"
	"gstrecon/internal/service"
	"gstrecon/internal/taxcalc"
)

const notAvailable = "N/A"

// InvoiceView is the display rendering of a reconciled invoice: amounts in
// Indian digit grouping, rates as percentages. Amounts read "N/A" when no
// total could be found.
type InvoiceView struct {
	Vendor              string                 `json:"vendor" example:"Sharma Electronics"`
	InvoiceNo           string                 `json:"invoiceNo" example:"INV-2025-118"`
	Date                string                 `json:"date" example:"04/11/2025"`
	GSTIN               string                 `json:"gstin" example:"29AAACB1234C1Z5"`
	Total               string                 `json:"total" example:"₹1,25,000"`
	GSTRate             string                 `json:"gstRate" example:"18%"`
	GSTAmount           string                 `json:"gstAmount" example:"₹19,067.8"`
	CGST                string                 `json:"cgst" example:"₹9,533.9"`
	SGST                string                 `json:"sgst" example:"₹9,533.9"`
	IGST                string                 `json:"igst" example:"₹0"`
	AdjustedGSTRate     string                 `json:"adjustedGstRate" example:"18%"`
	AdjustedGSTAmount   string                 `json:"adjustedGstAmount" example:"₹19,067.8"`
	AdjustedCGST        string                 `json:"adjustedCgst" example:"₹9,533.9"`
	AdjustedSGST        string                 `json:"adjustedSgst" example:"₹9,533.9"`
	AdjustedIGST        string                 `json:"adjustedIgst" example:"₹0"`
	Product             string                 `json:"product" example:"Laptop"`
	HSN                 string                 `json:"hsn" example:"8471"`
	VerifiedRate        string                 `json:"verifiedRate" example:"18%"`
	GSTVerified         bool                   `json:"gstVerified" example:"true"`
	VerificationMessage string                 `json:"verificationMessage" example:"Verified: Invoice rate 18% matches CBIC 18%"`
	TransactionType     domain.TransactionType `json:"transactionType" example:"SALE"`
	InvoiceType         domain.InvoiceType     `json:"invoiceType" example:"B2B"`
	ParseWarnings       []string               `json:"parseWarnings"`
}

// ReconcileResponse is returned by the upload and voice endpoints.
type ReconcileResponse struct {
	Parsed        InvoiceView `json:"parsed"`
	InvoiceID     uuid.UUID   `json:"invoiceId"`
	CreditEntryID *uuid.UUID  `json:"creditEntryId,omitempty"`
}

// NewInvoiceView renders inv for display.
func NewInvoiceView(inv *domain.ReconciledInvoice) InvoiceView {
	hasTotal := inv.TotalAmount > 0
	money := func(v float64) string {
		if !hasTotal {
			return notAvailable
		}
		return taxcalc.FormatINR(v)
	}

	total := notAvailable
	if hasTotal {
		total = taxcalc.FormatINR(inv.TotalAmount)
	}
	warnings := []string(inv.ParseWarnings)
	if warnings == nil {
		warnings = []string{}
	}

	return InvoiceView{
		Vendor:              inv.Vendor,
		InvoiceNo:           inv.InvoiceNumber,
		Date:                inv.DateString,
		GSTIN:               inv.GSTIN,
		Total:               total,
		GSTRate:             taxcalc.FormatRate(inv.DeclaredTaxRate),
		GSTAmount:           money(inv.DeclaredTotalTax),
		CGST:                money(inv.DeclaredCGST),
		SGST:                money(inv.DeclaredSGST),
		IGST:                money(inv.DeclaredIGST),
		AdjustedGSTRate:     taxcalc.FormatRate(inv.CorrectedTaxRate),
		AdjustedGSTAmount:   money(inv.CorrectedTotalTax),
		AdjustedCGST:        money(inv.CorrectedCGST),
		AdjustedSGST:        money(inv.CorrectedSGST),
		AdjustedIGST:        money(inv.CorrectedIGST),
		Product:             inv.Product,
		HSN:                 inv.HSN,
		VerifiedRate:        taxcalc.FormatRate(inv.VerifiedRate),
		GSTVerified:         inv.GSTVerified,
		VerificationMessage: inv.VerificationMessage,
		TransactionType:     inv.TransactionType,
		InvoiceType:         inv.InvoiceType,
		ParseWarnings:       warnings,
	}
}

func newReconcileResponse(res *service.ReconcileResult) ReconcileResponse {
	return ReconcileResponse{
		Parsed:        NewInvoiceView(res.Invoice),
		InvoiceID:     res.Invoice.ID,
		CreditEntryID: res.CreditEntryID,
	}
}
