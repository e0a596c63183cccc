package service

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"gstrecon/internal/domain"
	"gstrecon/internal/extract"
	"gstrecon/internal/port"
	"gstrecon/internal/rates"
	"gstrecon/internal/taxcalc"
)

const voiceProduct = "Voice-entry invoice"

// VoiceFields are the structured values captured by a voice or manual entry.
// They replace text extraction for VOICE submissions.
type VoiceFields struct {
	Vendor        string
	InvoiceNumber string
	Date          string
	GSTIN         string
	HSN           string
	Total         float64
	GSTRate       float64
}

// ReconcileInput is everything the engine needs to reconcile one invoice.
type ReconcileInput struct {
	RawText         string
	Source          domain.Source
	TransactionType domain.TransactionType
	OwnerUserID     uuid.UUID
	OwnerGSTIN      string
	OwnerEmail      string
	OwnerName       string
	FileName        string
	FileKey         string
	Voice           *VoiceFields
}

// ReconcileResult is the stored invoice plus, for purchases, the id of the
// credit entry written alongside it. CreditEntryID is nil when that second
// write failed.
type ReconcileResult struct {
	Invoice       *domain.ReconciledInvoice
	CreditEntryID *uuid.UUID
}

// RateVerifier resolves the authoritative rate for a lookup keyword.
type RateVerifier interface {
	Verify(ctx context.Context, keyword string) domain.VerifiedRate
}

// ReconcileService turns raw invoice text into a persisted reconciled invoice.
type ReconcileService interface {
	Reconcile(ctx context.Context, input ReconcileInput) (*ReconcileResult, error)
}

type reconcileService struct {
	invoiceRepo port.InvoiceRepository
	creditRepo  port.PurchaseCreditRepository
	verifier    RateVerifier
	alerts      port.AlertSender
}

// NewReconcileService creates a new ReconcileService implementation. alerts
// may be nil to disable mismatch notifications.
func NewReconcileService(
	invoiceRepo port.InvoiceRepository,
	creditRepo port.PurchaseCreditRepository,
	verifier RateVerifier,
	alerts port.AlertSender,
) ReconcileService {
	return &reconcileService{
		invoiceRepo: invoiceRepo,
		creditRepo:  creditRepo,
		verifier:    verifier,
		alerts:      alerts,
	}
}

func (s *reconcileService) Reconcile(ctx context.Context, input ReconcileInput) (*ReconcileResult, error) {
	if !input.TransactionType.Valid() {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrInvalidTransactionType)
	}
	if input.OwnerUserID == uuid.Nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrValidation, domain.ErrMissingOwner)
	}
	if input.Source == "" {
		input.Source = domain.SourcePDF
	}

	var fields domain.ExtractedFields
	switch input.Source {
	case domain.SourceVoice:
		if input.Voice == nil {
			return nil, domain.ErrNoInvoiceData
		}
		fields = voiceExtractedFields(input.Voice)
	default:
		fields = extract.ExtractFields(extract.Normalize(input.RawText))
	}

	declared := taxcalc.ResolveDeclared(&fields)
	declared.Apply(&fields)

	product := fields.Product
	if input.Source == domain.SourceVoice {
		product = ""
	}
	verified := s.verifier.Verify(ctx, rates.Keyword(fields.HSN, product))

	inv := &domain.ReconciledInvoice{
		OwnerUserID:        input.OwnerUserID,
		Source:             input.Source,
		FileName:           input.FileName,
		FileKey:            input.FileKey,
		RawText:            input.RawText,
		ExtractedFields:    fields,
		VerifiedRate:       verified.Rate,
		VerifiedRateSource: verified.Source,
		GSTVerified:        verified.Rate == fields.DeclaredTaxRate,
		TransactionType:    input.TransactionType,
	}

	inv.TaxableValue = fields.TotalAmount
	if input.Source == domain.SourceVoice && fields.TotalAmount > 0 {
		inv.TaxableValue = taxcalc.Round2(fields.TotalAmount - declared.Total)
	}

	applyCorrection(inv, declared)
	inv.SupplierGSTIN, inv.BuyerGSTIN = assignGSTINRoles(input.TransactionType, input.OwnerGSTIN, fields.GSTIN)
	inv.InvoiceType = classify(inv)
	inv.VerificationMessage = verificationMessage(inv)
	inv.ParseWarnings = parseWarnings(&fields)

	if err := s.invoiceRepo.Create(ctx, inv); err != nil {
		return nil, err
	}

	result := &ReconcileResult{Invoice: inv}
	if inv.TransactionType == domain.TransactionPurchase {
		entry := creditEntryFor(inv, time.Now().UTC())
		if err := s.creditRepo.Create(ctx, entry); err != nil {
			log.Printf("reconcileService.Reconcile: credit entry for invoice %s not saved: %v", inv.ID, err)
		} else {
			result.CreditEntryID = &entry.ID
		}
	}

	if !inv.GSTVerified {
		s.sendMismatchAlert(ctx, input, inv)
	}

	return result, nil
}

func (s *reconcileService) sendMismatchAlert(ctx context.Context, input ReconcileInput, inv *domain.ReconciledInvoice) {
	if s.alerts == nil || input.OwnerEmail == "" {
		return
	}
	alert := domain.MismatchAlert{
		InvoiceID:         inv.ID,
		InvoiceNumber:     inv.InvoiceNumber,
		Vendor:            inv.Vendor,
		DeclaredRate:      inv.DeclaredTaxRate,
		VerifiedRate:      inv.VerifiedRate,
		DeclaredTotalTax:  inv.DeclaredTotalTax,
		CorrectedTotalTax: inv.CorrectedTotalTax,
	}
	if err := s.alerts.SendMismatchAlert(ctx, input.OwnerEmail, input.OwnerName, alert); err != nil {
		log.Printf("reconcileService.Reconcile: mismatch alert for invoice %s not sent: %v", inv.ID, err)
	}
}

func voiceExtractedFields(v *VoiceFields) domain.ExtractedFields {
	gstin := strings.ToUpper(strings.TrimSpace(v.GSTIN))
	all := domain.StringList{}
	if extract.ValidGSTIN(gstin) {
		all = append(all, gstin)
	}
	date := strings.TrimSpace(v.Date)

	return domain.ExtractedFields{
		Vendor:            orNotFound(v.Vendor),
		InvoiceNumber:     orNotFound(v.InvoiceNumber),
		DateString:        orNotFound(date),
		InvoiceDate:       extract.ParseDate(date),
		GSTIN:             orNotFound(gstin),
		AllGSTINs:         all,
		HSN:               orNotFound(v.HSN),
		Product:           voiceProduct,
		TotalAmount:       v.Total,
		DeclaredTaxRate:   v.GSTRate,
		DeclaredTaxRegime: domain.RegimeCGSTSGST,
	}
}

// applyCorrection fills the corrected view. A verified invoice keeps its
// declared tax; otherwise tax is recomputed at the verified rate and split
// by the declared regime. The corrected total is always the sum of its
// components.
func applyCorrection(inv *domain.ReconciledInvoice, declared taxcalc.Declared) {
	rate := inv.DeclaredTaxRate
	components := declared.Components
	if !inv.GSTVerified {
		rate = inv.VerifiedRate
		tax := taxcalc.TaxFromInclusiveTotal(inv.TotalAmount, inv.VerifiedRate)
		components = taxcalc.SplitByRegime(tax, inv.DeclaredTaxRegime)
	}

	inv.CorrectedTaxRate = rate
	inv.CorrectedCGST = components.CGST
	inv.CorrectedSGST = components.SGST
	inv.CorrectedIGST = components.IGST
	inv.CorrectedTotalTax = taxcalc.Round2(components.Total())
}

// assignGSTINRoles places the owner's GSTIN on its side of the transaction
// and the extracted GSTIN on the other. A counterparty GSTIN equal to the
// owner's own is ignored.
func assignGSTINRoles(tx domain.TransactionType, ownerGSTIN, extracted string) (supplier, buyer string) {
	mine := strings.ToUpper(strings.TrimSpace(ownerGSTIN))
	if mine == "" {
		mine = domain.Unknown
	}
	other := domain.Unknown
	if extracted != "" && extracted != domain.NotFound && extracted != mine {
		other = extracted
	}

	if tx == domain.TransactionSale {
		return mine, other
	}
	return other, mine
}

func classify(inv *domain.ReconciledInvoice) domain.InvoiceType {
	if inv.Source == domain.SourceVoice {
		return domain.InvoiceTypeVoice
	}
	counterparty := inv.BuyerGSTIN
	if inv.TransactionType == domain.TransactionPurchase {
		counterparty = inv.SupplierGSTIN
	}
	if counterparty == domain.Unknown {
		return domain.InvoiceTypeB2C
	}
	return domain.InvoiceTypeB2B
}

func verificationMessage(inv *domain.ReconciledInvoice) string {
	declared := taxcalc.FormatRate(inv.DeclaredTaxRate)
	verified := taxcalc.FormatRate(inv.VerifiedRate)
	if inv.GSTVerified {
		return fmt.Sprintf("Verified: Invoice rate %s matches CBIC %s", declared, verified)
	}
	return fmt.Sprintf("Mismatch: Invoice rate %s vs CBIC %s (GST adjusted as per CBIC rate)", declared, verified)
}

func parseWarnings(f *domain.ExtractedFields) domain.StringList {
	warnings := domain.StringList{}
	if f.GSTIN == domain.NotFound {
		warnings = append(warnings, "GSTIN not found")
	}
	if f.TotalAmount <= 0 {
		warnings = append(warnings, "Total amount not found")
	}
	if f.InvoiceDate == nil {
		warnings = append(warnings, "Invoice date not found or unreadable")
	}
	if f.InvoiceNumber == domain.NotFound {
		warnings = append(warnings, "Invoice number not found")
	}
	return warnings
}

// creditEntryFor derives the GSTR-2A entry of a stored purchase invoice.
// Missing numbers fall back to the invoice id and missing dates to now.
func creditEntryFor(inv *domain.ReconciledInvoice, now time.Time) *domain.PurchaseCreditEntry {
	name := inv.Vendor
	if name == domain.NotFound {
		name = domain.Unknown
	}
	number := inv.InvoiceNumber
	if number == domain.NotFound {
		number = inv.ID.String()
	}
	date := now
	if inv.InvoiceDate != nil {
		date = *inv.InvoiceDate
	}

	tax := inv.EffectiveTax()
	total := inv.CorrectedTotalTax
	if total == 0 {
		total = inv.DeclaredTotalTax
	}

	return &domain.PurchaseCreditEntry{
		OwnerUserID:   inv.OwnerUserID,
		InvoiceID:     inv.ID,
		SupplierGSTIN: inv.SupplierGSTIN,
		SupplierName:  name,
		InvoiceNumber: number,
		InvoiceDate:   date,
		TaxableValue:  inv.TaxableValue,
		CGST:          tax.CGST,
		SGST:          tax.SGST,
		IGST:          tax.IGST,
		TotalGST:      total,
	}
}

func orNotFound(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return domain.NotFound
	}
	return s
}
