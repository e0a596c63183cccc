package extract

import (
	"gstrecon/internal/domain"
)

const notFound = domain.NotFound

// ExtractFields runs every extractor over normalized text. Fields are
// independent: a miss in one never affects another. The declared tax
// amounts are as printed; callers resolve them with taxcalc.
func ExtractFields(text string) domain.ExtractedFields {
	dateString := LocateDate(text)
	rate := TaxRate(text)
	amounts := TaxAmounts(text)

	return domain.ExtractedFields{
		Vendor:            Vendor(text),
		InvoiceNumber:     InvoiceNumber(text),
		DateString:        dateString,
		InvoiceDate:       ParseDate(dateString),
		GSTIN:             GSTIN(text),
		AllGSTINs:         AllGSTINs(text),
		HSN:               HSN(text),
		Product:           Product(text),
		TotalAmount:       TotalAmount(text),
		DeclaredTaxRate:   rate.Rate,
		DeclaredTaxRegime: rate.Regime,
		DeclaredCGST:      amounts.CGST,
		DeclaredSGST:      amounts.SGST,
		DeclaredIGST:      amounts.IGST,
		DeclaredTotalTax:  amounts.TotalGST,
	}
}
