// Package taxcalc derives GST amounts from tax-inclusive totals. All
// arithmetic runs on decimals and rounds half-up to paise.
package taxcalc

import (
	"github.com/shopspring/decimal"

	"gstrecon/internal/domain"
)

var hundred = decimal.NewFromInt(100)

// Round2 rounds v to two decimal places, halves away from zero.
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// TaxFromInclusiveTotal returns the tax contained in a GST-inclusive total:
// total * rate / (100 + rate), rounded to two places.
func TaxFromInclusiveTotal(total, rate float64) float64 {
	if total <= 0 || rate <= 0 {
		return 0
	}
	t := decimal.NewFromFloat(total)
	r := decimal.NewFromFloat(rate)
	return t.Mul(r).Div(hundred.Add(r)).Round(2).InexactFloat64()
}

// SplitByRegime divides a tax amount into components. IGST invoices carry
// the whole amount as IGST; every other regime is split evenly into CGST and
// SGST. The halves may differ from the amount by one paisa after rounding.
func SplitByRegime(tax float64, regime domain.TaxRegime) domain.TaxComponents {
	if regime == domain.RegimeIGST {
		return domain.TaxComponents{IGST: Round2(tax)}
	}
	half := decimal.NewFromFloat(tax).Div(decimal.NewFromInt(2)).Round(2).InexactFloat64()
	return domain.TaxComponents{CGST: half, SGST: half}
}

// Declared is the tax an invoice declares together with its breakdown.
type Declared struct {
	Components domain.TaxComponents
	Total      float64
	Computed   bool
}

// ResolveDeclared settles the declared tax of extracted fields. Printed
// components win when any is non-zero; a printed "Total GST" comes next and
// is split by regime; otherwise the tax is computed from the inclusive
// total at the declared rate. IGST and CGST/SGST never both survive.
func ResolveDeclared(f *domain.ExtractedFields) Declared {
	printed := domain.TaxComponents{CGST: f.DeclaredCGST, SGST: f.DeclaredSGST, IGST: f.DeclaredIGST}
	if printed.CGST != 0 || printed.SGST != 0 || printed.IGST != 0 {
		printed = oneSide(printed, f.DeclaredTaxRegime)
		return Declared{Components: printed, Total: sum(printed)}
	}
	if f.DeclaredTotalTax > 0 {
		return Declared{
			Components: SplitByRegime(f.DeclaredTotalTax, f.DeclaredTaxRegime),
			Total:      Round2(f.DeclaredTotalTax),
		}
	}
	tax := TaxFromInclusiveTotal(f.TotalAmount, f.DeclaredTaxRate)
	return Declared{
		Components: SplitByRegime(tax, f.DeclaredTaxRegime),
		Total:      tax,
		Computed:   true,
	}
}

// Apply writes the resolved declaration back onto the fields.
func (d Declared) Apply(f *domain.ExtractedFields) {
	f.DeclaredCGST = d.Components.CGST
	f.DeclaredSGST = d.Components.SGST
	f.DeclaredIGST = d.Components.IGST
	f.DeclaredTotalTax = d.Total
}

// oneSide drops the pair that does not belong to the regime when text
// carries both IGST and CGST/SGST amounts.
func oneSide(c domain.TaxComponents, regime domain.TaxRegime) domain.TaxComponents {
	if c.IGST == 0 || (c.CGST == 0 && c.SGST == 0) {
		return c
	}
	if regime == domain.RegimeIGST {
		return domain.TaxComponents{IGST: c.IGST}
	}
	return domain.TaxComponents{CGST: c.CGST, SGST: c.SGST}
}

func sum(c domain.TaxComponents) float64 {
	return decimal.NewFromFloat(c.CGST).
		Add(decimal.NewFromFloat(c.SGST)).
		Add(decimal.NewFromFloat(c.IGST)).
		Round(2).InexactFloat64()
}
