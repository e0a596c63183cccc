package returns

import (
	"github.com/shopspring/decimal"

	"gstrecon/internal/domain"
)

func fold[T, A any](items []T, acc A, step func(A, T) A) A {
	for i := range items {
		acc = step(acc, items[i])
	}
	return acc
}

// money accumulates the four return columns without float drift.
type money struct {
	taxable decimal.Decimal
	cgst    decimal.Decimal
	sgst    decimal.Decimal
	igst    decimal.Decimal
}

func (m money) add(taxable float64, tax domain.TaxComponents) money {
	return money{
		taxable: m.taxable.Add(decimal.NewFromFloat(taxable)),
		cgst:    m.cgst.Add(decimal.NewFromFloat(tax.CGST)),
		sgst:    m.sgst.Add(decimal.NewFromFloat(tax.SGST)),
		igst:    m.igst.Add(decimal.NewFromFloat(tax.IGST)),
	}
}

func (m money) tax() decimal.Decimal {
	return m.cgst.Add(m.sgst).Add(m.igst)
}

func round2(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// taxableOf is the taxable value an invoice reports, falling back to the
// inclusive total for rows stored without one.
func taxableOf(inv *domain.ReconciledInvoice) float64 {
	if inv.TaxableValue > 0 {
		return inv.TaxableValue
	}
	return inv.TotalAmount
}
