package returns

import (
	"sort"

	"github.com/shopspring/decimal"

	"gstrecon/internal/domain"
)

type periodAcc struct {
	money
	count, b2b, b2c int
}

// SummarizePeriod totals invoices for one period. Corrected tax is used
// when present, declared tax otherwise. An invoice counts as B2B when its
// counterparty GSTIN is known.
func SummarizePeriod(invoices []domain.ReconciledInvoice, period string) domain.PeriodSummary {
	acc := fold(invoices, periodAcc{}, func(a periodAcc, inv domain.ReconciledInvoice) periodAcc {
		a.count++
		if inv.HasKnownGSTIN() {
			a.b2b++
		} else {
			a.b2c++
		}
		a.money = a.money.add(taxableOf(&inv), inv.EffectiveTax())
		return a
	})

	return domain.PeriodSummary{
		Period:       period,
		InvoiceCount: acc.count,
		B2BCount:     acc.b2b,
		B2CCount:     acc.b2c,
		TaxableTotal: round2(acc.taxable),
		IGSTTotal:    round2(acc.igst),
		CGSTTotal:    round2(acc.cgst),
		SGSTTotal:    round2(acc.sgst),
		TotalTax:     round2(acc.tax()),
	}
}

type itcAcc struct {
	eligible, ineligible decimal.Decimal
	rows                 []domain.ITCRow
}

// SummarizeITC splits each purchase credit entry into eligible and
// ineligible input tax credit. IGST is eligible when present, else
// CGST+SGST; an entry carrying neither is wholly ineligible. Totals are
// rounded once, at the summary level.
func SummarizeITC(entries []domain.PurchaseCreditEntry) domain.ITCSummary {
	acc := fold(entries, itcAcc{rows: make([]domain.ITCRow, 0, len(entries))}, func(a itcAcc, e domain.PurchaseCreditEntry) itcAcc {
		row := domain.ITCRow{
			SupplierGSTIN: e.SupplierGSTIN,
			InvoiceNumber: e.InvoiceNumber,
			TotalGST:      e.TotalGST,
		}
		switch {
		case e.IGST > 0:
			row.EligibleITC = e.IGST
		case e.CGST+e.SGST > 0:
			row.EligibleITC = decimal.NewFromFloat(e.CGST).Add(decimal.NewFromFloat(e.SGST)).InexactFloat64()
		default:
			row.IneligibleITC = e.TotalGST
		}
		a.eligible = a.eligible.Add(decimal.NewFromFloat(row.EligibleITC))
		a.ineligible = a.ineligible.Add(decimal.NewFromFloat(row.IneligibleITC))
		a.rows = append(a.rows, row)
		return a
	})

	return domain.ITCSummary{
		Summary: domain.ITCTotals{
			TotalEligibleITC:   round2(acc.eligible),
			TotalIneligibleITC: round2(acc.ineligible),
		},
		Invoices: acc.rows,
	}
}

// BuildGSTR1 lays out outward supplies: SALE invoices split into B2B and
// B2C plus a per-HSN summary sorted by code.
func BuildGSTR1(invoices []domain.ReconciledInvoice, gstin, period string) domain.GSTR1Return {
	ret := domain.GSTR1Return{
		GSTIN:  gstin,
		Period: period,
		B2B:    []domain.ReconciledInvoice{},
		B2C:    []domain.ReconciledInvoice{},
	}

	byHSN := map[string]money{}
	for i := range invoices {
		inv := &invoices[i]
		if inv.TransactionType != domain.TransactionSale {
			continue
		}
		if inv.HasKnownGSTIN() {
			ret.B2B = append(ret.B2B, *inv)
		} else {
			ret.B2C = append(ret.B2C, *inv)
		}
		byHSN[inv.HSN] = byHSN[inv.HSN].add(taxableOf(inv), inv.EffectiveTax())
	}

	codes := make([]string, 0, len(byHSN))
	for code := range byHSN {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	ret.HSN = make([]domain.HSNSummaryRow, 0, len(codes))
	for _, code := range codes {
		m := byHSN[code]
		ret.HSN = append(ret.HSN, domain.HSNSummaryRow{
			HSN:     code,
			Taxable: round2(m.taxable),
			CGST:    round2(m.cgst),
			SGST:    round2(m.sgst),
			IGST:    round2(m.igst),
		})
	}
	return ret
}

// BuildGSTR3B nets outward tax on the period's SALE invoices against the
// eligible credit of purchase entries dated in the same period. Surplus
// credit is carried forward rather than reported as negative liability.
func BuildGSTR3B(invoices []domain.ReconciledInvoice, credits []domain.PurchaseCreditEntry, gstin string, period Period) domain.GSTR3BReturn {
	var outward money
	for i := range invoices {
		if invoices[i].TransactionType == domain.TransactionSale {
			outward = outward.add(taxableOf(&invoices[i]), invoices[i].EffectiveTax())
		}
	}

	inPeriod := make([]domain.PurchaseCreditEntry, 0, len(credits))
	for _, c := range credits {
		if period.Contains(c.InvoiceDate) {
			inPeriod = append(inPeriod, c)
		}
	}
	itc := decimal.NewFromFloat(SummarizeITC(inPeriod).Summary.TotalEligibleITC)

	net := outward.tax().Sub(itc)
	carry := decimal.Zero
	if net.IsNegative() {
		carry = net.Neg()
		net = decimal.Zero
	}

	return domain.GSTR3BReturn{
		GSTIN:  gstin,
		Period: period.Label,
		Outward: domain.OutwardSupplies{
			Taxable: round2(outward.taxable),
			CGST:    round2(outward.cgst),
			SGST:    round2(outward.sgst),
			IGST:    round2(outward.igst),
		},
		EligibleITC:   round2(itc),
		NetTaxPayable: round2(net),
		ITCCarryOver:  round2(carry),
		PeriodSummary: SummarizePeriod(invoices, period.Label),
	}
}
