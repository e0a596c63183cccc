// Package export renders GST return data as downloadable CSV and XLSX files.
package export

import (
	"encoding/csv"
	"io"
	"strconv"

	"gstrecon/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// gstr2aColumns is the header row shared by the CSV and XLSX GSTR-2A exports.
var gstr2aColumns = []string{
	"Supplier GSTIN",
	"Invoice No",
	"Invoice Date",
	"Taxable Value",
	"CGST",
	"SGST",
	"IGST",
	"Total GST",
}

// gstr1Columns is the header row of the GSTR-1 CSV export.
var gstr1Columns = []string{
	"Section",
	"Buyer GSTIN",
	"Invoice No",
	"Invoice Date",
	"HSN",
	"Taxable Value",
	"CGST",
	"SGST",
	"IGST",
}

// CSVWriter wraps csv.Writer for exporting return rows.
type CSVWriter struct {
	csv *csv.Writer
}

// NewCSVWriter creates a CSVWriter that writes the BOM and then CSV to w.
func NewCSVWriter(w io.Writer) (*CSVWriter, error) {
	if _, err := w.Write(BOM); err != nil {
		return nil, err
	}
	return &CSVWriter{csv: csv.NewWriter(w)}, nil
}

// WriteGSTR2A writes the header and one row per purchase credit entry.
func (w *CSVWriter) WriteGSTR2A(entries []domain.PurchaseCreditEntry) error {
	if err := w.csv.Write(gstr2aColumns); err != nil {
		return err
	}
	for i := range entries {
		if err := w.csv.Write(creditEntryToRow(&entries[i])); err != nil {
			return err
		}
	}
	w.csv.Flush()
	return w.csv.Error()
}

// WriteGSTR1 writes the B2B rows then the B2C rows of a GSTR-1 return.
func (w *CSVWriter) WriteGSTR1(ret *domain.GSTR1Return) error {
	if err := w.csv.Write(gstr1Columns); err != nil {
		return err
	}
	sections := []struct {
		name     string
		invoices []domain.ReconciledInvoice
	}{
		{"B2B", ret.B2B},
		{"B2C", ret.B2C},
	}
	for _, s := range sections {
		for i := range s.invoices {
			if err := w.csv.Write(saleToRow(s.name, &s.invoices[i])); err != nil {
				return err
			}
		}
	}
	w.csv.Flush()
	return w.csv.Error()
}

func creditEntryToRow(e *domain.PurchaseCreditEntry) []string {
	return []string{
		e.SupplierGSTIN,
		e.InvoiceNumber,
		formatDate(e),
		formatMoney(e.TaxableValue),
		formatMoney(e.CGST),
		formatMoney(e.SGST),
		formatMoney(e.IGST),
		formatMoney(e.TotalGST),
	}
}

func saleToRow(section string, inv *domain.ReconciledInvoice) []string {
	tax := inv.EffectiveTax()
	date := ""
	if inv.InvoiceDate != nil {
		date = inv.InvoiceDate.Format("2006-01-02")
	}
	taxable := inv.TaxableValue
	if taxable == 0 {
		taxable = inv.TotalAmount
	}
	return []string{
		section,
		inv.GSTIN,
		inv.InvoiceNumber,
		date,
		inv.HSN,
		formatMoney(taxable),
		formatMoney(tax.CGST),
		formatMoney(tax.SGST),
		formatMoney(tax.IGST),
	}
}

func formatDate(e *domain.PurchaseCreditEntry) string {
	if e.InvoiceDate.IsZero() {
		return ""
	}
	return e.InvoiceDate.Format("2006-01-02")
}

func formatMoney(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
