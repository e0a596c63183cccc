package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"gstrecon/internal/domain"
)

const gstr2aSheet = "GSTR-2A"

// WriteGSTR2AWorkbook writes the purchase credit entries as a single-sheet
// XLSX workbook. Amounts are written as numbers so the sheet can sum them.
func WriteGSTR2AWorkbook(w io.Writer, entries []domain.PurchaseCreditEntry) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), gstr2aSheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	header := make([]interface{}, len(gstr2aColumns))
	for i, c := range gstr2aColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(gstr2aSheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create header style: %w", err)
	}
	last, _ := excelize.ColumnNumberToName(len(gstr2aColumns))
	if err := f.SetCellStyle(gstr2aSheet, "A1", last+"1", bold); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i := range entries {
		e := &entries[i]
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			e.SupplierGSTIN,
			e.InvoiceNumber,
			formatDate(e),
			e.TaxableValue,
			e.CGST,
			e.SGST,
			e.IGST,
			e.TotalGST,
		}
		if err := f.SetSheetRow(gstr2aSheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
