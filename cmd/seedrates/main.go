// Command seedrates turns the GST rate schedule workbook into a SQL seed for
// the hsn_rates table. Goods come from the HSN sheet, services from the SAC
// sheet; a code carrying several slabs gets one row per slab with the
// qualifying note kept in condition_desc.
//
// Usage: go run ./cmd/seedrates -in rates.xlsx -out db/seeds/hsn_rates.sql
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

const batchSize = 500

type rateRow struct {
	code        string
	description string
	rate        float64
	condition   string
}

// sheetLayout locates the columns of one sheet. Code and description
// columns are listed most specific first.
type sheetLayout struct {
	name     string
	index    int
	firstRow int
	codeCols []int
	descCols []int
	rateCol  int
	freeText bool
}

var (
	goodsSheet = sheetLayout{
		name: "HSN_Master_v1", index: 0, firstRow: 5,
		codeCols: []int{10, 8, 5}, descCols: []int{12, 9, 7}, rateCol: 13,
	}
	servicesSheet = sheetLayout{
		name: "SAC_Master", index: 2, firstRow: 3,
		codeCols: []int{2, 0}, descCols: []int{3, 1}, rateCol: 4, freeText: true,
	}
)

func main() {
	in := flag.String("in", "gst_rates.xlsx", "rate schedule workbook")
	out := flag.String("out", "db/seeds/hsn_rates.sql", "SQL file to write")
	flag.Parse()

	if err := run(*in, *out); err != nil {
		log.Fatal(err)
	}
}

func run(inPath, outPath string) error {
	f, err := excelize.OpenFile(inPath)
	if err != nil {
		return fmt.Errorf("open workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	seen := make(map[string]bool)
	var rows []rateRow
	for _, layout := range []sheetLayout{goodsSheet, servicesSheet} {
		sheetRows, err := readSheet(f, layout, seen)
		if err != nil {
			return fmt.Errorf("read %s: %w", layout.name, err)
		}
		log.Printf("%s: %d rows", layout.name, len(sheetRows))
		rows = append(rows, sheetRows...)
	}

	file, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	defer func() { _ = file.Close() }()

	if err := writeSeed(file, rows); err != nil {
		return err
	}
	log.Printf("wrote %d rate rows to %s", len(rows), outPath)
	return nil
}

func readSheet(f *excelize.File, layout sheetLayout, seen map[string]bool) ([]rateRow, error) {
	name := layout.name
	if idx, err := f.GetSheetIndex(name); err != nil || idx < 0 {
		name = f.GetSheetName(layout.index)
	}
	cells, err := f.GetRows(name)
	if err != nil {
		return nil, err
	}

	var out []rateRow
	for i := layout.firstRow; i < len(cells); i++ {
		row := cells[i]
		raw := strings.TrimSpace(cell(row, layout.rateCol))
		if raw == "" {
			continue
		}

		var slabs []slab
		if layout.freeText {
			slabs = parseRateText(raw)
		} else if r, ok := parsePercent(raw); ok {
			slabs = []slab{{rate: r}}
		}

		for _, s := range slabs {
			for j, col := range layout.codeCols {
				code := strings.TrimSpace(cell(row, col))
				if !isDigits(code) {
					continue
				}
				key := fmt.Sprintf("%s|%.2f|%s", code, s.rate, s.condition)
				if seen[key] {
					continue
				}
				seen[key] = true
				out = append(out, rateRow{
					code:        code,
					description: strings.TrimSpace(cell(row, layout.descCols[j])),
					rate:        s.rate,
					condition:   s.condition,
				})
			}
		}
	}
	return out, nil
}

type slab struct {
	rate      float64
	condition string
}

// maxRate is the highest GST slab including cess-bearing goods.
const maxRate = 40.0

var slabPattern = regexp.MustCompile(`(\d+(?:\.\d+)?)\s*%\s*(\([^)]*\))?`)

// parsePercent reads a single numeric cell such as "18%" or "0.18".
func parsePercent(s string) (float64, bool) {
	s = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return 0, false
	}
	if v > 0 && v < 1 {
		v *= 100
	}
	if v > maxRate {
		return 0, false
	}
	return v, true
}

// parseRateText reads free-text service rates: "18%", "Exempt",
// "12%-18%" or "1% (without ITC) or 5% (without ITC)".
func parseRateText(s string) []slab {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return nil
	case "exempt", "nil", "nil rated":
		return []slab{{rate: 0, condition: "exempt"}}
	}

	seen := make(map[string]bool)
	var out []slab
	for _, m := range slabPattern.FindAllStringSubmatch(s, -1) {
		rate, err := strconv.ParseFloat(m[1], 64)
		if err != nil || rate > maxRate {
			continue
		}
		cond := strings.TrimSpace(strings.Trim(m[2], "()"))
		key := fmt.Sprintf("%.2f|%s", rate, cond)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, slab{rate: rate, condition: cond})
	}
	return out
}

func writeSeed(w io.Writer, rows []rateRow) error {
	header := fmt.Sprintf("-- GST rate seed: %d rows in batches of %d.\nBEGIN;\n\n", len(rows), batchSize)
	if _, err := io.WriteString(w, header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for i := 0; i < len(rows); i += batchSize {
		end := min(i+batchSize, len(rows))
		if err := writeBatch(w, rows[i:end]); err != nil {
			return fmt.Errorf("write batch at %d: %w", i, err)
		}
	}
	if _, err := io.WriteString(w, "COMMIT;\n"); err != nil {
		return fmt.Errorf("write footer: %w", err)
	}
	return nil
}

func writeBatch(w io.Writer, batch []rateRow) error {
	if len(batch) == 0 {
		return nil
	}
	var b strings.Builder
	b.WriteString("INSERT INTO hsn_rates (code, description, gst_rate, condition_desc, effective_from) VALUES\n")
	for i, r := range batch {
		if i > 0 {
			b.WriteString(",\n")
		}
		fmt.Fprintf(&b, "  ('%s', '%s', %.2f, '%s', '2017-07-01')",
			quote(r.code), quote(r.description), r.rate, quote(r.condition))
	}
	b.WriteString("\nON CONFLICT (code, gst_rate, condition_desc) DO NOTHING;\n\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func cell(row []string, idx int) string {
	if idx < len(row) {
		return row[idx]
	}
	return ""
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

func quote(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
