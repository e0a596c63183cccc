package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gstrecon/internal/extract"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"line breaks become spaces", "Vendor: ABC\r\nInvoice No: 12\rDate: 01/02/2024", "Vendor: ABC Invoice No: 12 Date: 01/02/2024"},
		{"runs of whitespace collapse", "Total   \t Amount", "Total Amount"},
		{"symbols are dropped", "Total (incl. GST): ₹1,25,000 @ 18%", "Total incl. GST: ₹1,25,000 18%"},
		{"keeps codes and dates", "GSTIN: 27ABCDE1234F1Z5 12-01-2024", "GSTIN: 27ABCDE1234F1Z5 12-01-2024"},
		{"no-break spaces are spaces", "Dated 13\u00a0Nov\u00a02025 Vendor: Acme\u00a0Traders", "Dated 13 Nov 2025 Vendor: Acme Traders"},
		{"other unicode spaces", "Total\u2009Amount\u3000₹500\ufeff", "Total Amount ₹500"},
		{"trims", "  hello  ", "hello"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extract.Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"a @ b",
		"Total (incl. GST):\n\n  Rs.1,25,000",
		"*** Tax Invoice ***\r\n# Vendor: X & Y",
		"  ₹ 500  |  GST 18% | ",
		"A\u00a0\u00a0B\u2028C",
	}
	for _, in := range inputs {
		once := extract.Normalize(in)
		assert.Equal(t, once, extract.Normalize(once), "input %q", in)
	}
}

func TestNormalize_NoBreakSpaceKeepsFieldsApart(t *testing.T) {
	text := extract.Normalize("Vendor: Acme\u00a0Traders Invoice Date:\u00a013\u00a0Nov\u00a02025")

	assert.Equal(t, "13 Nov 2025", extract.LocateDate(text))
}
