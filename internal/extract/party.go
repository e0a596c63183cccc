package extract

import (
	"regexp"
	"strings"
)

var (
	vendorPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Vendor\s*[:\-]\s*([A-Za-z0-9 &.,\-]{2,160})`),
		regexp.MustCompile(`(?i)Supplier\s*[:\-]\s*([A-Za-z0-9 &.,\-]{2,160})`),
		regexp.MustCompile(`(?i)Company\s*[:\-]\s*([A-Za-z0-9 &.,\-]{2,160})`),
	}
	vendorInvoiceTail = regexp.MustCompile(`(?i)\s+(?:Invoice|Bill)\s*No\.?.*$`)
	vendorGSTINTail   = regexp.MustCompile(`(?i)\s+GSTIN.*$`)

	invoiceNumberPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Invoice\s*(?:No\.?|Number|#)?\s*[:\-]?\s*([A-Z0-9\-/]{3,40})`),
		regexp.MustCompile(`(?i)Bill\s*(?:No\.?|Number)?\s*[:\-]?\s*([A-Z0-9\-/]{3,40})`),
	}
	looseInvoiceNumberPattern = regexp.MustCompile(`(?i)\b(INV[-A-Z0-9/]{3,})\b`)

	labelledGSTINPattern = regexp.MustCompile(`(?i:GSTIN)\s*[:\-]?\s*(\d{2}[A-Z]{5}\d{4}[A-Z0-9][A-Z0-9]Z[A-Z0-9])`)
	gstinPattern         = regexp.MustCompile(`\b\d{2}[A-Z]{5}\d{4}[A-Z0-9][A-Z0-9]Z[A-Z0-9]\b`)
	// registration format accepted on user profiles
	strictGSTINPattern = regexp.MustCompile(`^\d{2}[A-Z]{5}\d{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)
)

func vendorStrategy(re *regexp.Regexp) Strategy[string] {
	return func(text string) (string, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		v := vendorInvoiceTail.ReplaceAllString(m[1], "")
		v = vendorGSTINTail.ReplaceAllString(v, "")
		v = strings.TrimSpace(v)
		return v, v != ""
	}
}

// invoiceNumberStrategy accepts the first labelled token carrying a digit,
// so "Invoice Date" never yields "Date".
func invoiceNumberStrategy(re *regexp.Regexp) Strategy[string] {
	return func(text string) (string, bool) {
		for _, m := range re.FindAllStringSubmatch(text, -1) {
			if strings.ContainsAny(m[1], "0123456789") {
				return m[1], true
			}
		}
		return "", false
	}
}

var (
	vendorStrategies = []Strategy[string]{
		vendorStrategy(vendorPatterns[0]),
		vendorStrategy(vendorPatterns[1]),
		vendorStrategy(vendorPatterns[2]),
	}
	invoiceNumberStrategies = []Strategy[string]{
		invoiceNumberStrategy(invoiceNumberPatterns[0]),
		invoiceNumberStrategy(invoiceNumberPatterns[1]),
		captureFirst(looseInvoiceNumberPattern),
	}
	gstinStrategies = []Strategy[string]{
		captureFirst(labelledGSTINPattern),
		func(text string) (string, bool) {
			v := gstinPattern.FindString(text)
			return v, v != ""
		},
	}
)

// Vendor returns the text after a Vendor, Supplier or Company label with any
// glued "Invoice No" or "GSTIN" tail removed.
func Vendor(text string) string {
	return orNotFound(firstMatch(text, vendorStrategies))
}

// InvoiceNumber returns the labelled invoice or bill number, else a bare
// INV-prefixed token.
func InvoiceNumber(text string) string {
	return orNotFound(firstMatch(text, invoiceNumberStrategies))
}

// GSTIN returns the labelled GSTIN, else the first 15-character code found.
func GSTIN(text string) string {
	return orNotFound(firstMatch(text, gstinStrategies))
}

// AllGSTINs returns every distinct GSTIN in order of first appearance.
func AllGSTINs(text string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, g := range gstinPattern.FindAllString(text, -1) {
		if _, ok := seen[g]; ok {
			continue
		}
		seen[g] = struct{}{}
		out = append(out, g)
	}
	return out
}

// ValidGSTIN reports whether s is a well-formed GSTIN registration.
func ValidGSTIN(s string) bool {
	return strictGSTINPattern.MatchString(s)
}
