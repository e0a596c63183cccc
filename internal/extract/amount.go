package extract

import (
	"regexp"
	"strings"

	"gstrecon/internal/domain"
)

const amountTail = `\s*[:\-]?\s*(?:₹|Rs\.?)\.?\s*([\d,]+(?:\.\d{1,2})?)`

var (
	totalPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)Grand\s*Total` + amountTail),
		regexp.MustCompile(`(?i)Total\s*Amount\s*(?:Due|Payable)?` + amountTail),
		regexp.MustCompile(`(?i)Net\s*Total` + amountTail),
		regexp.MustCompile(`(?i)Total\s*\(incl\.?\s*GST\)` + amountTail),
		regexp.MustCompile(`(?i)Total\s*(?:\$?\s*incl\.?\s*GST\$?)*` + amountTail),
		regexp.MustCompile(`(?i)Amount\s*Payable` + amountTail),
	}
	currencyAmountPattern = regexp.MustCompile(`(?:₹|Rs\.?)\s*([\d,]+(?:\.\d{1,2})?)`)

	labelledRatePattern = regexp.MustCompile(`(?i)GST\s*Rate\s*[:\-]?\s*(\d{1,2}(?:\.\d{1,2})?)\s*%?`)
	igstRatePattern     = regexp.MustCompile(`(?i)IGST\s*[:\-]?\s*(\d{1,2}(?:\.\d{1,2})?)\s*%`)
	cgstRatePattern     = regexp.MustCompile(`(?i)CGST\s*[:\-]?\s*(\d{1,2}(?:\.\d{1,2})?)\s*%`)
	sgstRatePattern     = regexp.MustCompile(`(?i)SGST\s*[:\-]?\s*(\d{1,2}(?:\.\d{1,2})?)\s*%`)
	percentPattern      = regexp.MustCompile(`(\d{1,2}(?:\.\d{1,2})?)\s*%`)

	componentTail = `\s*[:\-]?\s*(?:₹|Rs\.?)?\s*([\d,]+(?:\.\d{1,2})?)`

	cgstAmountPattern     = regexp.MustCompile(`(?i)CGST` + componentTail)
	sgstAmountPattern     = regexp.MustCompile(`(?i)SGST` + componentTail)
	igstAmountPattern     = regexp.MustCompile(`(?i)IGST` + componentTail)
	totalGSTAmountPattern = regexp.MustCompile(`(?i)Total\s*GST` + componentTail)
	percentAhead          = regexp.MustCompile(`^\s*%`)
)

// TotalAmount returns the invoice total. Labelled totals are tried in order
// and the first positive one wins; otherwise the last currency-prefixed
// amount in the text is used. The result is never negative.
func TotalAmount(text string) float64 {
	for _, re := range totalPatterns {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		if v, ok := parseAmount(m[1]); ok && v > 0 {
			return v
		}
	}

	all := currencyAmountPattern.FindAllStringSubmatch(text, -1)
	if len(all) == 0 {
		return 0
	}
	if v, ok := parseAmount(all[len(all)-1][1]); ok && v > 0 {
		return v
	}
	return 0
}

// DeclaredRate is the GST rate an invoice states and how it was found.
type DeclaredRate struct {
	Rate   float64
	Regime domain.TaxRegime
}

var rateStrategies = []Strategy[DeclaredRate]{
	ratePattern(labelledRatePattern, domain.RegimeLabelled),
	ratePattern(igstRatePattern, domain.RegimeIGST),
	func(text string) (DeclaredRate, bool) {
		c := cgstRatePattern.FindStringSubmatch(text)
		s := sgstRatePattern.FindStringSubmatch(text)
		if c == nil || s == nil {
			return DeclaredRate{}, false
		}
		cv, _ := parseAmount(c[1])
		sv, _ := parseAmount(s[1])
		return DeclaredRate{Rate: cv + sv, Regime: domain.RegimeCGSTSGST}, true
	},
	ratePattern(percentPattern, domain.RegimeGeneric),
}

func ratePattern(re *regexp.Regexp, regime domain.TaxRegime) Strategy[DeclaredRate] {
	return func(text string) (DeclaredRate, bool) {
		m := re.FindStringSubmatch(text)
		if m == nil {
			return DeclaredRate{}, false
		}
		v, ok := parseAmount(m[1])
		if !ok {
			return DeclaredRate{}, false
		}
		return DeclaredRate{Rate: v, Regime: regime}, true
	}
}

// TaxRate detects the declared rate: an explicit "GST Rate", then IGST, then
// CGST plus SGST, then any percentage. With nothing found it assumes the
// 18% slab.
func TaxRate(text string) DeclaredRate {
	if r, ok := firstMatch(text, rateStrategies); ok {
		return r
	}
	return DeclaredRate{Rate: domain.DefaultGSTRate, Regime: domain.RegimeGeneric}
}

// DeclaredAmounts are the tax amounts printed on an invoice.
type DeclaredAmounts struct {
	domain.TaxComponents
	TotalGST float64
}

// TaxAmounts reads the labelled CGST, SGST, IGST and "Total GST" amounts.
// Missing labels read as zero.
func TaxAmounts(text string) DeclaredAmounts {
	return DeclaredAmounts{
		TaxComponents: domain.TaxComponents{
			CGST: labelledAmount(cgstAmountPattern, text),
			SGST: labelledAmount(sgstAmountPattern, text),
			IGST: labelledAmount(igstAmountPattern, text),
		},
		TotalGST: labelledAmount(totalGSTAmountPattern, text),
	}
}

// labelledAmount skips figures followed by '%', which are rates.
func labelledAmount(re *regexp.Regexp, text string) float64 {
	for _, loc := range re.FindAllStringSubmatchIndex(text, -1) {
		if percentAhead.MatchString(text[loc[1]:]) {
			continue
		}
		if v, ok := parseAmount(strings.TrimSpace(text[loc[2]:loc[3]])); ok {
			return v
		}
	}
	return 0
}
