package extract

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	labelledHSNPattern  = regexp.MustCompile(`(?i)HSN(?:/SAC)?\s*(?:Code|No|Number)?\s*[:\-]?\s*(\d{4,8})`)
	hsnCandidatePattern = regexp.MustCompile(`\b(\d{4,8})\b`)
	tableHSNPattern     = regexp.MustCompile(`(?i)(?:Description|Item|Product|Particulars)[^0-9]{0,30}(\d{4,8})`)
	addressHintPattern  = regexp.MustCompile(`(?i)pune|maharashtra|address|street|road`)

	productLabelPattern   = regexp.MustCompile(`(?i)(?:Description|Item|Product|Particulars)\s*[:\-]?\s*([A-Za-z0-9\s,.\-]{3,160})`)
	productHeaderWord     = regexp.MustCompile(`(?i)^(?:Qty|Quantity|Rate|Price)`)
	taxInvoicePattern     = regexp.MustCompile(`(?i)Tax\s*Invoice\s*[:\-]?\s*([A-Za-z0-9\s,.\-]{3,60})`)
	productKeywordPattern = regexp.MustCompile(`(?i)\b(laptop|mobile|phone|website|design|software|monitor|printer|table|chair|furniture|freight|transport|courier)\b`)
	hsnCodeTail           = regexp.MustCompile(`(?i)\s*\bHSN(?:/SAC)?\s*Code.*$`)
	trailingLabel         = regexp.MustCompile(`(?i)\s*\b(?:GST\s*Rate|GST\s*Details|GST\s*Amount|Tax\s*Rate)\s*$`)
	totalTail             = regexp.MustCompile(`(?i)\s*\bTotal\s*(?:incl\.?\s*GST|\(incl\.?\s*GST\))?.*$`)
)

const (
	// a six digit number this close to the top is usually a postal code
	addressWindow   = 300
	maxProductWords = 6
)

type hsnCandidate struct {
	code string
	pos  int
}

// HSN returns the labelled HSN/SAC code if present. Otherwise it picks from
// the 4-8 digit numbers in text, skipping postal codes in the address block
// and preferring one near an "HSN" mention or a table header.
func HSN(text string) string {
	if m := labelledHSNPattern.FindStringSubmatch(text); m != nil {
		return m[1]
	}

	candidates := hsnCandidates(text)
	if len(candidates) == 0 {
		return notFound
	}

	for _, c := range candidates {
		near := regexp.MustCompile(`(?i)HSN[^0-9]{0,40}` + c.code)
		if near.MatchString(text) {
			return c.code
		}
	}
	if m := tableHSNPattern.FindStringSubmatch(text); m != nil {
		for _, c := range candidates {
			if c.code == m[1] {
				return c.code
			}
		}
	}
	return candidates[0].code
}

func hsnCandidates(text string) []hsnCandidate {
	header := text
	if len(header) > addressWindow {
		header = header[:addressWindow]
	}
	addressBlock := addressHintPattern.MatchString(header)

	var out []hsnCandidate
	for _, loc := range hsnCandidatePattern.FindAllStringSubmatchIndex(text, -1) {
		code := text[loc[2]:loc[3]]
		if addressBlock && loc[2] < addressWindow && looksLikePIN(code) {
			continue
		}
		out = append(out, hsnCandidate{code: code, pos: loc[2]})
	}
	return out
}

func looksLikePIN(code string) bool {
	n, err := strconv.Atoi(code)
	return err == nil && n >= 100000 && n <= 999999
}

// Product returns a short item description from a Description/Item/Product/
// Particulars label, falling back to the "Tax Invoice" heading and then to a
// list of common item words.
func Product(text string) string {
	return orNotFound(firstMatch(text, productStrategies))
}

var productStrategies = []Strategy[string]{
	labelledProduct,
	func(text string) (string, bool) {
		m := taxInvoicePattern.FindStringSubmatch(text)
		if m == nil {
			return "", false
		}
		v := cleanProduct(m[1])
		return v, v != ""
	},
	func(text string) (string, bool) {
		v := productKeywordPattern.FindString(text)
		return v, v != ""
	},
}

func labelledProduct(text string) (string, bool) {
	for _, m := range productLabelPattern.FindAllStringSubmatch(text, -1) {
		raw := strings.TrimSpace(m[1])
		if productHeaderWord.MatchString(raw) {
			continue
		}
		v := cleanProduct(raw)
		if v == "" {
			continue
		}
		words := strings.Fields(v)
		if len(words) > maxProductWords {
			words = words[:maxProductWords]
		}
		return strings.Join(words, " "), true
	}
	return "", false
}

// cleanProduct drops labels and totals that ran into the captured text.
func cleanProduct(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	s = hsnCodeTail.ReplaceAllString(s, "")
	for {
		trimmed := trailingLabel.ReplaceAllString(s, "")
		if trimmed == s {
			break
		}
		s = trimmed
	}
	s = totalTail.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}
