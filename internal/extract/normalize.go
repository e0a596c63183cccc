// Package extract turns raw invoice text into structured fields. Every
// extractor is an ordered list of regex strategies; the first strategy that
// matches wins and a miss falls through to the field's sentinel.
package extract

import (
	"regexp"
	"strings"
)

var (
	lineBreakPattern    = regexp.MustCompile(`\r?\n|\r`)
	// \s is ASCII only; PDF text layers use no-break and other Unicode spaces.
	unicodeSpacePattern = regexp.MustCompile(`[\p{Zs}\x{0085}\x{FEFF}\x{2028}\x{2029}]`)
	multiSpacePattern   = regexp.MustCompile(`\s{2,}`)
	// Word characters, whitespace and the punctuation invoices need for
	// amounts, dates and codes survive; everything else is dropped.
	disallowedPattern   = regexp.MustCompile(`[^\w\s₹%\-:.,/]`)
)

// Normalize canonicalizes raw extracted text so the field extractors see one
// line of single-spaced text. Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	s := lineBreakPattern.ReplaceAllString(raw, " ")
	s = unicodeSpacePattern.ReplaceAllString(s, " ")
	s = multiSpacePattern.ReplaceAllString(s, " ")
	s = disallowedPattern.ReplaceAllString(s, "")
	// stripping can leave two spaces where a symbol sat between them
	s = multiSpacePattern.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}
