package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	numericDatePattern = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)
	namedDatePattern   = regexp.MustCompile(`(?i)^(\d{1,2})\s+(Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+(\d{4})$`)

	labelledDatePattern = regexp.MustCompile(`(?i)Date\s*[:\-]?\s*(\d{1,2}[-/]\d{1,2}[-/]\d{2,4})`)
	looseDatePattern    = regexp.MustCompile(`(?i)\b(\d{1,2}[-/]\d{1,2}[-/]\d{2,4}|\d{1,2}\s+(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\s+\d{4})\b`)
)

var monthsByPrefix = map[string]time.Month{
	"jan": time.January, "feb": time.February, "mar": time.March,
	"apr": time.April, "may": time.May, "jun": time.June,
	"jul": time.July, "aug": time.August, "sep": time.September,
	"oct": time.October, "nov": time.November, "dec": time.December,
}

// Layouts tried after the day-first forms. Anything else is unparseable.
var fallbackLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"02-Jan-2006",
	"Jan 02, 2006",
	"January 02, 2006",
	"2006-01-02T15:04:05Z07:00",
}

// ParseDate converts an invoice date string to a UTC calendar date. Day-first
// numeric forms (dd/mm/yyyy, dd-mm-yy) and "13 Nov 2025" are recognised; a
// date that would roll over (31/02/2024) is rejected. It returns nil rather
// than an error when nothing fits.
func ParseDate(s string) *time.Time {
	s = strings.TrimSpace(s)
	if s == "" || s == notFound {
		return nil
	}

	if m := numericDatePattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if len(m[3]) == 2 {
			year += 2000
		}
		return calendarDate(year, time.Month(month), day)
	}

	if m := namedDatePattern.FindStringSubmatch(s); m != nil {
		day, _ := strconv.Atoi(m[1])
		month := monthsByPrefix[strings.ToLower(m[2][:3])]
		year, _ := strconv.Atoi(m[3])
		return calendarDate(year, month, day)
	}

	for _, layout := range fallbackLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

// calendarDate builds the date and rejects components time.Date normalised.
func calendarDate(year int, month time.Month, day int) *time.Time {
	if month < time.January || month > time.December || day < 1 {
		return nil
	}
	t := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return nil
	}
	return &t
}

var dateStrategies = []Strategy[string]{
	captureFirst(labelledDatePattern),
	captureFirst(looseDatePattern),
}

// LocateDate finds the invoice date string in normalized text, preferring a
// "Date:" label over the first date-shaped token.
func LocateDate(text string) string {
	return orNotFound(firstMatch(text, dateStrategies))
}
