// Package returns folds reconciled invoices and purchase credit entries into
// GST return summaries. Every function here is pure: callers load the rows
// and the package only aggregates them.
package returns

import (
	"fmt"
	"strings"
	"time"

	"gstrecon/internal/domain"
)

const monthLayout = "2006-01"

// Period is a calendar month expressed as the half-open range [Start, End).
type Period struct {
	Label string
	Start time.Time
	End   time.Time
}

// ParseMonth turns a "YYYY-MM" string into a Period in now's location. An
// empty string selects the month containing now.
func ParseMonth(month string, now time.Time) (Period, error) {
	month = strings.TrimSpace(month)
	if month == "" {
		return monthOf(now.Year(), now.Month(), now.Location()), nil
	}
	t, err := time.ParseInLocation(monthLayout, month, now.Location())
	if err != nil {
		return Period{}, fmt.Errorf("%w: %q", domain.ErrInvalidPeriod, month)
	}
	return monthOf(t.Year(), t.Month(), now.Location()), nil
}

func monthOf(year int, month time.Month, loc *time.Location) Period {
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return Period{
		Label: start.Format(monthLayout),
		Start: start,
		End:   start.AddDate(0, 1, 0),
	}
}

// Contains reports whether t falls inside the period.
func (p Period) Contains(t time.Time) bool {
	return !t.Before(p.Start) && t.Before(p.End)
}
