package clean

import (
	"time"

	"github.com/araddon/dateparse"
)

// parseDate parses raw under a flexible multi-format policy with day-first
// preference for ambiguous numeric dates ("03/04/2024" is the 3rd of April).
// Returns nil when no format matches; time-of-day is discarded.
func parseDate(raw string) *time.Time {
	t, err := dateparse.ParseAny(raw, dateparse.PreferMonthFirst(false))
	if err != nil {
		return nil
	}
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return &d
}
