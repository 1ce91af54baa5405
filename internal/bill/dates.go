package bill

import (
	"strings"
	"time"
)

// dateLayouts are tried in order. Day-first layouts come before month-first
// ones because the bills this system handles are predominantly DMY.
var dateLayouts = []string{
	"2006-01-02",
	"02-01-2006",
	"02/01/2006",
	"02.01.2006",
	"2-1-2006",
	"2/1/2006",
	"02-01-06",
	"02/01/06",
	"2 January 2006",
	"2 Jan 2006",
	"January 2, 2006",
	"Jan 2, 2006",
}

// parseDate normalizes an LLM-supplied date string. Two-digit years resolve
// into the past century when they would land in the future. An unparseable or
// empty string falls back to today rather than failing the bill.
func parseDate(s string, now time.Time) time.Time {
	s = strings.TrimSpace(s)
	if s == "" {
		return now.Truncate(24 * time.Hour)
	}
	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		// Invoice dates are past dates; a parse landing more than a day ahead
		// of now with a two-digit year means the wrong century was picked.
		if t.After(now.AddDate(0, 0, 1)) && strings.Contains(layout, "06") && !strings.Contains(layout, "2006") {
			t = t.AddDate(-100, 0, 0)
		}
		return t
	}
	return now.Truncate(24 * time.Hour)
}
