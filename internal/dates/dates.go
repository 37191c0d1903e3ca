// Package dates normalizes free-form user-typed dates to canonical
// YYYY-MM-DD strings.
package dates

import (
	"errors"
	"strings"
	"time"
)

// Layout is the canonical calendar-date form every accepted input is
// normalized to.
const Layout = "2006-01-02"

// ErrUnparseable reports input that matched none of the accepted formats.
// Distinct from the empty-input case, which means "no date".
var ErrUnparseable = errors.New("unparseable date")

// Accepted input layouts, tried in order. The first full-string match wins.
// Unpadded day/month digits are accepted where the layout allows.
var layouts = []string{
	"2006-01-02",     // 2025-11-12
	"2/1/2006",       // 12/11/2025
	"2-1-2006",       // 12-11-2025
	"Jan 2 2006",     // Nov 12 2025
	"January 2 2006", // November 12 2025
	"2 Jan 2006",     // 12 Nov 2025
	"2 January 2006", // 12 November 2025
}

// Fallback layouts for generic ISO-8601 date/time input; only the date
// component is kept.
var isoLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Normalize converts arbitrary date text to canonical form.
// Empty or whitespace-only input returns ("", nil): no due date.
// Unrecognized input returns ("", ErrUnparseable).
func Normalize(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(Layout), nil
		}
	}

	// Last resort: generic ISO date/time.
	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(Layout), nil
		}
	}

	return "", ErrUnparseable
}

// Parse converts a canonical date string back to a time.Time.
func Parse(canon string) (time.Time, error) {
	return time.Parse(Layout, canon)
}

// Canonical formats a time as a canonical calendar date, dropping the
// time of day.
func Canonical(t time.Time) string {
	return t.Format(Layout)
}
