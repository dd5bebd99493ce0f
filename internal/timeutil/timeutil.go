// Package timeutil converts between calendar timestamps and the string forms
// used by close-approach data and result files.
package timeutil

import (
	"fmt"
	"strings"
	"time"
)

const (
	// CanonicalLayout is the form written to result files.
	CanonicalLayout = "2006-01-02 15:04"

	// CADLayout is the form used by the JPL close-approach dataset, e.g. "1900-Jan-01 00:11".
	CADLayout = "2006-Jan-02 15:04"

	dateLayout = "2006-01-02"
)

// FormatDatetime renders t in canonical form. Times are written as given;
// no timezone conversion happens here.
func FormatDatetime(t time.Time) string {
	return t.Format(CanonicalLayout)
}

// FormatDate renders the calendar date of t.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseCADTime parses a close-approach timestamp in either CAD or canonical form.
func ParseCADTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{CADLayout, CanonicalLayout} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unsupported timestamp format: %q", s)
}

// ParseDate parses a YYYY-MM-DD calendar date.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// SameDate reports whether a and b fall on the same calendar date.
func SameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// DateOnly truncates t to midnight of its calendar date, keeping its location.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
