// Package period parses the two accepted period date formats and applies
// end-of-day normalization for inclusive range comparison.
package period

import (
	"regexp"
	"time"
)

const (
	// DateLayout is the day-resolution form, DD/MM/YYYY.
	DateLayout = "02/01/2006"
	// DateTimeLayout adds a 24-hour time component, DD/MM/YYYY HH:MM.
	DateTimeLayout = "02/01/2006 15:04"
)

var (
	datePattern     = regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`)
	dateTimePattern = regexp.MustCompile(`^\d{2}/\d{2}/\d{4} \d{2}:\d{2}$`)
)

// Parse accepts exactly DD/MM/YYYY and DD/MM/YYYY HH:MM. Any other shape, or
// a valid-looking string with out-of-range components, reports false. All
// timestamps are naive local time.
func Parse(s string) (time.Time, bool) {
	switch {
	case datePattern.MatchString(s):
		t, err := time.ParseInLocation(DateLayout, s, time.Local)
		return t, err == nil
	case dateTimePattern.MatchString(s):
		t, err := time.ParseInLocation(DateTimeLayout, s, time.Local)
		return t, err == nil
	default:
		return time.Time{}, false
	}
}

// HasTime reports whether the raw string carried a time component.
func HasTime(s string) bool {
	return dateTimePattern.MatchString(s)
}

// NormalizeEnd treats a period end given without a time component as the end
// of that day, so the range comparison stays inclusive.
func NormalizeEnd(t time.Time, raw string) time.Time {
	if HasTime(raw) {
		return t
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, 0, t.Location())
}
