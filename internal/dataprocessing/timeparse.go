package dataprocessing

import (
	"strings"
	"time"

	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

// CanonicalTimestampLayout is how canonical timestamps are rendered
const CanonicalTimestampLayout = "2006-01-02 15:04:05"

// timestampLayouts are the accepted date-and-time layouts, tried in order.
// Slash and dash dates are month-first. Fractional seconds are accepted
// after any layout that carries seconds.
var timestampLayouts = []string{
	CanonicalTimestampLayout,
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	time.RFC3339Nano,
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"1/2/2006 15:04:05",
	"1/2/2006 15:04",
	"1/2/06 15:04:05",
	"1/2/06 15:04",
	"01-02-2006 15:04:05",
	"01-02-2006 15:04",
	"2-Jan-2006 15:04:05",
	"2-Jan-2006 15:04",
	"2-Jan-06 15:04",
	"02 Jan 2006 15:04",
	"Jan 2, 2006 15:04",
}

// dateLayouts are the accepted calendar date layouts
var dateLayouts = []string{
	domain.DateLayout,
	"2006/01/02",
	"1/2/2006",
	"1/2/06",
	"01-02-2006",
	"2-Jan-2006",
	"2-Jan-06",
	"02 Jan 2006",
	"Jan 2, 2006",
	"20060102",
}

// timeOfDayLayouts are the accepted HH:MM forms after compact values are expanded
var timeOfDayLayouts = []string{"15:04", "15:04:05"}

// isNullText reports whether s is empty or one of the null markers spreadsheet
// exports leave in empty cells
func isNullText(s string) bool {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "nan", "nat", "none", "null", "<na>":
		return true
	}
	return false
}

// ParseTimestamp parses a full date-and-time value. Zone offsets are dropped:
// every timestamp is read as one local civil time.
func ParseTimestamp(raw string) (time.Time, bool) {
	s := strings.TrimSpace(raw)
	if isNullText(s) {
		return time.Time{}, false
	}

	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return civil(t), true
		}
	}
	return time.Time{}, false
}

// ParseCalendarDate parses a calendar date, also accepting full timestamps
func ParseCalendarDate(raw string) (domain.Date, bool) {
	s := strings.TrimSpace(raw)
	if isNullText(s) {
		return domain.Date{}, false
	}

	for _, layout := range dateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return domain.DateOf(t), true
		}
	}
	if t, ok := ParseTimestamp(s); ok {
		return domain.DateOf(t), true
	}
	return domain.Date{}, false
}

// ParseTimeOfDay interprets "HH:MM", "H:MM", "HH:MM:SS" and the compact
// digit-only forms "HHMM" and "HMM". A trailing fractional suffix such as
// ".0" left by numeric spreadsheet cells is ignored. Shorter digit strings
// are rejected so the caller falls through to its next source.
func ParseTimeOfDay(raw string) (hour, minute, second int, ok bool) {
	s := strings.TrimSpace(raw)
	if isNullText(s) {
		return 0, 0, 0, false
	}

	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}

	if !strings.Contains(s, ":") {
		if len(s) < 3 || len(s) > 4 || !allDigits(s) {
			return 0, 0, 0, false
		}
		s = strings.Repeat("0", 4-len(s)) + s
		s = s[:2] + ":" + s[2:]
	}

	for _, layout := range timeOfDayLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.Hour(), t.Minute(), t.Second(), true
		}
	}
	return 0, 0, 0, false
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// civil strips the location of t, keeping its wall clock reading
func civil(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}
