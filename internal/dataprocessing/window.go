package dataprocessing

import (
	"time"

	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

// ClassifyHour maps an hour of day to its duty window.
// Hours outside 0-23 have no window.
func ClassifyHour(hour int) (domain.DutyWindow, bool) {
	if hour < 0 || hour > 23 {
		return domain.DutyWindow{}, false
	}
	return domain.DutyWindows[hour/domain.DutyWindowHours], true
}

// ClassifyTimestamp maps a timestamp to its duty window. A zero timestamp has no window.
func ClassifyTimestamp(ts time.Time) (domain.DutyWindow, bool) {
	if ts.IsZero() {
		return domain.DutyWindow{}, false
	}
	return ClassifyHour(ts.Hour())
}
