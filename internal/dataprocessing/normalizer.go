package dataprocessing

import (
	"time"

	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

// TimestampStrategy is one way of deriving a canonical timestamp from a roster record
type TimestampStrategy struct {
	Name    string
	Resolve func(rec domain.RosterRecord) (time.Time, bool)
}

// FullTimestamp reads the scheduled departure as a complete date and time
func FullTimestamp() TimestampStrategy {
	return TimestampStrategy{
		Name: "scheduled_departure",
		Resolve: func(rec domain.RosterRecord) (time.Time, bool) {
			return ParseTimestamp(rec.ScheduledDeparture)
		},
	}
}

// TimeOnDutyDay reads field as a time of day and anchors it to the duty day
func TimeOnDutyDay(name string, field func(rec domain.RosterRecord) string) TimestampStrategy {
	return TimestampStrategy{
		Name: name,
		Resolve: func(rec domain.RosterRecord) (time.Time, bool) {
			day, ok := ParseCalendarDate(rec.DutyDay)
			if !ok {
				return time.Time{}, false
			}
			h, m, s, ok := ParseTimeOfDay(field(rec))
			if !ok {
				return time.Time{}, false
			}
			return day.At(h, m, s), true
		},
	}
}

// DefaultTimestampStrategies is the standard fallback chain: a full scheduled
// departure, then scheduled departure as HH:MM on the duty day, then
// reporting time as HH:MM on the duty day.
func DefaultTimestampStrategies() []TimestampStrategy {
	return []TimestampStrategy{
		FullTimestamp(),
		TimeOnDutyDay("scheduled_departure_on_duty_day", func(rec domain.RosterRecord) string {
			return rec.ScheduledDeparture
		}),
		TimeOnDutyDay("reporting_time_on_duty_day", func(rec domain.RosterRecord) string {
			return rec.ReportingTime
		}),
	}
}

// TimeNormalizer derives one canonical timestamp per roster record by running
// its strategies in order and taking the first success.
type TimeNormalizer struct {
	strategies []TimestampStrategy
}

// NewTimeNormalizer creates a normalizer. Without strategies the default chain is used.
func NewTimeNormalizer(strategies ...TimestampStrategy) *TimeNormalizer {
	if len(strategies) == 0 {
		strategies = DefaultTimestampStrategies()
	}
	return &TimeNormalizer{strategies: strategies}
}

// Normalize returns the canonical timestamp of rec, or false when no strategy resolves it
func (n *TimeNormalizer) Normalize(rec domain.RosterRecord) (time.Time, bool) {
	ts, _, ok := n.Resolve(rec)
	return ts, ok
}

// Resolve is Normalize that also names the strategy that succeeded
func (n *TimeNormalizer) Resolve(rec domain.RosterRecord) (time.Time, string, bool) {
	for _, s := range n.strategies {
		if ts, ok := s.Resolve(rec); ok {
			return ts, s.Name, true
		}
	}
	return time.Time{}, "", false
}
