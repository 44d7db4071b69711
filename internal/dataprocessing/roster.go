package dataprocessing

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nishant32400/CrewStandby/internal/config"
	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

// RosterStats counts what happened to roster records during aggregation
type RosterStats struct {
	Input                int
	FilteredOut          int
	StationExcluded      int
	UnparsableTimestamps int
	UnparsableStartDates int
	DuplicatesCollapsed  int
	NullRank             int
	Groups               int

	// ResolvedBy counts records per timestamp strategy that resolved them
	ResolvedBy map[string]int
}

// RosterAggregator turns roster duty legs into pairing-start counts per
// date, station, duty window and rank.
type RosterAggregator struct {
	logger     *slog.Logger
	cfg        config.ReportConfig
	normalizer *TimeNormalizer
	subfleets  map[string]struct{}
	fleetTypes map[string]struct{}
}

// NewRosterAggregator creates a roster aggregator for the given report configuration
func NewRosterAggregator(logger *slog.Logger, cfg config.ReportConfig, normalizer *TimeNormalizer) *RosterAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	if normalizer == nil {
		normalizer = NewTimeNormalizer()
	}
	cfg = cfg.Normalized()

	return &RosterAggregator{
		logger:     logger.With(slog.String("component", "roster_aggregator")),
		cfg:        cfg,
		normalizer: normalizer,
		subfleets:  cfg.SubfleetSet(),
		fleetTypes: cfg.FleetTypeSet(),
	}
}

// Prepare trims the record and derives its rank, canonical timestamp and
// duty window. The input is not modified.
func (a *RosterAggregator) Prepare(src domain.RosterRecord) (domain.RosterRecord, string) {
	rec := trimRoster(src)
	rec.Rank = RankFromPosition(rec.PositionRank)

	ts, strategy, ok := a.normalizer.Resolve(rec)
	if ok {
		rec.CanonicalTimestamp = ts
		rec.Window, _ = ClassifyTimestamp(ts)
	}
	return rec, strategy
}

// eligible applies the flight-duty, status, subfleet and fleet-type filters
func (a *RosterAggregator) eligible(rec domain.RosterRecord) bool {
	if rec.DutyCode != a.cfg.FlightDutyCode || rec.ActivationStatus != a.cfg.ActiveStatus {
		return false
	}
	if _, ok := a.subfleets[rec.Subfleet]; !ok {
		return false
	}
	_, ok := a.fleetTypes[rec.FleetType]
	return ok
}

// Aggregate filters, deduplicates and groups records. It never fails:
// records that cannot form a group key are counted in the stats and dropped.
func (a *RosterAggregator) Aggregate(ctx context.Context, records []domain.RosterRecord) ([]domain.AggregateRow, RosterStats) {
	stats := RosterStats{Input: len(records), ResolvedBy: make(map[string]int)}

	kept := make([]domain.RosterRecord, 0, len(records))
	for _, src := range records {
		rec, strategy := a.Prepare(src)

		if !a.eligible(rec) {
			stats.FilteredOut++
			continue
		}
		if a.cfg.HomeStation != "" && rec.DepartureStation != a.cfg.HomeStation {
			stats.StationExcluded++
			continue
		}
		if !rec.HasTimestamp() {
			stats.UnparsableTimestamps++
			continue
		}
		start, ok := ParseCalendarDate(rec.PairingStartDate)
		if !ok {
			stats.UnparsableStartDates++
			continue
		}
		rec.StartDate = start
		stats.ResolvedBy[strategy]++
		kept = append(kept, rec)
	}

	unique := DedupEarliest(kept)
	stats.DuplicatesCollapsed = len(kept) - len(unique)

	counter := newGroupCounter()
	for _, rec := range unique {
		if !rec.Rank.Valid() || !rec.Window.Valid() {
			stats.NullRank++
			continue
		}
		counter.add(groupKey{
			Date:    rec.StartDate,
			Station: rec.DepartureStation,
			Window:  rec.Window,
			Rank:    rec.Rank,
		})
	}

	rows := counter.rows()
	stats.Groups = len(rows)

	a.logger.InfoContext(ctx, "roster aggregated",
		slog.Int("input", stats.Input),
		slog.Int("filtered_out", stats.FilteredOut),
		slog.Int("station_excluded", stats.StationExcluded),
		slog.Int("unparsable_timestamps", stats.UnparsableTimestamps),
		slog.Int("unparsable_start_dates", stats.UnparsableStartDates),
		slog.Int("duplicates_collapsed", stats.DuplicatesCollapsed),
		slog.Int("null_rank", stats.NullRank),
		slog.Int("groups", stats.Groups))

	return rows, stats
}

// DedupEarliest keeps one record per (CrewID, PairingStartDate, TripCode):
// the one with the earliest canonical timestamp, the first in input order on ties.
func DedupEarliest(records []domain.RosterRecord) []domain.RosterRecord {
	index := make(map[domain.PairingKey]int, len(records))
	out := make([]domain.RosterRecord, 0, len(records))

	for _, rec := range records {
		key := rec.PairingKey()
		if i, seen := index[key]; seen {
			if rec.CanonicalTimestamp.Before(out[i].CanonicalTimestamp) {
				out[i] = rec
			}
			continue
		}
		index[key] = len(out)
		out = append(out, rec)
	}
	return out
}

func trimRoster(rec domain.RosterRecord) domain.RosterRecord {
	rec.CrewID = strings.TrimSpace(rec.CrewID)
	rec.PairingStartDate = strings.TrimSpace(rec.PairingStartDate)
	rec.TripCode = strings.TrimSpace(rec.TripCode)
	rec.DutyCode = strings.TrimSpace(rec.DutyCode)
	rec.ActivationStatus = strings.TrimSpace(rec.ActivationStatus)
	rec.FleetType = strings.TrimSpace(rec.FleetType)
	rec.Subfleet = strings.TrimSpace(rec.Subfleet)
	rec.DepartureStation = strings.TrimSpace(rec.DepartureStation)
	rec.PositionRank = strings.TrimSpace(rec.PositionRank)
	rec.ScheduledDeparture = strings.TrimSpace(rec.ScheduledDeparture)
	rec.DutyDay = strings.TrimSpace(rec.DutyDay)
	rec.ReportingTime = strings.TrimSpace(rec.ReportingTime)
	return rec
}
