package dataprocessing

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nishant32400/CrewStandby/internal/config"
	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

// StandbyStats counts what happened to standby records during aggregation
type StandbyStats struct {
	Input                int
	HeadcountRows        int
	HeadcountDuplicates  int
	UnparsableTimestamps int
	UnresolvedLookups    int
	NullRank             int
	StationExcluded      int
	Groups               int
}

// HeadcountLookup maps a crew ID to its home station and rank
type HeadcountLookup map[string]domain.HeadcountRecord

// BuildHeadcountLookup trims the headcount rows, derives their rank and keeps
// the first row per crew ID. It returns the number of duplicate rows dropped.
func BuildHeadcountLookup(rows []domain.HeadcountRecord) (HeadcountLookup, int) {
	lookup := make(HeadcountLookup, len(rows))
	duplicates := 0

	for _, src := range rows {
		rec := domain.HeadcountRecord{
			CrewID:   strings.TrimSpace(src.CrewID),
			Station:  strings.TrimSpace(src.Station),
			RankText: strings.TrimSpace(src.RankText),
		}
		if rec.CrewID == "" {
			continue
		}
		if _, seen := lookup[rec.CrewID]; seen {
			duplicates++
			continue
		}
		rec.Rank = RankFromText(rec.RankText)
		lookup[rec.CrewID] = rec
	}
	return lookup, duplicates
}

// StandbyAggregator turns standby activations into activation counts per
// date, station, duty window and rank.
type StandbyAggregator struct {
	logger *slog.Logger
	cfg    config.ReportConfig
}

// NewStandbyAggregator creates a standby aggregator for the given report configuration
func NewStandbyAggregator(logger *slog.Logger, cfg config.ReportConfig) *StandbyAggregator {
	if logger == nil {
		logger = slog.Default()
	}
	return &StandbyAggregator{
		logger: logger.With(slog.String("component", "standby_aggregator")),
		cfg:    cfg.Normalized(),
	}
}

// Aggregate enriches standby records from the headcount table and groups
// them. Records with an unparsable activation timestamp, no headcount match
// or no derivable rank are counted and dropped.
func (a *StandbyAggregator) Aggregate(ctx context.Context, records []domain.StandbyRecord, headcount []domain.HeadcountRecord) ([]domain.AggregateRow, StandbyStats) {
	lookup, duplicates := BuildHeadcountLookup(headcount)
	stats := StandbyStats{
		Input:               len(records),
		HeadcountRows:       len(headcount),
		HeadcountDuplicates: duplicates,
	}

	counter := newGroupCounter()
	for _, src := range records {
		rec := src
		rec.CrewID = strings.TrimSpace(rec.CrewID)
		rec.OldDutyCode = strings.TrimSpace(rec.OldDutyCode)
		rec.NewDutyCode = strings.TrimSpace(rec.NewDutyCode)

		rec.CanonicalTimestamp, _ = ParseTimestamp(rec.ActivationTimestamp)
		if !rec.HasTimestamp() {
			stats.UnparsableTimestamps++
			continue
		}
		rec.Date = domain.DateOf(rec.CanonicalTimestamp)
		rec.Window, _ = ClassifyTimestamp(rec.CanonicalTimestamp)

		crew, found := lookup[rec.CrewID]
		if !found || crew.Station == "" {
			stats.UnresolvedLookups++
			continue
		}
		rec.Station = crew.Station
		rec.Rank = crew.Rank

		if a.cfg.HomeStation != "" && rec.Station != a.cfg.HomeStation {
			stats.StationExcluded++
			continue
		}
		if !rec.Rank.Valid() {
			stats.NullRank++
			continue
		}

		counter.add(groupKey{
			Date:    rec.Date,
			Station: rec.Station,
			Window:  rec.Window,
			Rank:    rec.Rank,
		})
	}

	rows := counter.rows()
	stats.Groups = len(rows)

	a.logger.InfoContext(ctx, "standby aggregated",
		slog.Int("input", stats.Input),
		slog.Int("headcount_rows", stats.HeadcountRows),
		slog.Int("headcount_duplicates", stats.HeadcountDuplicates),
		slog.Int("unparsable_timestamps", stats.UnparsableTimestamps),
		slog.Int("unresolved_lookups", stats.UnresolvedLookups),
		slog.Int("station_excluded", stats.StationExcluded),
		slog.Int("null_rank", stats.NullRank),
		slog.Int("groups", stats.Groups))

	return rows, stats
}
