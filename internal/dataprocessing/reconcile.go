package dataprocessing

import (
	"context"
	"log/slog"
	"sort"

	"github.com/nishant32400/CrewStandby/internal/config"
	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

// ReconcileStats describes the join outcome
type ReconcileStats struct {
	RosterEmpty      bool
	StandbyEmpty     bool
	Matched          int
	OutsideDateRange int
	Output           int
}

// Reconciler left-joins pairing-start counts with standby activation counts
type Reconciler struct {
	logger *slog.Logger
	cfg    config.ReportConfig
}

// NewReconciler creates a reconciler for the given report configuration
func NewReconciler(logger *slog.Logger, cfg config.ReportConfig) *Reconciler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reconciler{
		logger: logger.With(slog.String("component", "reconciler")),
		cfg:    cfg,
	}
}

// Reconcile joins on (Date, Station, DutyWindow, Rank). Every roster row
// appears once in the result; missing standby counts are zero. Rows outside
// the inclusive report window are dropped and the rest are sorted.
func (r *Reconciler) Reconcile(ctx context.Context, roster, standby []domain.AggregateRow) ([]domain.FinalRow, ReconcileStats) {
	stats := ReconcileStats{
		RosterEmpty:  len(roster) == 0,
		StandbyEmpty: len(standby) == 0,
	}

	if stats.RosterEmpty || stats.StandbyEmpty {
		r.logger.WarnContext(ctx, "aggregate empty",
			slog.Bool("roster_empty", stats.RosterEmpty),
			slog.Bool("standby_empty", stats.StandbyEmpty),
			slog.Bool("require_both_sides", r.cfg.RequireBothSides))

		if r.cfg.RequireBothSides {
			return []domain.FinalRow{}, stats
		}
	}

	activations := make(map[domain.AggregateKey]int, len(standby))
	for _, row := range standby {
		activations[row.Key()] += row.Count
	}

	out := make([]domain.FinalRow, 0, len(roster))
	for _, row := range roster {
		if !r.inRange(row.Date) {
			stats.OutsideDateRange++
			continue
		}

		count, ok := activations[row.Key()]
		if ok {
			stats.Matched++
		}

		out = append(out, domain.FinalRow{
			Date:                   row.Date,
			Station:                row.Station,
			DutyWindow:             row.DutyWindow,
			Rank:                   row.Rank,
			PairingStartCount:      row.Count,
			StandbyActivationCount: count,
		})
	}

	SortFinalRows(out)
	stats.Output = len(out)

	r.logger.InfoContext(ctx, "aggregates reconciled",
		slog.Int("roster_rows", len(roster)),
		slog.Int("standby_rows", len(standby)),
		slog.Int("matched", stats.Matched),
		slog.Int("outside_date_range", stats.OutsideDateRange),
		slog.Int("output_rows", stats.Output))

	return out, stats
}

// inRange applies the inclusive report window
func (r *Reconciler) inRange(d domain.Date) bool {
	return d.Within(r.cfg.StartDate, r.cfg.EndDate)
}

// SortFinalRows orders rows by date, then station, duty window label and rank as text
func SortFinalRows(rows []domain.FinalRow) {
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if c := a.Date.Compare(b.Date); c != 0 {
			return c < 0
		}
		if a.Station != b.Station {
			return a.Station < b.Station
		}
		if a.DutyWindow != b.DutyWindow {
			return a.DutyWindow < b.DutyWindow
		}
		return a.Rank < b.Rank
	})
}
