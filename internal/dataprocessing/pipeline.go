package dataprocessing

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/nishant32400/CrewStandby/internal/config"
	"github.com/nishant32400/CrewStandby/internal/infrastructure"
	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

// Inputs carries the three loaded tables of one run
type Inputs struct {
	Roster    []domain.RosterRecord
	Headcount []domain.HeadcountRecord
	Standby   []domain.StandbyRecord

	// ActivationStatusDefaulted is set by the loader when the roster had no status column
	ActivationStatusDefaulted bool
}

// Pipeline runs the reconciliation: roster and standby aggregation in
// parallel, then the left join.
type Pipeline struct {
	logger     *slog.Logger
	cfg        config.ReportConfig
	normalizer *TimeNormalizer
	metrics    *infrastructure.PipelineMetrics
	tracer     trace.Tracer
}

// PipelineOption customizes a Pipeline
type PipelineOption func(*Pipeline)

// WithMetrics records run counters on m
func WithMetrics(m *infrastructure.PipelineMetrics) PipelineOption {
	return func(p *Pipeline) {
		p.metrics = m
	}
}

// WithTimeNormalizer replaces the default roster timestamp fallback chain
func WithTimeNormalizer(n *TimeNormalizer) PipelineOption {
	return func(p *Pipeline) {
		p.normalizer = n
	}
}

// NewPipeline creates a pipeline for the given report configuration
func NewPipeline(logger *slog.Logger, cfg config.ReportConfig, opts ...PipelineOption) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	p := &Pipeline{
		logger:     logger,
		cfg:        cfg.Normalized(),
		normalizer: NewTimeNormalizer(),
		tracer:     infrastructure.Tracer(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run reconciles one set of inputs. Data-quality problems never fail a run;
// they are counted in the report diagnostics. Errors come only from an
// invalid configuration or a cancelled context.
func (p *Pipeline) Run(ctx context.Context, in Inputs) (report *domain.Report, err error) {
	ctx = infrastructure.EnsureTraceID(ctx)
	runID := infrastructure.GetTraceID(ctx)
	logger := p.logger.With(slog.String("run_id", runID))

	ctx, span := p.tracer.Start(ctx, "reconcile",
		trace.WithAttributes(attribute.String("run.id", runID)))
	defer span.End()

	started := time.Now()
	defer func() {
		rows := 0
		if report != nil {
			rows = len(report.Rows)
		}
		p.metrics.RecordRun(ctx, time.Since(started), rows, err)
		if err != nil {
			infrastructure.RecordError(ctx, err)
		}
	}()

	if err := p.cfg.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.metrics.RecordRowsLoaded(ctx, "roster", len(in.Roster))
	p.metrics.RecordRowsLoaded(ctx, "headcount", len(in.Headcount))
	p.metrics.RecordRowsLoaded(ctx, "standby", len(in.Standby))

	logger.InfoContext(ctx, "reconciliation started",
		slog.Int("roster_rows", len(in.Roster)),
		slog.Int("headcount_rows", len(in.Headcount)),
		slog.Int("standby_rows", len(in.Standby)),
		slog.String("start_date", p.cfg.StartDate.String()),
		slog.String("end_date", p.cfg.EndDate.String()),
		slog.String("home_station", p.cfg.HomeStation))

	var (
		rosterRows   []domain.AggregateRow
		rosterStats  RosterStats
		standbyRows  []domain.AggregateRow
		standbyStats StandbyStats
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		spanCtx, s := p.tracer.Start(gctx, "aggregate_roster")
		defer s.End()
		rosterRows, rosterStats = NewRosterAggregator(logger, p.cfg, p.normalizer).Aggregate(spanCtx, in.Roster)
		return gctx.Err()
	})
	g.Go(func() error {
		spanCtx, s := p.tracer.Start(gctx, "aggregate_standby")
		defer s.End()
		standbyRows, standbyStats = NewStandbyAggregator(logger, p.cfg).Aggregate(spanCtx, in.Standby, in.Headcount)
		return gctx.Err()
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rows, joinStats := NewReconciler(logger, p.cfg).Reconcile(ctx, rosterRows, standbyRows)

	diag := mergeDiagnostics(in, rosterStats, standbyStats, joinStats)
	p.recordExclusions(ctx, diag)

	span.SetAttributes(
		attribute.Int("rows.output", diag.OutputRows),
		attribute.Int("rows.roster_groups", diag.RosterAggregateRows),
		attribute.Int("rows.standby_groups", diag.StandbyAggregateRows),
	)

	logger.InfoContext(ctx, "reconciliation completed",
		slog.Int("output_rows", diag.OutputRows),
		slog.Any("empty_sides", diag.EmptySides()),
		slog.Duration("duration", time.Since(started)))

	return &domain.Report{
		RunID:       runID,
		StartDate:   p.cfg.StartDate,
		EndDate:     p.cfg.EndDate,
		Rows:        rows,
		Diagnostics: diag,
	}, nil
}

func (p *Pipeline) recordExclusions(ctx context.Context, d domain.Diagnostics) {
	p.metrics.RecordExclusions(ctx, "roster_filtered_out", d.RosterFilteredOut)
	p.metrics.RecordExclusions(ctx, "roster_unparsable_timestamp", d.RosterUnparsableTimestamps)
	p.metrics.RecordExclusions(ctx, "roster_unparsable_start_date", d.RosterUnparsableStartDates)
	p.metrics.RecordExclusions(ctx, "roster_station_excluded", d.RosterStationExcluded)
	p.metrics.RecordExclusions(ctx, "roster_duplicate", d.RosterDuplicatesCollapsed)
	p.metrics.RecordExclusions(ctx, "roster_null_rank", d.RosterNullRank)
	p.metrics.RecordExclusions(ctx, "standby_unparsable_timestamp", d.StandbyUnparsableTimestamps)
	p.metrics.RecordExclusions(ctx, "standby_unresolved_lookup", d.StandbyUnresolvedLookups)
	p.metrics.RecordExclusions(ctx, "standby_station_excluded", d.StandbyStationExcluded)
	p.metrics.RecordExclusions(ctx, "standby_null_rank", d.StandbyNullRank)
	p.metrics.RecordExclusions(ctx, "outside_date_range", d.OutsideDateRange)
}

func mergeDiagnostics(in Inputs, roster RosterStats, standby StandbyStats, join ReconcileStats) domain.Diagnostics {
	return domain.Diagnostics{
		RosterRows:    len(in.Roster),
		HeadcountRows: len(in.Headcount),
		StandbyRows:   len(in.Standby),

		ActivationStatusDefaulted: in.ActivationStatusDefaulted,

		RosterFilteredOut:           roster.FilteredOut,
		RosterUnparsableTimestamps:  roster.UnparsableTimestamps,
		RosterUnparsableStartDates:  roster.UnparsableStartDates,
		RosterStationExcluded:       roster.StationExcluded,
		RosterDuplicatesCollapsed:   roster.DuplicatesCollapsed,
		RosterNullRank:              roster.NullRank,
		HeadcountDuplicatesDropped:  standby.HeadcountDuplicates,
		StandbyUnparsableTimestamps: standby.UnparsableTimestamps,
		StandbyUnresolvedLookups:    standby.UnresolvedLookups,
		StandbyNullRank:             standby.NullRank,
		StandbyStationExcluded:      standby.StationExcluded,

		RosterAggregateRows:  roster.Groups,
		StandbyAggregateRows: standby.Groups,
		OutsideDateRange:     join.OutsideDateRange,
		OutputRows:           join.Output,

		RosterEmpty:  join.RosterEmpty,
		StandbyEmpty: join.StandbyEmpty,
	}
}
