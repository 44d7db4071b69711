package dataprocessing

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishant32400/CrewStandby/internal/config"
	apperrors "github.com/nishant32400/CrewStandby/internal/errors"
	"github.com/nishant32400/CrewStandby/internal/infrastructure"
	"github.com/nishant32400/CrewStandby/internal/shared/testutil"
	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

func pipelineInputs() Inputs {
	roster := []domain.RosterRecord{
		leg("1001", "2025-07-05", "T100", "930"),
		leg("1001", "2025-07-05", "T100", "1100"),
		leg("1004", "2025-06-30", "T400", "930"),
	}
	fo := leg("1002", "2025-07-05", "T200", "2025-07-05 10:15")
	fo.PositionRank = "2"
	roster = append(roster, fo)

	return Inputs{
		Roster: roster,
		Headcount: []domain.HeadcountRecord{
			{CrewID: "2001", Station: "DEL", RankText: "CP"},
		},
		Standby: []domain.StandbyRecord{
			{CrewID: "2001", ActivationTimestamp: "2025-07-05 09:10"},
			{CrewID: "2001", ActivationTimestamp: "2025-07-05 08:00"},
			{CrewID: "4242", ActivationTimestamp: "2025-07-05 09:00"},
		},
	}
}

func TestPipeline_Run(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	p := NewPipeline(logger, config.DefaultReportConfig())

	ctx := infrastructure.WithTraceID(context.Background(), "run-1")
	report, err := p.Run(ctx, pipelineInputs())
	require.NoError(t, err)

	assert.Equal(t, "run-1", report.RunID)
	assert.Equal(t, date("2025-07-01"), report.StartDate)
	assert.Equal(t, date("2025-09-30"), report.EndDate)
	assert.Equal(t, []domain.FinalRow{
		{Date: date("2025-07-05"), Station: "DEL", DutyWindow: "8-12", Rank: domain.RankCaptain, PairingStartCount: 1, StandbyActivationCount: 2},
		{Date: date("2025-07-05"), Station: "DEL", DutyWindow: "8-12", Rank: domain.RankFirstOfficer, PairingStartCount: 1, StandbyActivationCount: 0},
	}, report.Rows)

	d := report.Diagnostics
	assert.Equal(t, 4, d.RosterRows)
	assert.Equal(t, 1, d.HeadcountRows)
	assert.Equal(t, 3, d.StandbyRows)
	assert.Equal(t, 1, d.RosterDuplicatesCollapsed)
	assert.Equal(t, 1, d.StandbyUnresolvedLookups)
	assert.Equal(t, 3, d.RosterAggregateRows)
	assert.Equal(t, 1, d.StandbyAggregateRows)
	assert.Equal(t, 1, d.OutsideDateRange)
	assert.Equal(t, 2, d.OutputRows)
	assert.Empty(t, d.EmptySides())

	testutil.AssertLogContains(t, logs, slog.LevelInfo, "reconciliation completed")
	testutil.AssertNoErrors(t, logs)
}

func TestPipeline_Run_GeneratesRunID(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	p := NewPipeline(logger, config.DefaultReportConfig())

	report, err := p.Run(context.Background(), pipelineInputs())
	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
}

func TestPipeline_Run_EmptyStandby(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	p := NewPipeline(logger, config.DefaultReportConfig())

	in := pipelineInputs()
	in.Standby = nil
	in.ActivationStatusDefaulted = true

	report, err := p.Run(context.Background(), in)
	require.NoError(t, err)

	require.Len(t, report.Rows, report.Diagnostics.RosterAggregateRows-report.Diagnostics.OutsideDateRange)
	for _, row := range report.Rows {
		assert.Equal(t, 0, row.StandbyActivationCount)
	}
	assert.True(t, report.Diagnostics.StandbyEmpty)
	assert.True(t, report.Diagnostics.ActivationStatusDefaulted)
	assert.Equal(t, []string{"standby"}, report.Diagnostics.EmptySides())
}

func TestPipeline_Run_UnmatchedStandbyScenario(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	p := NewPipeline(logger, config.DefaultReportConfig())

	in := Inputs{
		Roster:    []domain.RosterRecord{leg("1001", "2025-07-05", "T100", "930")},
		Headcount: []domain.HeadcountRecord{{CrewID: "2001", Station: "DEL", RankText: "CP"}},
		Standby:   []domain.StandbyRecord{{CrewID: "7777", ActivationTimestamp: "2025-07-05 09:00"}},
	}

	report, err := p.Run(context.Background(), in)
	require.NoError(t, err)
	require.Len(t, report.Rows, 1)
	assert.Equal(t, 0, report.Rows[0].StandbyActivationCount)
	assert.Equal(t, 1, report.Diagnostics.StandbyUnresolvedLookups)
	assert.Equal(t, 0, report.Diagnostics.StandbyAggregateRows)
}

func TestPipeline_Run_Errors(t *testing.T) {
	t.Run("invalid report window", func(t *testing.T) {
		logger, _ := testutil.NewTestLogger(t)
		cfg := config.DefaultReportConfig()
		cfg.StartDate, cfg.EndDate = cfg.EndDate, cfg.StartDate

		_, err := NewPipeline(logger, cfg).Run(context.Background(), pipelineInputs())
		require.Error(t, err)
		errType, ok := apperrors.TypeOf(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrTypeConfig, errType)
	})

	t.Run("cancelled context", func(t *testing.T) {
		logger, _ := testutil.NewTestLogger(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := NewPipeline(logger, config.DefaultReportConfig()).Run(ctx, pipelineInputs())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPipeline_Run_WithMetrics(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	metrics, err := infrastructure.NewPipelineMetrics(nil)
	require.NoError(t, err)

	p := NewPipeline(logger, config.DefaultReportConfig(), WithMetrics(metrics), WithTimeNormalizer(NewTimeNormalizer()))
	report, err := p.Run(context.Background(), pipelineInputs())
	require.NoError(t, err)
	assert.Len(t, report.Rows, 2)
}
