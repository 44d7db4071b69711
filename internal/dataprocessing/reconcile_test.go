package dataprocessing

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishant32400/CrewStandby/internal/config"
	"github.com/nishant32400/CrewStandby/internal/shared/testutil"
	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

func aggRow(d, station, window string, rank domain.Rank, count int) domain.AggregateRow {
	var w domain.DutyWindow
	for _, dw := range domain.DutyWindows {
		if dw.Label == window {
			w = dw
		}
	}
	return domain.AggregateRow{
		Date:              date(d),
		Station:           station,
		DutyWindow:        w.Label,
		DutyWindowOrdinal: w.Ordinal,
		Rank:              rank,
		Count:             count,
	}
}

func TestReconciler_LeftJoinZeroFill(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	r := NewReconciler(logger, config.DefaultReportConfig())

	roster := []domain.AggregateRow{
		aggRow("2025-07-05", "DEL", "8-12", domain.RankCaptain, 3),
		aggRow("2025-07-05", "DEL", "8-12", domain.RankFirstOfficer, 2),
		aggRow("2025-07-05", "BOM", "4-8", domain.RankCaptain, 1),
	}
	standby := []domain.AggregateRow{
		aggRow("2025-07-05", "DEL", "8-12", domain.RankCaptain, 4),
		aggRow("2025-07-05", "DEL", "12-16", domain.RankCaptain, 9),
		aggRow("2025-07-06", "BOM", "4-8", domain.RankCaptain, 1),
	}

	rows, stats := r.Reconcile(context.Background(), roster, standby)

	assert.Equal(t, []domain.FinalRow{
		{Date: date("2025-07-05"), Station: "BOM", DutyWindow: "4-8", Rank: domain.RankCaptain, PairingStartCount: 1, StandbyActivationCount: 0},
		{Date: date("2025-07-05"), Station: "DEL", DutyWindow: "8-12", Rank: domain.RankCaptain, PairingStartCount: 3, StandbyActivationCount: 4},
		{Date: date("2025-07-05"), Station: "DEL", DutyWindow: "8-12", Rank: domain.RankFirstOfficer, PairingStartCount: 2, StandbyActivationCount: 0},
	}, rows)
	assert.Equal(t, 1, stats.Matched)
	assert.Equal(t, 3, stats.Output)
	assert.False(t, stats.RosterEmpty)
	assert.False(t, stats.StandbyEmpty)
}

func TestReconciler_JoinCompleteness(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	r := NewReconciler(logger, config.ReportConfig{})

	var roster, standby []domain.AggregateRow
	day := date("2025-07-01")
	for d := 0; d < 10; d++ {
		for _, w := range domain.DutyWindows {
			for _, rank := range []domain.Rank{domain.RankCaptain, domain.RankFirstOfficer} {
				roster = append(roster, aggRow(day.AddDays(d).String(), "DEL", w.Label, rank, d+1))
				if (d+w.Ordinal)%3 == 0 {
					standby = append(standby, aggRow(day.AddDays(d).String(), "DEL", w.Label, rank, 7))
				}
			}
		}
	}

	rows, stats := r.Reconcile(context.Background(), roster, standby)
	require.Len(t, rows, len(roster))
	assert.Equal(t, len(standby), stats.Matched)

	seen := make(map[domain.AggregateKey]int)
	for _, row := range rows {
		key := domain.AggregateKey{Date: row.Date, Station: row.Station, DutyWindow: row.DutyWindow, Rank: row.Rank}
		seen[key]++
		assert.GreaterOrEqual(t, row.StandbyActivationCount, 0)
	}
	for _, row := range roster {
		assert.Equal(t, 1, seen[row.Key()], "roster key %v", row.Key())
	}
}

func TestReconciler_DateBoundary(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	cfg := config.DefaultReportConfig()
	cfg.StartDate = date("2025-07-01")
	cfg.EndDate = date("2025-09-30")
	r := NewReconciler(logger, cfg)

	roster := []domain.AggregateRow{
		aggRow("2025-06-30", "DEL", "0-4", domain.RankCaptain, 1),
		aggRow("2025-07-01", "DEL", "0-4", domain.RankCaptain, 1),
		aggRow("2025-09-30", "DEL", "0-4", domain.RankCaptain, 1),
		aggRow("2025-10-01", "DEL", "0-4", domain.RankCaptain, 1),
	}

	rows, stats := r.Reconcile(context.Background(), roster, nil)

	require.Len(t, rows, 2)
	assert.Equal(t, date("2025-07-01"), rows[0].Date)
	assert.Equal(t, date("2025-09-30"), rows[1].Date)
	assert.Equal(t, 2, stats.OutsideDateRange)
}

func TestReconciler_EmptySides(t *testing.T) {
	roster := []domain.AggregateRow{
		aggRow("2025-07-05", "DEL", "8-12", domain.RankCaptain, 2),
		aggRow("2025-07-05", "DEL", "16-20", domain.RankFirstOfficer, 1),
	}

	tests := []struct {
		name        string
		requireBoth bool
		roster      []domain.AggregateRow
		standby     []domain.AggregateRow
		wantRows    int
		wantRoster  bool
		wantStandby bool
	}{
		{"empty standby zero fills", false, roster, nil, 2, false, true},
		{"empty standby strict", true, roster, nil, 0, false, true},
		{"empty roster", false, nil, roster, 0, true, false},
		{"both empty", false, nil, nil, 0, true, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, logs := testutil.NewTestLogger(t)
			cfg := config.DefaultReportConfig()
			cfg.RequireBothSides = tt.requireBoth
			r := NewReconciler(logger, cfg)

			rows, stats := r.Reconcile(context.Background(), tt.roster, tt.standby)

			require.NotNil(t, rows)
			assert.Len(t, rows, tt.wantRows)
			for _, row := range rows {
				assert.Equal(t, 0, row.StandbyActivationCount)
			}
			assert.Equal(t, tt.wantRoster, stats.RosterEmpty)
			assert.Equal(t, tt.wantStandby, stats.StandbyEmpty)
			testutil.AssertLogContains(t, logs, slog.LevelWarn, "aggregate empty")
		})
	}
}

func TestSortFinalRows_LexicographicWindow(t *testing.T) {
	d := date("2025-07-05")
	rows := []domain.FinalRow{
		{Date: d, Station: "DEL", DutyWindow: "4-8", Rank: domain.RankCaptain},
		{Date: d, Station: "DEL", DutyWindow: "16-20", Rank: domain.RankFirstOfficer},
		{Date: d, Station: "DEL", DutyWindow: "16-20", Rank: domain.RankCaptain},
		{Date: d, Station: "BOM", DutyWindow: "8-12", Rank: domain.RankCaptain},
		{Date: d.AddDays(-1), Station: "DEL", DutyWindow: "20-24", Rank: domain.RankCaptain},
	}

	SortFinalRows(rows)

	got := make([]string, len(rows))
	for i, r := range rows {
		got[i] = r.Date.String() + " " + r.Station + " " + r.DutyWindow + " " + string(r.Rank)
	}
	assert.Equal(t, []string{
		"2025-07-04 DEL 20-24 CP",
		"2025-07-05 BOM 8-12 CP",
		"2025-07-05 DEL 16-20 CP",
		"2025-07-05 DEL 16-20 FO",
		"2025-07-05 DEL 4-8 CP",
	}, got)
}
