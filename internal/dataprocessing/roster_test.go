package dataprocessing

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishant32400/CrewStandby/internal/config"
	"github.com/nishant32400/CrewStandby/internal/shared/testutil"
	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

// leg returns an eligible captain flight-duty record departing DEL
func leg(crew, start, trip, std string) domain.RosterRecord {
	return domain.RosterRecord{
		CrewID:             crew,
		PairingStartDate:   start,
		DutyDay:            start,
		TripCode:           trip,
		DutyCode:           "FDUT",
		ActivationStatus:   "A",
		FleetType:          "320",
		Subfleet:           "323",
		DepartureStation:   "DEL",
		PositionRank:       "1",
		ScheduledDeparture: std,
	}
}

func date(s string) domain.Date {
	d, err := domain.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestRosterAggregator_Prepare_CompactDeparture(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	agg := NewRosterAggregator(logger, config.DefaultReportConfig(), nil)

	src := domain.RosterRecord{
		CrewID:             "1001",
		PairingStartDate:   "2025-07-05",
		TripCode:           "T100",
		ScheduledDeparture: "930",
		DutyDay:            "2025-07-05",
		DutyCode:           "FDUT",
		ActivationStatus:   "A",
		Subfleet:           "323",
		FleetType:          "320",
		DepartureStation:   "DEL",
		PositionRank:       "1",
	}

	rec, strategy := agg.Prepare(src)
	assert.Equal(t, time.Date(2025, 7, 5, 9, 30, 0, 0, time.UTC), rec.CanonicalTimestamp)
	assert.Equal(t, domain.DutyWindow{Label: "8-12", Ordinal: 3}, rec.Window)
	assert.Equal(t, domain.RankCaptain, rec.Rank)
	assert.Equal(t, "scheduled_departure_on_duty_day", strategy)
	assert.True(t, agg.eligible(rec))

	assert.True(t, src.CanonicalTimestamp.IsZero(), "input must not be modified")
}

func TestRosterAggregator_Eligibility(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	agg := NewRosterAggregator(logger, config.DefaultReportConfig(), nil)

	tests := []struct {
		name   string
		modify func(r *domain.RosterRecord)
		want   bool
	}{
		{"eligible", func(r *domain.RosterRecord) {}, true},
		{"padded codes", func(r *domain.RosterRecord) { r.DutyCode = " FDUT "; r.Subfleet = "32D " }, true},
		{"other duty code", func(r *domain.RosterRecord) { r.DutyCode = "LAYO" }, false},
		{"inactive", func(r *domain.RosterRecord) { r.ActivationStatus = "C" }, false},
		{"status case differs", func(r *domain.RosterRecord) { r.ActivationStatus = "a" }, false},
		{"subfleet outside set", func(r *domain.RosterRecord) { r.Subfleet = "738" }, false},
		{"fleet type outside set", func(r *domain.RosterRecord) { r.FleetType = "737" }, false},
		{"atr subfleet", func(r *domain.RosterRecord) { r.Subfleet = "AT7"; r.FleetType = "321" }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := leg("1001", "2025-07-05", "T100", "930")
			tt.modify(&rec)
			prepared, _ := agg.Prepare(rec)
			assert.Equal(t, tt.want, agg.eligible(prepared))
		})
	}
}

func rosterFixture() []domain.RosterRecord {
	filteredDuty := leg("1005", "2025-07-05", "T500", "930")
	filteredDuty.DutyCode = "LAYO"
	filteredStatus := leg("1006", "2025-07-05", "T600", "930")
	filteredStatus.ActivationStatus = "C"
	filteredSubfleet := leg("1007", "2025-07-05", "T700", "930")
	filteredSubfleet.Subfleet = "738"
	filteredFleet := leg("1008", "2025-07-05", "T800", "930")
	filteredFleet.FleetType = "737"

	noTime := leg("1009", "2025-07-05", "T900", "")
	badStart := leg("1010", "??", "T910", "930")
	badStart.DutyDay = "2025-07-05"
	noRank := leg("1011", "2025-07-05", "T920", "930")
	noRank.PositionRank = "3"

	fo := leg("1002", "2025-07-05", "T200", "2025-07-05 10:15")
	fo.PositionRank = "2"
	bom := leg("1003", "2025-07-06", "T300", "0545")
	bom.DepartureStation = "BOM"

	return []domain.RosterRecord{
		leg("1001", "2025-07-05", "T100", "930"),
		leg("1001", "2025-07-05", "T100", "1100"),
		filteredDuty, filteredStatus, filteredSubfleet, filteredFleet,
		noTime, badStart, noRank,
		fo, bom,
	}
}

func TestRosterAggregator_Aggregate(t *testing.T) {
	logger, logs := testutil.NewTestLogger(t)
	agg := NewRosterAggregator(logger, config.DefaultReportConfig(), nil)

	records := rosterFixture()
	before := append([]domain.RosterRecord(nil), records...)

	rows, stats := agg.Aggregate(context.Background(), records)

	assert.Equal(t, []domain.AggregateRow{
		{Date: date("2025-07-05"), Station: "DEL", DutyWindow: "8-12", DutyWindowOrdinal: 3, Rank: domain.RankCaptain, Count: 1},
		{Date: date("2025-07-05"), Station: "DEL", DutyWindow: "8-12", DutyWindowOrdinal: 3, Rank: domain.RankFirstOfficer, Count: 1},
		{Date: date("2025-07-06"), Station: "BOM", DutyWindow: "4-8", DutyWindowOrdinal: 2, Rank: domain.RankCaptain, Count: 1},
	}, rows)

	assert.Equal(t, 11, stats.Input)
	assert.Equal(t, 4, stats.FilteredOut)
	assert.Equal(t, 0, stats.StationExcluded)
	assert.Equal(t, 1, stats.UnparsableTimestamps)
	assert.Equal(t, 1, stats.UnparsableStartDates)
	assert.Equal(t, 1, stats.DuplicatesCollapsed)
	assert.Equal(t, 1, stats.NullRank)
	assert.Equal(t, 3, stats.Groups)
	assert.Equal(t, 1, stats.ResolvedBy["scheduled_departure"])

	assert.Equal(t, before, records, "input must not be modified")
	testutil.AssertLogContains(t, logs, slog.LevelInfo, "roster aggregated")
	testutil.AssertLogAttr(t, logs, "groups", 3)
}

func TestRosterAggregator_HomeStation(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	cfg := config.DefaultReportConfig()
	cfg.HomeStation = " DEL "
	agg := NewRosterAggregator(logger, cfg, nil)

	rows, stats := agg.Aggregate(context.Background(), rosterFixture())

	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, "DEL", r.Station)
	}
	assert.Equal(t, 1, stats.StationExcluded)
}

func TestRosterAggregator_DedupScenario(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	agg := NewRosterAggregator(logger, config.DefaultReportConfig(), nil)

	later := leg("1001", "2025-07-05", "T100", "1100")
	earlier := leg("1001", "2025-07-05", "T100", "930")

	rows, stats := agg.Aggregate(context.Background(), []domain.RosterRecord{later, earlier})

	require.Len(t, rows, 1)
	assert.Equal(t, "8-12", rows[0].DutyWindow)
	assert.Equal(t, 1, rows[0].Count)
	assert.Equal(t, 1, stats.DuplicatesCollapsed)

	prepared := make([]domain.RosterRecord, 0, 2)
	for _, r := range []domain.RosterRecord{later, earlier} {
		p, _ := agg.Prepare(r)
		p.StartDate = date(p.PairingStartDate)
		prepared = append(prepared, p)
	}
	kept := DedupEarliest(prepared)
	require.Len(t, kept, 1)
	assert.Equal(t, time.Date(2025, 7, 5, 9, 30, 0, 0, time.UTC), kept[0].CanonicalTimestamp)
}

func TestDedupEarliest_Property(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	base := time.Date(2025, 7, 5, 0, 0, 0, 0, time.UTC)

	var records []domain.RosterRecord
	for i := 0; i < 500; i++ {
		records = append(records, domain.RosterRecord{
			CrewID:             fmt.Sprintf("C%d", rng.Intn(10)),
			TripCode:           fmt.Sprintf("T%d", rng.Intn(3)),
			StartDate:          domain.DateOf(base.AddDate(0, 0, rng.Intn(2))),
			CanonicalTimestamp: base.Add(time.Duration(rng.Intn(12)) * time.Hour),
			DutyDay:            fmt.Sprint(i),
		})
	}

	kept := DedupEarliest(records)

	type winner struct {
		ts    time.Time
		order string
	}
	expected := make(map[domain.PairingKey]winner)
	for _, r := range records {
		w, seen := expected[r.PairingKey()]
		if !seen || r.CanonicalTimestamp.Before(w.ts) {
			expected[r.PairingKey()] = winner{ts: r.CanonicalTimestamp, order: r.DutyDay}
		}
	}

	require.Len(t, kept, len(expected))
	unique := make(map[domain.PairingKey]bool)
	for _, r := range kept {
		key := r.PairingKey()
		assert.False(t, unique[key], "key %v kept twice", key)
		unique[key] = true

		w := expected[key]
		assert.Equal(t, w.ts, r.CanonicalTimestamp)
		assert.Equal(t, w.order, r.DutyDay, "ties must keep the first occurrence")
	}
}

func TestDedupEarliest_TieKeepsFirst(t *testing.T) {
	ts := time.Date(2025, 7, 5, 9, 30, 0, 0, time.UTC)
	a := domain.RosterRecord{CrewID: "1", TripCode: "T", StartDate: date("2025-07-05"), CanonicalTimestamp: ts, DepartureStation: "DEL"}
	b := a
	b.DepartureStation = "BOM"

	kept := DedupEarliest([]domain.RosterRecord{a, b})
	require.Len(t, kept, 1)
	assert.Equal(t, "DEL", kept[0].DepartureStation)
}
