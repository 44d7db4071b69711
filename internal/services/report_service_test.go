package services

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nishant32400/CrewStandby/internal/config"
	apperrors "github.com/nishant32400/CrewStandby/internal/errors"
	"github.com/nishant32400/CrewStandby/internal/files"
	"github.com/nishant32400/CrewStandby/internal/shared/testutil"
	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

func newTestReportService(t *testing.T, inputs config.InputsConfig) *ReportService {
	t.Helper()

	logger, _ := testutil.NewTestLogger(t)
	cfg := config.Default()
	cfg.Inputs = inputs
	cfg.Report = config.DefaultReportConfig()

	loader := files.NewLoader(logger, files.NewDiscovery(""), "", "")
	return NewReportService(cfg, loader, nil, logger)
}

func sampleInputsConfig(in testutil.InputFiles) config.InputsConfig {
	return config.InputsConfig{
		Roster:    in.Roster,
		Headcount: in.Headcount,
		Standby:   in.Standby,
	}
}

func mustDate(t *testing.T, s string) domain.Date {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func TestReportService_ReportConfig(t *testing.T) {
	svc := newTestReportService(t, config.InputsConfig{})

	tests := []struct {
		name        string
		req         ReportRequest
		wantStart   string
		wantEnd     string
		wantStation string
	}{
		{
			name:      "no overrides",
			req:       ReportRequest{},
			wantStart: config.DefaultStartDate,
			wantEnd:   config.DefaultEndDate,
		},
		{
			name:        "station is trimmed and upper-cased",
			req:         ReportRequest{Station: " del "},
			wantStart:   config.DefaultStartDate,
			wantEnd:     config.DefaultEndDate,
			wantStation: "DEL",
		},
		{
			name:      "date range",
			req:       ReportRequest{Start: mustDate(t, "2025-07-05"), End: mustDate(t, "2025-07-05")},
			wantStart: "2025-07-05",
			wantEnd:   "2025-07-05",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rc := svc.ReportConfig(tt.req)
			assert.Equal(t, tt.wantStart, rc.StartDate.String())
			assert.Equal(t, tt.wantEnd, rc.EndDate.String())
			assert.Equal(t, tt.wantStation, rc.HomeStation)
		})
	}
}

func TestReportService_ReportConfigDoesNotShareSlices(t *testing.T) {
	svc := newTestReportService(t, config.InputsConfig{})

	rc := svc.ReportConfig(ReportRequest{})
	rc.Subfleets[0] = "XXX"

	assert.NotEqual(t, "XXX", svc.ReportConfig(ReportRequest{}).Subfleets[0])
}

func TestReportService_Generate(t *testing.T) {
	in := testutil.WriteSampleInputs(t)
	svc := newTestReportService(t, sampleInputsConfig(in))

	tests := []struct {
		name     string
		req      ReportRequest
		wantRows int
	}{
		{name: "full quarter", req: ReportRequest{}, wantRows: 3},
		{name: "home station", req: ReportRequest{Station: "del"}, wantRows: 2},
		{name: "single day", req: ReportRequest{Start: mustDate(t, "2025-07-06"), End: mustDate(t, "2025-07-06")}, wantRows: 1},
		{name: "window without data", req: ReportRequest{Start: mustDate(t, "2025-08-01"), End: mustDate(t, "2025-08-31")}, wantRows: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report, err := svc.Generate(context.Background(), tt.req)
			require.NoError(t, err)
			require.NotNil(t, report)
			assert.Len(t, report.Rows, tt.wantRows)
			assert.NotEmpty(t, report.RunID)
		})
	}
}

func TestReportService_GenerateHomeStationRows(t *testing.T) {
	in := testutil.WriteSampleInputs(t)
	svc := newTestReportService(t, sampleInputsConfig(in))

	report, err := svc.Generate(context.Background(), ReportRequest{Station: "DEL"})
	require.NoError(t, err)

	for _, row := range report.Rows {
		assert.Equal(t, "DEL", row.Station)
	}
}

func TestReportService_GenerateErrors(t *testing.T) {
	in := testutil.WriteSampleInputs(t)

	dateTests := []struct {
		name string
		req  ReportRequest
	}{
		{
			name: "end before start",
			req:  ReportRequest{Start: mustDate(t, "2025-07-10"), End: mustDate(t, "2025-07-01")},
		},
		{
			name: "start after configured end",
			req:  ReportRequest{Start: mustDate(t, "2025-10-15")},
		},
		{
			name: "end before configured start",
			req:  ReportRequest{End: mustDate(t, "2025-06-30")},
		},
	}
	for _, tt := range dateTests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestReportService(t, sampleInputsConfig(in))
			_, err := svc.Generate(context.Background(), tt.req)
			require.Error(t, err)
			errType, ok := apperrors.TypeOf(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.ErrTypeValidation, errType)
			assert.Contains(t, err.Error(), "end date is before start date")
		})
	}

	t.Run("missing input", func(t *testing.T) {
		inputs := sampleInputsConfig(in)
		inputs.Standby = filepath.Join(in.Dir, "missing.csv")
		svc := newTestReportService(t, inputs)

		_, err := svc.Generate(context.Background(), ReportRequest{})
		require.Error(t, err)
		errType, ok := apperrors.TypeOf(err)
		require.True(t, ok)
		assert.Equal(t, apperrors.ErrTypeNotFound, errType)
	})

	t.Run("missing column", func(t *testing.T) {
		inputs := sampleInputsConfig(in)
		inputs.Headcount = testutil.WriteFile(t, in.Dir, "bad_headcount.csv", "IGA,RANK\n2001,CP\n")
		svc := newTestReportService(t, inputs)

		_, err := svc.Generate(context.Background(), ReportRequest{})
		require.Error(t, err)
		assert.True(t, apperrors.IsMissingColumn(err))
	})
}
