package infrastructure

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/nishant32400/CrewStandby/internal/config"
	"github.com/nishant32400/CrewStandby/internal/shared/testutil"
)

func TestInitializeOTel_Disabled(t *testing.T) {
	logger, _ := testutil.NewTestLogger(t)
	providers, err := InitializeOTel(config.TelemetryConfig{Enabled: false}, logger)
	require.NoError(t, err)
	require.NotNil(t, providers)

	assert.Nil(t, providers.TracerProvider)
	assert.Nil(t, providers.MeterProvider)
	assert.Nil(t, providers.PrometheusHTTP)
	assert.NoError(t, providers.Shutdown(context.Background()))
}

func TestInitializeOTel_UnsupportedExporter(t *testing.T) {
	tests := []struct {
		name string
		cfg  config.TelemetryConfig
	}{
		{
			name: "trace exporter",
			cfg:  config.TelemetryConfig{Enabled: true, TraceExporter: "jaeger", MetricExporter: "none"},
		},
		{
			name: "metric exporter",
			cfg:  config.TelemetryConfig{Enabled: true, TraceExporter: "none", MetricExporter: "statsd"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, _ := testutil.NewTestLogger(t)
			_, err := InitializeOTel(tt.cfg, logger)
			assert.Error(t, err)
		})
	}
}

func TestPipelineMetrics_PrometheusExposition(t *testing.T) {
	cfg := config.TelemetryConfig{
		Enabled:        true,
		ServiceName:    "reconciler-test",
		Environment:    "test",
		TraceExporter:  "none",
		MetricExporter: "prometheus",
		SampleRatio:    1,
	}

	logger, _ := testutil.NewTestLogger(t)
	providers, err := InitializeOTel(cfg, logger)
	require.NoError(t, err)
	defer providers.Shutdown(context.Background())
	require.NotNil(t, providers.PrometheusHTTP)

	metrics, err := NewPipelineMetrics(providers.Meter)
	require.NoError(t, err)

	ctx := context.Background()
	metrics.RecordRowsLoaded(ctx, "roster", 12)
	metrics.RecordExclusions(ctx, "unparsable_timestamp", 2)
	metrics.RecordExclusions(ctx, "null_rank", 0)
	metrics.RecordRun(ctx, 150*time.Millisecond, 7, nil)
	metrics.RecordRun(ctx, time.Second, 0, errors.New("boom"))
	metrics.RecordHTTPRequest(ctx, http.MethodGet, "/api/report", http.StatusOK, 20*time.Millisecond)

	rec := httptest.NewRecorder()
	providers.PrometheusHTTP.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "reconciler_rows_loaded_total")
	assert.Contains(t, body, `table="roster"`)
	assert.Contains(t, body, `reason="unparsable_timestamp"`)
	assert.NotContains(t, body, `reason="null_rank"`)
	assert.Contains(t, body, `status="success"`)
	assert.Contains(t, body, `status="failure"`)
	assert.Contains(t, body, "reconciler_run_duration_seconds")
	assert.True(t, strings.Contains(body, "http_requests_total"))
}

func TestPipelineMetrics_NilSafe(t *testing.T) {
	var metrics *PipelineMetrics
	ctx := context.Background()

	assert.NotPanics(t, func() {
		metrics.RecordRowsLoaded(ctx, "standby", 1)
		metrics.RecordExclusions(ctx, "x", 1)
		metrics.RecordRun(ctx, time.Second, 1, nil)
		metrics.RecordHTTPRequest(ctx, http.MethodGet, "/", http.StatusOK, time.Millisecond)
	})
}

func TestNewPipelineMetrics_GlobalMeter(t *testing.T) {
	metrics, err := NewPipelineMetrics(nil)
	require.NoError(t, err)
	assert.NotNil(t, metrics.Runs)
}

func TestTraceIDFromContext(t *testing.T) {
	assert.Empty(t, TraceIDFromContext(context.Background()))

	// The global provider is a no-op until initialized, so spans carry no trace ID.
	ctx, span := otel.Tracer("test").Start(context.Background(), "op")
	defer span.End()
	assert.Equal(t, span.SpanContext().IsValid(), TraceIDFromContext(ctx) != "")
}
