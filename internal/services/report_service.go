package services

import (
	"context"
	"log/slog"
	"strings"

	"github.com/nishant32400/CrewStandby/internal/config"
	"github.com/nishant32400/CrewStandby/internal/dataprocessing"
	apperrors "github.com/nishant32400/CrewStandby/internal/errors"
	"github.com/nishant32400/CrewStandby/internal/files"
	"github.com/nishant32400/CrewStandby/internal/infrastructure"
	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

// ReportRequest overrides parts of the configured report for one run.
// Zero values keep the configured setting.
type ReportRequest struct {
	Start   domain.Date
	End     domain.Date
	Station string
}

// ReportService loads the configured inputs and runs the reconciliation
type ReportService struct {
	inputs  config.InputsConfig
	report  config.ReportConfig
	loader  *files.Loader
	metrics *infrastructure.PipelineMetrics
	logger  *slog.Logger
}

// NewReportService creates a report service. metrics may be nil.
func NewReportService(cfg *config.Config, loader *files.Loader, metrics *infrastructure.PipelineMetrics, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("ReportService initialized",
		slog.String("roster", cfg.Inputs.Roster),
		slog.String("headcount", cfg.Inputs.Headcount),
		slog.String("standby", cfg.Inputs.Standby))

	return &ReportService{
		inputs:  cfg.Inputs,
		report:  cfg.Report,
		loader:  loader,
		metrics: metrics,
		logger:  logger.With(slog.String("component", "report_service")),
	}
}

// ReportConfig returns the configured report with req applied
func (s *ReportService) ReportConfig(req ReportRequest) config.ReportConfig {
	rc := s.report
	rc.Subfleets = append([]string(nil), s.report.Subfleets...)
	rc.FleetTypes = append([]string(nil), s.report.FleetTypes...)

	if !req.Start.IsZero() {
		rc.StartDate = req.Start
	}
	if !req.End.IsZero() {
		rc.EndDate = req.End
	}
	if station := strings.TrimSpace(req.Station); station != "" {
		rc.HomeStation = strings.ToUpper(station)
	}
	return rc
}

// Generate validates the effective configuration, loads the three inputs
// and reconciles them. Configuration problems surface before any file is read.
// A request whose dates invert the effective range is a validation error.
func (s *ReportService) Generate(ctx context.Context, req ReportRequest) (*domain.Report, error) {
	rc := s.ReportConfig(req)
	if rc.EndDate.Before(rc.StartDate) {
		return nil, apperrors.NewAppValidationError("report end date is before start date").
			WithContext("start", rc.StartDate.String()).
			WithContext("end", rc.EndDate.String())
	}
	if err := rc.Validate(); err != nil {
		return nil, err
	}

	in, err := s.loader.LoadInputs(ctx, s.inputs)
	if err != nil {
		s.logger.WarnContext(ctx, "failed to load inputs", slog.String("error", err.Error()))
		return nil, err
	}

	pipeline := dataprocessing.NewPipeline(s.logger, rc, dataprocessing.WithMetrics(s.metrics))
	return pipeline.Run(ctx, in)
}
