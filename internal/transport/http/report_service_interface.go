package http

import (
	"context"

	"github.com/nishant32400/CrewStandby/internal/services"
	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

// ReportServiceInterface defines the interface for report generation
type ReportServiceInterface interface {
	Generate(ctx context.Context, req services.ReportRequest) (*domain.Report, error)
}

// HealthServiceInterface defines the interface for health probes
type HealthServiceInterface interface {
	HealthCheck(ctx context.Context) services.HealthStatus
	ReadinessCheck(ctx context.Context) services.HealthStatus
	LivenessCheck(ctx context.Context) services.HealthStatus
}
