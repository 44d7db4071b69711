// Package services sits between the HTTP handlers and the reconciliation
// core.
//
// ReportService applies per-request overrides (date range, station) to the
// configured report, loads the three inputs and runs the pipeline.
// HealthService answers liveness and readiness probes; readiness requires
// every configured input to resolve to a file.
//
// Services take their dependencies and a *slog.Logger at construction:
//
//	svc := services.NewReportService(cfg, loader, metrics, logger)
//	report, err := svc.Generate(ctx, services.ReportRequest{Station: "DEL"})
package services
