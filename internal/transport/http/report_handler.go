package http

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	apierrors "github.com/nishant32400/CrewStandby/internal/errors"
	"github.com/nishant32400/CrewStandby/internal/exporter"
	"github.com/nishant32400/CrewStandby/internal/middleware"
	"github.com/nishant32400/CrewStandby/internal/services"
	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

// ReportQuery holds the query parameters of GET /api/report
type ReportQuery struct {
	Start   string `query:"start" validate:"omitempty,isodate"`
	End     string `query:"end" validate:"omitempty,isodate"`
	Station string `query:"station" validate:"omitempty,station"`
	Format  string `query:"format" validate:"omitempty,oneof=json csv"`
}

// ReportResponse is the JSON body of a generated report
type ReportResponse struct {
	RunID       string             `json:"run_id"`
	StartDate   domain.Date        `json:"start_date"`
	EndDate     domain.Date        `json:"end_date"`
	Rows        []domain.FinalRow  `json:"rows"`
	Count       int                `json:"count"`
	Diagnostics domain.Diagnostics `json:"diagnostics"`
}

// ReportHandler handles report requests with RFC 7807 errors
type ReportHandler struct {
	service      ReportServiceInterface
	validator    *middleware.Validator
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewReportHandler creates a new report handler
func NewReportHandler(service ReportServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *ReportHandler {
	if logger == nil {
		logger = slog.Default()
	}
	if errorHandler == nil {
		errorHandler = apierrors.NewErrorHandler(logger, false)
	}
	return &ReportHandler{
		service:      service,
		validator:    middleware.NewValidator(),
		logger:       logger.With(slog.String("component", "report_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the report routes
func (h *ReportHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetReport)
	return r
}

// parseQuery validates the query string and converts it to a service request
func (h *ReportHandler) parseQuery(r *http.Request) (ReportQuery, services.ReportRequest, error) {
	values := r.URL.Query()
	q := ReportQuery{
		Start:   strings.TrimSpace(values.Get("start")),
		End:     strings.TrimSpace(values.Get("end")),
		Station: strings.TrimSpace(values.Get("station")),
		Format:  strings.ToLower(strings.TrimSpace(values.Get("format"))),
	}
	if err := h.validator.ValidateStruct(q); err != nil {
		return q, services.ReportRequest{}, err
	}

	var req services.ReportRequest
	req.Station = q.Station
	if q.Start != "" {
		req.Start, _ = domain.ParseDate(q.Start)
	}
	if q.End != "" {
		req.End, _ = domain.ParseDate(q.End)
	}
	if !req.Start.IsZero() && !req.End.IsZero() && req.End.Before(req.Start) {
		return q, req, apierrors.ErrValidation("end", "end must not be before start")
	}
	return q, req, nil
}

// GetReport handles GET /api/report. The pipeline runs on the configured
// inputs with the query's date range and station applied.
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	reqID := chimiddleware.GetReqID(r.Context())

	q, req, err := h.parseQuery(r)
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	h.logger.InfoContext(r.Context(), "generating report",
		slog.String("request_id", reqID),
		slog.String("start", q.Start),
		slog.String("end", q.End),
		slog.String("station", q.Station),
	)

	report, err := h.service.Generate(r.Context(), req)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "failed to generate report",
			slog.String("error", err.Error()),
			slog.String("request_id", reqID),
		)
		h.errorHandler.HandleError(w, r, err)
		return
	}

	if q.Format == "csv" {
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="pairing_vs_standby.csv"`)
		if err := exporter.EncodeCSV(w, report.Rows); err != nil {
			h.logger.ErrorContext(r.Context(), "failed to encode report",
				slog.String("error", err.Error()),
				slog.String("request_id", reqID),
			)
		}
		return
	}

	rows := report.Rows
	if rows == nil {
		rows = []domain.FinalRow{}
	}
	render.JSON(w, r, ReportResponse{
		RunID:       report.RunID,
		StartDate:   report.StartDate,
		EndDate:     report.EndDate,
		Rows:        rows,
		Count:       len(rows),
		Diagnostics: report.Diagnostics,
	})
}
