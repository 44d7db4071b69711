package exporter

import (
	"context"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/nishant32400/CrewStandby/internal/config"
	apperrors "github.com/nishant32400/CrewStandby/internal/errors"
	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

// ReportExporter writes a reconciled report to its output file and, when
// configured, to the SQL sink
type ReportExporter struct {
	csvWriter  *CSVWriter
	xlsxWriter *XLSXWriter
	sink       *SQLSink
	bom        bool
	logger     *slog.Logger
}

// ExporterOption customizes a ReportExporter
type ExporterOption func(*ReportExporter)

// WithSink also loads every exported report into s
func WithSink(s *SQLSink) ExporterOption {
	return func(e *ReportExporter) {
		e.sink = s
	}
}

// WithBOM prefixes CSV output with a UTF-8 byte order mark
func WithBOM(bom bool) ExporterOption {
	return func(e *ReportExporter) {
		e.bom = bom
	}
}

// NewReportExporter creates a new report exporter
func NewReportExporter(paths *config.Paths, logger *slog.Logger, opts ...ExporterOption) *ReportExporter {
	if logger == nil {
		logger = slog.Default()
	}
	e := &ReportExporter{
		csvWriter:  NewCSVWriter(paths, logger),
		xlsxWriter: NewXLSXWriter(paths, logger),
		logger:     logger.With(slog.String("component", "exporter")),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Export writes report to outputPath, picking the format from the extension,
// then replaces the sink table contents. It returns the written path.
func (e *ReportExporter) Export(ctx context.Context, outputPath string, report *domain.Report) (string, error) {
	var (
		written string
		err     error
	)

	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".csv":
		written, err = e.csvWriter.WriteCSV(outputPath, report.Rows, WriteOptions{BOMPrefix: e.bom})
	case ".xlsx":
		written, err = e.xlsxWriter.WriteXLSX(outputPath, report.Rows)
	default:
		return "", apperrors.NewAppValidationError("output path must end in .csv or .xlsx: " + outputPath)
	}
	if err != nil {
		return "", apperrors.NewStorageError("failed to write report", err).WithContext("path", outputPath)
	}

	if e.sink != nil {
		if err := e.sink.Write(ctx, report); err != nil {
			return written, err
		}
	}

	e.logger.InfoContext(ctx, "report exported",
		slog.String("run_id", report.RunID),
		slog.String("path", written),
		slog.Int("rows", len(report.Rows)),
		slog.Bool("sink", e.sink != nil))
	return written, nil
}
