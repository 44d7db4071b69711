package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"

	"github.com/nishant32400/CrewStandby/internal/config"
	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

// ReportSheet is the worksheet the XLSX report is written to
const ReportSheet = "Report"

// XLSXWriter writes the reconciled report as an Excel workbook
type XLSXWriter struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewXLSXWriter creates a new Excel writer
func NewXLSXWriter(paths *config.Paths, logger *slog.Logger) *XLSXWriter {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXWriter{paths: paths, logger: logger}
}

// WriteXLSX writes rows to a single-sheet workbook. Counts are numeric cells.
func (w *XLSXWriter) WriteXLSX(filePath string, rows []domain.FinalRow) (string, error) {
	fullPath := resolvePath(w.paths, filePath)

	w.logger.Info("Writing XLSX file",
		slog.String("file_path", filePath),
		slog.String("full_path", fullPath),
		slog.Int("record_count", len(rows)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), ReportSheet); err != nil {
		return "", fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]interface{}, len(domain.ReportColumns))
	for i, col := range domain.ReportColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(ReportSheet, "A1", &header); err != nil {
		return "", fmt.Errorf("failed to write headers: %w", err)
	}

	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		values := []interface{}{
			r.Date.String(),
			r.Station,
			r.DutyWindow,
			string(r.Rank),
			r.PairingStartCount,
			r.StandbyActivationCount,
		}
		if err := f.SetSheetRow(ReportSheet, cell, &values); err != nil {
			return "", fmt.Errorf("failed to write row %d: %w", i, err)
		}
	}

	if err := f.SaveAs(fullPath); err != nil {
		return "", fmt.Errorf("failed to save workbook: %w", err)
	}
	return fullPath, nil
}
