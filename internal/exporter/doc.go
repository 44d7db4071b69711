// Package exporter writes the reconciled crew report.
//
// This package contains four components:
//
// CSVWriter: writes the final table as CSV through csvutil, optionally with a
// UTF-8 BOM so Excel detects the encoding.
//
// XLSXWriter: writes the final table to the "Report" sheet of a workbook.
//
// SQLSink: replaces the contents of a MySQL or SQLite table with the rows of
// the latest run, inside one transaction.
//
// ReportExporter: picks the writer from the output extension and feeds the
// optional sink.
//
// Example usage:
//
//	exp := exporter.NewReportExporter(paths, logger, exporter.WithBOM(true))
//	path, err := exp.Export(ctx, "pairing_vs_standby.csv", report)
package exporter
