// Package files locates and reads the roster, headcount and standby extracts.
//
// Discovery resolves a configured input to one file. A glob such as
// "data/inputs/standby_*.csv" resolves to its newest match.
//
// Loader reads delimited text (comma, tab, semicolon or pipe, sniffed from the
// header line) and Excel workbooks, maps source headers such as "PUBLACT" or
// "FDUT TIME IST" onto canonical columns and decodes rows into domain records.
// A missing required column fails the load with a MISSING_COLUMN error; only
// the roster activation status may be absent, in which case every row gets
// the configured active status.
//
// Example usage:
//
//	loader := files.NewLoader(logger, files.NewDiscovery(baseDir), "", "A")
//	inputs, err := loader.LoadInputs(ctx, cfg.Inputs)
//	if apperrors.IsMissingColumn(err) {
//	    // report the column and stop
//	}
package files
