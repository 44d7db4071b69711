// Package config provides centralized configuration management for the
// crew standby reconciler. It handles loading configuration from multiple
// sources, validation, and path resolution.
//
// # Configuration Sources
//
// Configuration is loaded from the following sources in order of precedence:
//
//	1. Environment variables (highest priority)
//	2. A .env file in the working directory
//	3. The YAML configuration file
//	4. Default values (lowest priority)
//
// # Environment Variables
//
// All environment variables follow the pattern CREW_<SECTION>_<FIELD>:
//
//	CREW_REPORT_START_DATE=2025-07-01
//	CREW_REPORT_END_DATE=2025-09-30
//	CREW_REPORT_HOME_STATION=DEL
//	CREW_REPORT_SUBFLEETS=323,32D,32H
//	CREW_INPUTS_ROSTER=data/inputs/roster_*.csv
//	CREW_SINK_DRIVER=mysql
//	CREW_LOGGING_LEVEL=debug
//
// # Report Configuration
//
// ReportConfig carries everything the reconciliation pipeline needs: the
// accepted subfleet and fleet-type sets, the optional home station, the
// inclusive report window and the duty/status codes that mark a flight duty.
// It is passed explicitly to the pipeline so runs with different settings
// can coexist in one process.
//
// # Path Management
//
// Paths lays out data/inputs, data/reports and logs under a base directory
// (CREW_BASE_DIR, the paths.base_dir setting, or the working directory).
// Relative input, output and log paths are resolved against it at load time.
//
// # Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
package config
