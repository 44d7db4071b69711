package config

import "github.com/nishant32400/CrewStandby/pkg/contracts"

// Application constants
const (
	AppName    = "Crew Standby Reconciler"
	AppVersion = contracts.Version

	// EnvPrefix namespaces every environment variable, e.g. CREW_REPORT_START_DATE
	EnvPrefix = "CREW"

	// DefaultConfigFile is looked up when no config path is given
	DefaultConfigFile = "config.yaml"
	// DefaultEnvFile is loaded into the environment when present
	DefaultEnvFile = ".env"

	DefaultFlightDutyCode = "FDUT"
	DefaultActiveStatus   = "A"
	DefaultStartDate      = "2025-07-01"
	DefaultEndDate        = "2025-09-30"

	DefaultRosterFile    = "data/inputs/roster.csv"
	DefaultHeadcountFile = "data/inputs/headcount.csv"
	DefaultStandbyFile   = "data/inputs/standby.csv"
	DefaultOutputFile    = "data/reports/pairing_vs_standby.csv"
	DefaultSinkTable     = "pairing_vs_standby"
)

// DefaultSubfleets is the accepted subfleet set
var DefaultSubfleets = []string{"323", "32D", "32H", "32M", "32P", "32S", "32V", "AT7", "ATR"}

// DefaultFleetTypes is the accepted fleet-type set
var DefaultFleetTypes = []string{"320", "321"}
