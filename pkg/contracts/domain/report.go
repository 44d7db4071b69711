package domain

// AggregateKey is the join key shared by both aggregates
type AggregateKey struct {
	Date       Date
	Station    string
	DutyWindow string
	Rank       Rank
}

// AggregateRow is one grouped count of either the roster or the standby aggregate
type AggregateRow struct {
	Date              Date   `json:"date"`
	Station           string `json:"station"`
	DutyWindow        string `json:"duty_window"`
	DutyWindowOrdinal int    `json:"duty_window_ordinal"`
	Rank              Rank   `json:"rank"`
	Count             int    `json:"count"`
}

// Key returns the join key of the row
func (r AggregateRow) Key() AggregateKey {
	return AggregateKey{Date: r.Date, Station: r.Station, DutyWindow: r.DutyWindow, Rank: r.Rank}
}

// FinalRow is one row of the reconciled report
type FinalRow struct {
	Date                   Date   `csv:"Date" json:"date"`
	Station                string `csv:"Station" json:"station"`
	DutyWindow             string `csv:"DutyWindow" json:"duty_window"`
	Rank                   Rank   `csv:"Rank" json:"rank"`
	PairingStartCount      int    `csv:"PairingStartCount" json:"pairing_start_count"`
	StandbyActivationCount int    `csv:"StandbyActivationCount" json:"standby_activation_count"`
}

// ReportColumns lists the output columns in order
var ReportColumns = []string{
	"Date", "Station", "DutyWindow", "Rank", "PairingStartCount", "StandbyActivationCount",
}

// Diagnostics collects the row counts and anomalies of one reconciliation run.
// Data-quality problems are reported here instead of being returned as errors.
type Diagnostics struct {
	RosterRows    int `json:"roster_rows"`
	HeadcountRows int `json:"headcount_rows"`
	StandbyRows   int `json:"standby_rows"`

	ActivationStatusDefaulted bool `json:"activation_status_defaulted"`

	RosterFilteredOut           int `json:"roster_filtered_out"`
	RosterUnparsableTimestamps  int `json:"roster_unparsable_timestamps"`
	RosterUnparsableStartDates  int `json:"roster_unparsable_start_dates"`
	RosterStationExcluded       int `json:"roster_station_excluded"`
	RosterDuplicatesCollapsed   int `json:"roster_duplicates_collapsed"`
	RosterNullRank              int `json:"roster_null_rank"`
	HeadcountDuplicatesDropped  int `json:"headcount_duplicates_dropped"`
	StandbyUnparsableTimestamps int `json:"standby_unparsable_timestamps"`
	StandbyUnresolvedLookups    int `json:"standby_unresolved_lookups"`
	StandbyNullRank             int `json:"standby_null_rank"`
	StandbyStationExcluded      int `json:"standby_station_excluded"`

	RosterAggregateRows  int `json:"roster_aggregate_rows"`
	StandbyAggregateRows int `json:"standby_aggregate_rows"`
	OutsideDateRange     int `json:"outside_date_range"`
	OutputRows           int `json:"output_rows"`

	RosterEmpty  bool `json:"roster_empty"`
	StandbyEmpty bool `json:"standby_empty"`
}

// EmptySides names the aggregates that were empty
func (d Diagnostics) EmptySides() []string {
	var sides []string
	if d.RosterEmpty {
		sides = append(sides, "roster")
	}
	if d.StandbyEmpty {
		sides = append(sides, "standby")
	}
	return sides
}

// Report is the outcome of one reconciliation run
type Report struct {
	RunID       string      `json:"run_id"`
	StartDate   Date        `json:"start_date"`
	EndDate     Date        `json:"end_date"`
	Rows        []FinalRow  `json:"rows"`
	Diagnostics Diagnostics `json:"diagnostics"`
}
