package domain

import "time"

// RosterRecord is one crew duty-leg entry of the pairing roster.
// Source columns are kept as text; derived fields are filled by the
// roster aggregator on its own copy of the record.
type RosterRecord struct {
	CrewID             string `csv:"CrewID" json:"crew_id"`
	PairingStartDate   string `csv:"PairingStartDate" json:"pairing_start_date"`
	TripCode           string `csv:"TripCode" json:"trip_code"`
	DutyCode           string `csv:"DutyCode" json:"duty_code"`
	ActivationStatus   string `csv:"ActivationStatus" json:"activation_status"`
	FleetType          string `csv:"FleetType" json:"fleet_type"`
	Subfleet           string `csv:"Subfleet" json:"subfleet"`
	DepartureStation   string `csv:"DepartureStation" json:"departure_station"`
	PositionRank       string `csv:"PositionRank" json:"position_rank"`
	ScheduledDeparture string `csv:"ScheduledDeparture" json:"scheduled_departure"`
	DutyDay            string `csv:"DutyDay" json:"duty_day"`
	ReportingTime      string `csv:"ReportingTime" json:"reporting_time"`

	// Derived
	StartDate          Date       `csv:"-" json:"start_date"`
	CanonicalTimestamp time.Time  `csv:"-" json:"canonical_timestamp"`
	Window             DutyWindow `csv:"-" json:"duty_window"`
	Rank               Rank       `csv:"-" json:"rank"`
}

// HasTimestamp reports whether a canonical timestamp was resolved
func (r RosterRecord) HasTimestamp() bool {
	return !r.CanonicalTimestamp.IsZero()
}

// PairingKey identifies one logical pairing start
type PairingKey struct {
	CrewID           string
	PairingStartDate Date
	TripCode         string
}

// PairingKey returns the dedup key of the record
func (r RosterRecord) PairingKey() PairingKey {
	return PairingKey{CrewID: r.CrewID, PairingStartDate: r.StartDate, TripCode: r.TripCode}
}
