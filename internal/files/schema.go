package files

import (
	"strings"
	"unicode"
)

// Table names one of the three source extracts
type Table string

const (
	TableRoster    Table = "roster"
	TableHeadcount Table = "headcount"
	TableStandby   Table = "standby"
)

// Canonical column names
const (
	ColActivationStatus    = "ActivationStatus"
	ColCrewID              = "CrewID"
	ColPositionRank        = "PositionRank"
	ColPairingStartDate    = "PairingStartDate"
	ColDutyDay             = "DutyDay"
	ColTripCode            = "TripCode"
	ColDutyCode            = "DutyCode"
	ColScheduledDeparture  = "ScheduledDeparture"
	ColReportingTime       = "ReportingTime"
	ColFleetType           = "FleetType"
	ColSubfleet            = "Subfleet"
	ColDepartureStation    = "DepartureStation"
	ColStation             = "Station"
	ColRankText            = "RankText"
	ColActivationTimestamp = "ActivationTimestamp"
	ColOldDutyCode         = "OldDutyCode"
	ColNewDutyCode         = "NewDutyCode"
)

// Schema describes the columns a table must provide and the header
// spellings the source systems use for them.
type Schema struct {
	Table    Table
	Required []string
	// Aliases maps a header key (see HeaderKey) to its canonical column
	Aliases map[string]string
}

// RosterSchema is the pairing roster layout
var RosterSchema = Schema{
	Table: TableRoster,
	Required: []string{
		ColActivationStatus, ColCrewID, ColPositionRank, ColPairingStartDate,
		ColDutyDay, ColTripCode, ColDutyCode, ColScheduledDeparture,
		ColReportingTime, ColFleetType, ColSubfleet, ColDepartureStation,
	},
	Aliases: map[string]string{
		"publact":            ColActivationStatus,
		"activationstatus":   ColActivationStatus,
		"id":                 ColCrewID,
		"crewid":             ColCrewID,
		"pos":                ColPositionRank,
		"positionrank":       ColPositionRank,
		"pairingstartdate":   ColPairingStartDate,
		"dutyday":            ColDutyDay,
		"tripcode":           ColTripCode,
		"dutycode":           ColDutyCode,
		"std":                ColScheduledDeparture,
		"scheduleddeparture": ColScheduledDeparture,
		"reporting":          ColReportingTime,
		"reportingtime":      ColReportingTime,
		"fleettype":          ColFleetType,
		"subfleet":           ColSubfleet,
		"pairingstartdep":    ColDepartureStation,
		"departurestation":   ColDepartureStation,
	},
}

// HeadcountSchema is the crew headcount layout
var HeadcountSchema = Schema{
	Table:    TableHeadcount,
	Required: []string{ColCrewID, ColStation, ColRankText},
	Aliases: map[string]string{
		"iga":      ColCrewID,
		"crewid":   ColCrewID,
		"crewbase": ColStation,
		"station":  ColStation,
		"rank":     ColRankText,
		"ranktext": ColRankText,
	},
}

// StandbySchema is the standby activation layout
var StandbySchema = Schema{
	Table:    TableStandby,
	Required: []string{ColCrewID, ColActivationTimestamp, ColOldDutyCode, ColNewDutyCode},
	Aliases: map[string]string{
		"crewid":              ColCrewID,
		"fduttimeist":         ColActivationTimestamp,
		"activationtimestamp": ColActivationTimestamp,
		"olddutycode":         ColOldDutyCode,
		"newdutycode":         ColNewDutyCode,
	},
}

// SchemaFor returns the schema of table
func SchemaFor(table Table) (Schema, bool) {
	switch table {
	case TableRoster:
		return RosterSchema, true
	case TableHeadcount:
		return HeadcountSchema, true
	case TableStandby:
		return StandbySchema, true
	}
	return Schema{}, false
}

// HeaderKey folds a header for alias lookup: lower case with spaces,
// underscores and hyphens removed. "Pairing Start-Dep" becomes "pairingstartdep".
func HeaderKey(header string) string {
	var b strings.Builder
	b.Grow(len(header))
	for _, r := range strings.TrimSpace(header) {
		switch r {
		case ' ', '_', '-', '\t':
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Canonical returns the canonical column for header, or false for a column
// the schema does not know
func (s Schema) Canonical(header string) (string, bool) {
	col, ok := s.Aliases[HeaderKey(header)]
	return col, ok
}

// isPlaceholder reports whether header is an empty or synthetic index column
func isPlaceholder(header string) bool {
	h := strings.TrimSpace(header)
	return h == "" || strings.HasPrefix(strings.ToLower(h), "unnamed")
}
