package domain

// Rank is the normalized cockpit rank of a crew member
type Rank string

const (
	// RankUnknown marks a rank that could not be derived
	RankUnknown      Rank = ""
	RankCaptain      Rank = "CP"
	RankFirstOfficer Rank = "FO"
)

// Valid reports whether the rank is one of the known ranks
func (r Rank) Valid() bool {
	return r == RankCaptain || r == RankFirstOfficer
}

// DutyWindow is one of the six fixed four-hour buckets of the day
type DutyWindow struct {
	Label   string `json:"label"`
	Ordinal int    `json:"ordinal"`
}

// Valid reports whether the window was resolved
func (w DutyWindow) Valid() bool {
	return w.Ordinal > 0 && w.Label != ""
}

// DutyWindows lists the windows in ordinal order.
// Each window covers [Start, Start+4) hours.
var DutyWindows = []DutyWindow{
	{Label: "0-4", Ordinal: 1},
	{Label: "4-8", Ordinal: 2},
	{Label: "8-12", Ordinal: 3},
	{Label: "12-16", Ordinal: 4},
	{Label: "16-20", Ordinal: 5},
	{Label: "20-24", Ordinal: 6},
}

// DutyWindowHours is the width of every duty window
const DutyWindowHours = 4
