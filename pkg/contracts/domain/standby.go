package domain

import "time"

// StandbyRecord is one standby activation event
type StandbyRecord struct {
	CrewID              string `csv:"CrewID" json:"crew_id"`
	ActivationTimestamp string `csv:"ActivationTimestamp" json:"activation_timestamp"`
	OldDutyCode         string `csv:"OldDutyCode" json:"old_duty_code"`
	NewDutyCode         string `csv:"NewDutyCode" json:"new_duty_code"`

	// Derived
	CanonicalTimestamp time.Time  `csv:"-" json:"canonical_timestamp"`
	Date               Date       `csv:"-" json:"date"`
	Window             DutyWindow `csv:"-" json:"duty_window"`
	Station            string     `csv:"-" json:"station"`
	Rank               Rank       `csv:"-" json:"rank"`
}

// HasTimestamp reports whether the activation timestamp was parsed
func (r StandbyRecord) HasTimestamp() bool {
	return !r.CanonicalTimestamp.IsZero()
}

// HeadcountRecord maps a crew member to a home station and rank
type HeadcountRecord struct {
	CrewID   string `csv:"CrewID" json:"crew_id"`
	Station  string `csv:"Station" json:"station"`
	RankText string `csv:"RankText" json:"rank_text"`

	// Derived
	Rank Rank `csv:"-" json:"rank"`
}
