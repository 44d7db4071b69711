package dataprocessing

import (
	"strconv"
	"strings"

	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

// RankFromPosition derives a rank from a roster seat position. Numeric
// positions map 1 to captain and 2 to first officer; any other number has
// no rank. Text falls back to RankFromText.
func RankFromPosition(raw string) domain.Rank {
	s := strings.TrimSpace(raw)
	if s == "" {
		return domain.RankUnknown
	}

	if pos, err := strconv.ParseFloat(s, 64); err == nil {
		switch pos {
		case 1:
			return domain.RankCaptain
		case 2:
			return domain.RankFirstOfficer
		}
		return domain.RankUnknown
	}

	return RankFromText(s)
}

// RankFromText derives a rank by substring: "CP" before "FO"
func RankFromText(raw string) domain.Rank {
	switch {
	case strings.Contains(raw, string(domain.RankCaptain)):
		return domain.RankCaptain
	case strings.Contains(raw, string(domain.RankFirstOfficer)):
		return domain.RankFirstOfficer
	}
	return domain.RankUnknown
}
