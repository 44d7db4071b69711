package config

import (
	"strings"

	apperrors "github.com/nishant32400/CrewStandby/internal/errors"
	"github.com/nishant32400/CrewStandby/pkg/contracts/domain"
)

// ReportConfig is the explicit configuration handed to the reconciliation
// pipeline. Nothing in the pipeline reads ambient state.
type ReportConfig struct {
	Subfleets  []string `yaml:"subfleets" envconfig:"SUBFLEETS" validate:"required,min=1,dive,required"`
	FleetTypes []string `yaml:"fleet_types" envconfig:"FLEET_TYPES" validate:"required,min=1,dive,required"`

	// HomeStation restricts both aggregates to one departure station when set
	HomeStation string `yaml:"home_station" envconfig:"HOME_STATION" validate:"omitempty,alphanum,min=3,max=4"`

	// StartDate and EndDate bound the report, both inclusive
	StartDate domain.Date `yaml:"start_date" envconfig:"START_DATE"`
	EndDate   domain.Date `yaml:"end_date" envconfig:"END_DATE"`

	FlightDutyCode string `yaml:"flight_duty_code" envconfig:"FLIGHT_DUTY_CODE" validate:"required"`
	ActiveStatus   string `yaml:"active_status" envconfig:"ACTIVE_STATUS" validate:"required"`

	// RequireBothSides yields an empty report when either aggregate is empty
	RequireBothSides bool `yaml:"require_both_sides" envconfig:"REQUIRE_BOTH_SIDES"`
}

// DefaultReportConfig returns the standard A320/ATR report for Q3 2025
func DefaultReportConfig() ReportConfig {
	start, _ := domain.ParseDate(DefaultStartDate)
	end, _ := domain.ParseDate(DefaultEndDate)

	return ReportConfig{
		Subfleets:      append([]string(nil), DefaultSubfleets...),
		FleetTypes:     append([]string(nil), DefaultFleetTypes...),
		StartDate:      start,
		EndDate:        end,
		FlightDutyCode: DefaultFlightDutyCode,
		ActiveStatus:   DefaultActiveStatus,
	}
}

// Normalized returns a copy with trimmed codes and station
func (r ReportConfig) Normalized() ReportConfig {
	r.Subfleets = normalizeCodes(r.Subfleets)
	r.FleetTypes = normalizeCodes(r.FleetTypes)
	r.HomeStation = strings.TrimSpace(r.HomeStation)
	r.FlightDutyCode = strings.TrimSpace(r.FlightDutyCode)
	r.ActiveStatus = strings.TrimSpace(r.ActiveStatus)
	return r
}

// Validate checks the report configuration
func (r ReportConfig) Validate() error {
	r = r.Normalized()
	if err := validate.Struct(r); err != nil {
		return apperrors.NewConfigError("invalid report configuration", err)
	}
	if r.StartDate.IsZero() || r.EndDate.IsZero() {
		return apperrors.NewConfigError("report start and end dates are required", nil)
	}
	if r.EndDate.Before(r.StartDate) {
		return apperrors.NewConfigError("report end date is before start date", nil).
			WithContext("start_date", r.StartDate.String()).
			WithContext("end_date", r.EndDate.String())
	}
	return nil
}

// SubfleetSet returns the accepted subfleets as a lookup set
func (r ReportConfig) SubfleetSet() map[string]struct{} {
	return toSet(r.Subfleets)
}

// FleetTypeSet returns the accepted fleet types as a lookup set
func (r ReportConfig) FleetTypeSet() map[string]struct{} {
	return toSet(r.FleetTypes)
}

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range normalizeCodes(values) {
		set[v] = struct{}{}
	}
	return set
}
