package engine

import (
	"time"

	"soothely/models"
)

// ScheduleCheck is the outcome of reconciling a quote's event schedule
// against its service requirements.
type ScheduleCheck struct {
	OK                    bool    `json:"ok"`
	ScheduleMinutes       int     `json:"scheduleMinutes"`
	RequirementMinutes    int     `json:"requirementMinutes"`
	AverageSessionMinutes float64 `json:"averageSessionMinutes"` // display-only
}

// ValidateSchedule reconciles the per-day start/finish windows against the
// requested workload. The requirement is computed independently as
// sessions × per-session duration and compared with a real inequality: the
// schedule must provide at least the required minutes. Negative or zero day
// spans contribute zero. Dates must strictly increase and the total must
// clear the 120-minute floor.
func ValidateSchedule(days []models.QuoteDay, sessions, sessionDurationMinutes int) (ScheduleCheck, error) {
	if err := checkSequentialDates(days); err != nil {
		return ScheduleCheck{}, err
	}

	schedule := 0
	for _, d := range days {
		schedule += d.DurationMinutes()
	}
	if schedule < MinQuoteDurationMinutes {
		return ScheduleCheck{}, ErrBelowMinimumDuration
	}

	requirement := sessions * sessionDurationMinutes

	check := ScheduleCheck{
		OK:                 schedule >= requirement,
		ScheduleMinutes:    schedule,
		RequirementMinutes: requirement,
	}
	if sessions > 0 {
		check.AverageSessionMinutes = float64(schedule) / float64(sessions)
	}
	return check, nil
}

func checkSequentialDates(days []models.QuoteDay) error {
	var prev time.Time
	for i, d := range days {
		date, err := time.Parse("2006-01-02", d.Date)
		if err != nil {
			return ErrNonSequentialDates
		}
		if i > 0 && !date.After(prev) {
			return ErrNonSequentialDates
		}
		prev = date
	}
	return nil
}
