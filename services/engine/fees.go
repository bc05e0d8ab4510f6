package engine

import (
	"math"
	"time"

	"soothely/models"
)

// TherapistFee classifies a job into a rate tier and computes the provider
// payout. Weekend beats afterhours beats daytime; a missing distinct
// weekend rate falls back to the afterhours rate. With the "split"
// arrangement the therapists divide the total workload; with "multiply"
// each works the full duration independently.
func TherapistFee(
	rules models.BusinessRules,
	date time.Time,
	startMinute int,
	totalDurationMinutes int,
	providerCount int,
	arrangement string,
) (models.FeeResult, error) {
	if rules.IsZero() {
		return models.FeeResult{}, ErrConfigMissing
	}
	if arrangement != models.ArrangementSplit && arrangement != models.ArrangementMultiply {
		return models.FeeResult{}, ErrInvalidArrangement
	}

	rateType := classifyRate(rules, date, startMinute)

	var hourlyRate float64
	switch rateType {
	case models.RateWeekend:
		if rules.WeekendHourlyRate != nil {
			hourlyRate = *rules.WeekendHourlyRate
		} else {
			hourlyRate = rules.AfterhoursHourlyRate
		}
	case models.RateAfterhours:
		hourlyRate = rules.AfterhoursHourlyRate
	default:
		hourlyRate = rules.DaytimeHourlyRate
	}

	durationPerProvider := float64(totalDurationMinutes)
	if arrangement == models.ArrangementSplit {
		if providerCount < 1 {
			providerCount = 1
		}
		durationPerProvider = float64(totalDurationMinutes) / float64(providerCount)
	}

	hoursWorked := round2(durationPerProvider / 60)
	fee := round2(hoursWorked * hourlyRate)
	if fee < 0 {
		fee = 0
	}

	return models.FeeResult{
		HourlyRate:  hourlyRate,
		HoursWorked: hoursWorked,
		RateType:    rateType,
		Fee:         fee,
	}, nil
}

func classifyRate(rules models.BusinessRules, date time.Time, startMinute int) string {
	if wd := date.Weekday(); wd == time.Saturday || wd == time.Sunday {
		return models.RateWeekend
	}
	hour := startMinute / 60
	if hour < rules.OpeningHour || hour >= rules.ClosingHour {
		return models.RateAfterhours
	}
	return models.RateDaytime
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
