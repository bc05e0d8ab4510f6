package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soothely/models"
)

func feeRules() models.BusinessRules {
	weekend := 130.0
	return models.BusinessRules{
		OpeningHour:          9,
		ClosingHour:          17,
		DaytimeHourlyRate:    80,
		AfterhoursHourlyRate: 110,
		WeekendHourlyRate:    &weekend,
	}
}

func TestTherapistFee_RateClassification(t *testing.T) {
	tests := []struct {
		name         string
		date         time.Time
		startMinute  int
		wantRateType string
		wantRate     float64
	}{
		{
			name:         "saturday is weekend regardless of hour",
			date:         time.Date(2026, 9, 5, 0, 0, 0, 0, time.UTC),
			startMinute:  10 * 60,
			wantRateType: models.RateWeekend,
			wantRate:     130,
		},
		{
			name:         "weekday evening is afterhours",
			date:         time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
			startMinute:  19 * 60,
			wantRateType: models.RateAfterhours,
			wantRate:     110,
		},
		{
			name:         "weekday early morning is afterhours",
			date:         time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
			startMinute:  7 * 60,
			wantRateType: models.RateAfterhours,
			wantRate:     110,
		},
		{
			name:         "closing hour itself is afterhours",
			date:         time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
			startMinute:  17 * 60,
			wantRateType: models.RateAfterhours,
			wantRate:     110,
		},
		{
			name:         "weekday mid-morning is daytime",
			date:         time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC),
			startMinute:  10 * 60,
			wantRateType: models.RateDaytime,
			wantRate:     80,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := TherapistFee(feeRules(), tt.date, tt.startMinute, 60, 1, models.ArrangementSplit)
			require.NoError(t, err)
			assert.Equal(t, tt.wantRateType, res.RateType)
			assert.InDelta(t, tt.wantRate, res.HourlyRate, 1e-9)
		})
	}
}

func TestTherapistFee_WeekendFallsBackToAfterhours(t *testing.T) {
	rules := feeRules()
	rules.WeekendHourlyRate = nil

	res, err := TherapistFee(rules, time.Date(2026, 9, 6, 0, 0, 0, 0, time.UTC), 10*60, 60, 1, models.ArrangementSplit)
	require.NoError(t, err)
	assert.Equal(t, models.RateWeekend, res.RateType)
	assert.InDelta(t, 110.0, res.HourlyRate, 1e-9)
}

func TestTherapistFee_Arrangements(t *testing.T) {
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	split, err := TherapistFee(feeRules(), date, 10*60, 180, 2, models.ArrangementSplit)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, split.HoursWorked, 1e-9)
	assert.InDelta(t, 120.0, split.Fee, 1e-9)

	multiply, err := TherapistFee(feeRules(), date, 10*60, 180, 2, models.ArrangementMultiply)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, multiply.HoursWorked, 1e-9)
	assert.InDelta(t, 240.0, multiply.Fee, 1e-9)

	// providerCount of zero is treated as a single provider.
	solo, err := TherapistFee(feeRules(), date, 10*60, 90, 0, models.ArrangementSplit)
	require.NoError(t, err)
	assert.InDelta(t, 1.5, solo.HoursWorked, 1e-9)
}

func TestTherapistFee_Rounding(t *testing.T) {
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	// 100 minutes over 3 therapists: 33.33 minutes each, 0.56 hours.
	res, err := TherapistFee(feeRules(), date, 10*60, 100, 3, models.ArrangementSplit)
	require.NoError(t, err)
	assert.InDelta(t, 0.56, res.HoursWorked, 1e-9)
	assert.InDelta(t, 44.8, res.Fee, 1e-9)
}

func TestTherapistFee_Errors(t *testing.T) {
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	_, err := TherapistFee(models.BusinessRules{}, date, 600, 60, 1, models.ArrangementSplit)
	assert.ErrorIs(t, err, ErrConfigMissing)

	_, err = TherapistFee(feeRules(), date, 600, 60, 1, "pooled")
	assert.ErrorIs(t, err, ErrInvalidArrangement)
}
