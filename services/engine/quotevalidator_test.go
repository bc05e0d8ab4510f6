package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soothely/models"
)

func TestValidateSchedule_CoversRequirement(t *testing.T) {
	days := []models.QuoteDay{
		{Date: "2026-09-07", StartMinute: 540, FinishMinute: 720, DayNumber: 1}, // 180
		{Date: "2026-09-08", StartMinute: 540, FinishMinute: 660, DayNumber: 2}, // 120
	}

	check, err := ValidateSchedule(days, 5, 60)
	require.NoError(t, err)
	assert.True(t, check.OK)
	assert.Equal(t, 300, check.ScheduleMinutes)
	assert.Equal(t, 300, check.RequirementMinutes)
	assert.InDelta(t, 60.0, check.AverageSessionMinutes, 1e-9)
}

func TestValidateSchedule_ScheduleTooShort(t *testing.T) {
	days := []models.QuoteDay{
		{Date: "2026-09-07", StartMinute: 540, FinishMinute: 720, DayNumber: 1},
	}

	// 180 scheduled minutes cannot cover 4 × 60 = 240 required minutes.
	check, err := ValidateSchedule(days, 4, 60)
	require.NoError(t, err)
	assert.False(t, check.OK)
	assert.Equal(t, 180, check.ScheduleMinutes)
	assert.Equal(t, 240, check.RequirementMinutes)
}

func TestValidateSchedule_NegativeSpanContributesZero(t *testing.T) {
	days := []models.QuoteDay{
		{Date: "2026-09-07", StartMinute: 540, FinishMinute: 720, DayNumber: 1},
		{Date: "2026-09-08", StartMinute: 720, FinishMinute: 540, DayNumber: 2}, // malformed
	}

	check, err := ValidateSchedule(days, 3, 60)
	require.NoError(t, err)
	assert.Equal(t, 180, check.ScheduleMinutes)
	assert.True(t, check.OK)
}

func TestValidateSchedule_MinimumFloor(t *testing.T) {
	days := []models.QuoteDay{
		{Date: "2026-09-07", StartMinute: 540, FinishMinute: 630, DayNumber: 1}, // 90
	}

	// Rejected regardless of session count.
	_, err := ValidateSchedule(days, 1, 90)
	assert.ErrorIs(t, err, ErrBelowMinimumDuration)
}

func TestValidateSchedule_DateMonotonicity(t *testing.T) {
	tests := []struct {
		name string
		days []models.QuoteDay
	}{
		{
			name: "duplicate date",
			days: []models.QuoteDay{
				{Date: "2026-09-07", StartMinute: 540, FinishMinute: 720},
				{Date: "2026-09-07", StartMinute: 540, FinishMinute: 720},
			},
		},
		{
			name: "out of order",
			days: []models.QuoteDay{
				{Date: "2026-09-08", StartMinute: 540, FinishMinute: 720},
				{Date: "2026-09-07", StartMinute: 540, FinishMinute: 720},
			},
		},
		{
			name: "unparseable date",
			days: []models.QuoteDay{
				{Date: "07/09/2026", StartMinute: 540, FinishMinute: 720},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateSchedule(tt.days, 2, 120)
			assert.ErrorIs(t, err, ErrNonSequentialDates)
		})
	}
}
