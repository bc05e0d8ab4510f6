package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"soothely/models"
)

func testRules() models.BusinessRules {
	return models.BusinessRules{
		OpeningHour:                8,
		ClosingHour:                18,
		DefaultBufferBeforeMinutes: 15,
		DefaultBufferAfterMinutes:  30,
		MinAdvanceHours:            2,
		DaytimeHourlyRate:          80,
		AfterhoursHourlyRate:       100,
	}
}

func intPtr(v int) *int { return &v }

func TestAvailableSlots_MissingConfig(t *testing.T) {
	window := &models.DayWindow{StartMinute: 540, EndMinute: 1020}
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	_, err := AvailableSlots(models.BusinessRules{}, window, nil, date, 60, date)
	assert.ErrorIs(t, err, ErrConfigMissing)

	_, err = AvailableSlots(testRules(), nil, nil, date, 60, date)
	assert.ErrorIs(t, err, ErrNoWorkingHours)
}

func TestAvailableSlots_WithinWorkingWindow(t *testing.T) {
	// Provider works 9:00-17:00; candidates need duration+afterBuffer room.
	window := &models.DayWindow{StartMinute: 540, EndMinute: 1020}
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC) // a Wednesday
	now := date.AddDate(0, 0, -1)                       // not today, no advance filter

	slots, err := AvailableSlots(testRules(), window, nil, date, 60, now)
	require.NoError(t, err)

	// 9:00 through 15:00: a 16:00 start would need until 17:30.
	assert.Equal(t, []int{540, 600, 660, 720, 780, 840, 900}, slots)
}

func TestAvailableSlots_CommitmentConflicts(t *testing.T) {
	window := &models.DayWindow{StartMinute: 540, EndMinute: 1020}
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	now := date.AddDate(0, 0, -1)

	commitments := []models.Commitment{
		{
			ProviderID:      "p1",
			Date:            "2026-09-02",
			StartMinute:     720, // 12:00
			DurationMinutes: 60,
			Status:          models.CommitmentConfirmed,
		},
	}

	slots, err := AvailableSlots(testRules(), window, commitments, date, 60, now)
	require.NoError(t, err)

	// The 12:00 booking plus 30min after-buffer and 15min before-buffer
	// knocks out the 11:00, 12:00 and 13:00 candidates.
	assert.Equal(t, []int{540, 600, 840, 900}, slots)

	// Property check: no surviving slot overlaps any buffered commitment.
	for _, s := range slots {
		slotEnd := s + 60 + 30
		for _, c := range commitments {
			bookingEnd := c.StartMinute + c.DurationMinutes + 30
			bookingStart := c.StartMinute - 15
			assert.False(t, s < bookingEnd && slotEnd > bookingStart,
				"slot %d overlaps commitment at %d", s, c.StartMinute)
		}
	}
}

func TestAvailableSlots_PerServiceBufferOverride(t *testing.T) {
	window := &models.DayWindow{StartMinute: 540, EndMinute: 1020}
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	now := date.AddDate(0, 0, -1)

	// Hot-stone session needs a 90-minute cleanup after; the override
	// applies to this one commitment only.
	commitments := []models.Commitment{
		{
			ProviderID:         "p1",
			Date:               "2026-09-02",
			StartMinute:        720,
			DurationMinutes:    60,
			BufferAfterMinutes: intPtr(90),
			Status:             models.CommitmentConfirmed,
		},
	}

	slots, err := AvailableSlots(testRules(), window, commitments, date, 60, now)
	require.NoError(t, err)

	// bookingEnd = 720+60+90 = 870, so the 14:00 (840) candidate now
	// conflicts too.
	assert.Equal(t, []int{540, 600, 900}, slots)
}

func TestAvailableSlots_CancelledCommitmentIgnored(t *testing.T) {
	window := &models.DayWindow{StartMinute: 540, EndMinute: 1020}
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	now := date.AddDate(0, 0, -1)

	commitments := []models.Commitment{
		{StartMinute: 720, DurationMinutes: 60, Status: models.CommitmentCancelled},
	}

	slots, err := AvailableSlots(testRules(), window, commitments, date, 60, now)
	require.NoError(t, err)
	assert.Equal(t, []int{540, 600, 660, 720, 780, 840, 900}, slots)
}

func TestAvailableSlots_MinAdvanceRoundsUp(t *testing.T) {
	window := &models.DayWindow{StartMinute: 480, EndMinute: 1080}
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)

	// 10:10 + 2h = 12:10, rounded up to 13:00: the 12:00 slot is excluded,
	// the 13:00 slot survives.
	now := time.Date(2026, 9, 2, 10, 10, 0, 0, time.UTC)
	slots, err := AvailableSlots(testRules(), window, nil, date, 60, now)
	require.NoError(t, err)
	assert.NotContains(t, slots, 720)
	assert.Contains(t, slots, 780)

	// An exact-hour boundary is not pushed further: 10:00 + 2h = 12:00
	// keeps the 12:00 slot.
	now = time.Date(2026, 9, 2, 10, 0, 0, 0, time.UTC)
	slots, err = AvailableSlots(testRules(), window, nil, date, 60, now)
	require.NoError(t, err)
	assert.Contains(t, slots, 720)
}

func TestAvailableSlots_AdvancePastMidnightEmptiesDay(t *testing.T) {
	window := &models.DayWindow{StartMinute: 480, EndMinute: 1080}
	date := time.Date(2026, 9, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 9, 2, 22, 30, 0, 0, time.UTC)

	slots, err := AvailableSlots(testRules(), window, nil, date, 60, now)
	require.NoError(t, err)
	assert.Empty(t, slots)
}
