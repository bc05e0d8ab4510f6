package engine

import (
	"sort"
	"time"

	"soothely/models"
)

// AvailableSlots computes the bookable start times (minutes from midnight,
// hourly granularity) for one provider on one day.
//
// rules is the BusinessRules snapshot, window the provider's working hours
// for the weekday of date (nil when none are configured), commitments the
// provider's existing bookings for that calendar date, and now the caller's
// clock reading for the same-day minimum-advance filter.
func AvailableSlots(
	rules models.BusinessRules,
	window *models.DayWindow,
	commitments []models.Commitment,
	date time.Time,
	durationMinutes int,
	now time.Time,
) ([]int, error) {
	if rules.IsZero() {
		return nil, ErrConfigMissing
	}
	if window == nil {
		return nil, ErrNoWorkingHours
	}

	afterBuffer := rules.DefaultBufferAfterMinutes
	beforeBuffer := rules.DefaultBufferBeforeMinutes
	_ = beforeBuffer

	var slots []int
	for hour := rules.OpeningHour; hour <= rules.ClosingHour; hour++ {
		start := hour * 60
		end := start + durationMinutes + afterBuffer

		// The required working window must fit inside the provider's day.
		if start < window.StartMinute || end > window.EndMinute {
			continue
		}
		if conflictsWithCommitments(start, end, commitments, rules) {
			continue
		}
		slots = append(slots, start)
	}

	if sameDay(date, now) {
		boundary := advanceBoundaryMinute(now, rules.MinAdvanceHours)
		slots = filterBefore(slots, boundary)
	}

	sort.Ints(slots)
	return dedupe(slots), nil
}

// conflictsWithCommitments runs the interval-overlap test extended by
// asymmetric buffers. A commitment's own after-buffer override takes
// precedence over the BusinessRules default for that one commitment.
func conflictsWithCommitments(slotStart, slotEnd int, commitments []models.Commitment, rules models.BusinessRules) bool {
	for _, c := range commitments {
		if c.Status == models.CommitmentCancelled {
			continue
		}
		after := rules.DefaultBufferAfterMinutes
		if c.BufferAfterMinutes != nil {
			after = *c.BufferAfterMinutes
		}
		before := rules.DefaultBufferBeforeMinutes
		if c.BufferBeforeMinutes != nil {
			before = *c.BufferBeforeMinutes
		}
		bookingEnd := c.StartMinute + c.DurationMinutes + after
		bookingStart := c.StartMinute - before
		if slotStart < bookingEnd && slotEnd > bookingStart {
			return true
		}
	}
	return false
}

// advanceBoundaryMinute returns now + minAdvanceHours rounded up to the
// next whole hour, as minutes from midnight. A boundary of 12:10 becomes
// 13:00; an exact 12:00 stays 12:00. A boundary that rolls past midnight
// excludes the whole day.
func advanceBoundaryMinute(now time.Time, minAdvanceHours int) int {
	boundary := now.Add(time.Duration(minAdvanceHours) * time.Hour)
	if boundary.Minute() != 0 || boundary.Second() != 0 || boundary.Nanosecond() != 0 {
		boundary = boundary.Truncate(time.Hour).Add(time.Hour)
	}
	if !sameDay(boundary, now) {
		return 24 * 60
	}
	return boundary.Hour() * 60
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func filterBefore(slots []int, boundary int) []int {
	kept := slots[:0]
	for _, s := range slots {
		if s >= boundary {
			kept = append(kept, s)
		}
	}
	return kept
}

func dedupe(sorted []int) []int {
	if len(sorted) < 2 {
		return sorted
	}
	out := sorted[:1]
	for _, s := range sorted[1:] {
		if s != out[len(out)-1] {
			out = append(out, s)
		}
	}
	return out
}
