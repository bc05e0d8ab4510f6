package models

import "time"

// Quote lifecycle. Any date/time edit resets the quote to draft.
const (
	QuoteDraft     = "draft"
	QuoteValidated = "validated"
	QuotePriced    = "priced"
	QuoteSubmitted = "submitted"
)

// QuoteDay is one day of a multi-day quote's event schedule.
type QuoteDay struct {
	Date         string `bson:"date" json:"date"` // "2006-01-02"
	StartMinute  int    `bson:"startMinute" json:"startMinute"`
	FinishMinute int    `bson:"finishMinute" json:"finishMinute"`
	DayNumber    int    `bson:"dayNumber" json:"dayNumber"`
}

// DurationMinutes is the day's span, clamped so a malformed finish-before-
// start window contributes zero rather than going negative.
func (d QuoteDay) DurationMinutes() int {
	if span := d.FinishMinute - d.StartMinute; span > 0 {
		return span
	}
	return 0
}

// Quote is a multi-day, multi-session request priced as an estimate band.
type Quote struct {
	ID                     string     `bson:"id" json:"id"`
	CustomerID             string     `bson:"customerId,omitempty" json:"customerId,omitempty"`
	ServiceID              string     `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	Status                 string     `bson:"status" json:"status"`
	Days                   []QuoteDay `bson:"days" json:"days"`
	NumberOfSessions       int        `bson:"numberOfSessions" json:"numberOfSessions"`
	SessionDurationMinutes int        `bson:"sessionDurationMinutes" json:"sessionDurationMinutes"`
	BasePrice              float64    `bson:"basePrice" json:"basePrice"` // hourly base rate used for estimation
	EstimateLow            float64    `bson:"estimateLow,omitempty" json:"estimateLow,omitempty"`
	EstimateHigh           float64    `bson:"estimateHigh,omitempty" json:"estimateHigh,omitempty"`
	EstimateActual         float64    `bson:"estimateActual,omitempty" json:"estimateActual,omitempty"`
	CreatedAt              time.Time  `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt              time.Time  `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// TotalScheduleMinutes sums the clamped day spans.
func (q Quote) TotalScheduleMinutes() int {
	total := 0
	for _, d := range q.Days {
		total += d.DurationMinutes()
	}
	return total
}
