package models

import "time"

// Commitment statuses.
const (
	CommitmentConfirmed = "confirmed"
	CommitmentCancelled = "cancelled"
)

// Commitment is a confirmed time block occupying a therapist's schedule.
// Created when a booking is confirmed; the engine only ever reads it.
type Commitment struct {
	ID              string    `bson:"id" json:"id"`
	ProviderID      string    `bson:"providerId" json:"providerId"`
	CustomerID      string    `bson:"customerId,omitempty" json:"customerId,omitempty"`
	ServiceID       string    `bson:"serviceId,omitempty" json:"serviceId,omitempty"`
	Date            string    `bson:"date" json:"date"` // "2006-01-02"
	StartMinute     int       `bson:"startMinute" json:"startMinute"`
	DurationMinutes int       `bson:"durationMinutes" json:"durationMinutes"`
	// Per-service buffer overrides; nil means the BusinessRules default applies.
	BufferBeforeMinutes *int      `bson:"bufferBeforeMinutes,omitempty" json:"bufferBeforeMinutes,omitempty"`
	BufferAfterMinutes  *int      `bson:"bufferAfterMinutes,omitempty" json:"bufferAfterMinutes,omitempty"`
	Status              string    `bson:"status" json:"status"`
	Price               float64   `bson:"price,omitempty" json:"price,omitempty"`
	ProviderFee         float64   `bson:"providerFee,omitempty" json:"providerFee,omitempty"`
	CreatedAt           time.Time `bson:"createdAt" json:"createdAt,omitzero"`
}

// EndMinute returns the commitment's finish time excluding buffers.
func (c Commitment) EndMinute() int {
	return c.StartMinute + c.DurationMinutes
}
