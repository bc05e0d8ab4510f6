package models

import "time"

// BusinessRules is the process-wide scheduling and rate configuration.
// Loaded per computation and never mutated by the engine.
type BusinessRules struct {
	OpeningHour                int      `bson:"openingHour" json:"openingHour"`
	ClosingHour                int      `bson:"closingHour" json:"closingHour"`
	DefaultBufferBeforeMinutes int      `bson:"bufferBeforeMin" json:"bufferBeforeMin"`
	DefaultBufferAfterMinutes  int      `bson:"bufferAfterMin" json:"bufferAfterMin"`
	MinAdvanceHours            int      `bson:"minAdvanceHours" json:"minAdvanceHours"`
	DaytimeHourlyRate          float64  `bson:"daytimeRate" json:"daytimeRate"`
	AfterhoursHourlyRate       float64  `bson:"afterhoursRate" json:"afterhoursRate"`
	WeekendHourlyRate          *float64 `bson:"weekendRate,omitempty" json:"weekendRate,omitempty"`
	UpdatedAt                  time.Time `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// IsZero reports whether the rules were never configured. ClosingHour is the
// discriminator: a configured business always closes after midnight.
func (r BusinessRules) IsZero() bool {
	return r.ClosingHour == 0
}

// PricingRule is a day-of-week/time-window percentage uplift on the
// customer price. The [StartMinute, EndMinute) window is half-open.
type PricingRule struct {
	ID            string  `bson:"id" json:"id"`
	DayOfWeek     int     `bson:"dayOfWeek" json:"dayOfWeek"` // 0=Sunday .. 6=Saturday
	StartMinute   int     `bson:"startMinute" json:"startMinute"`
	EndMinute     int     `bson:"endMinute" json:"endMinute"`
	UpliftPercent float64 `bson:"upliftPct" json:"upliftPct"`
	Label         string  `bson:"label,omitempty" json:"label,omitempty"`
}

// Contains reports whether the rule window covers the given minute of day.
func (r PricingRule) Contains(minuteOfDay int) bool {
	return minuteOfDay >= r.StartMinute && minuteOfDay < r.EndMinute
}

// Overlaps reports whether two rules share a weekday and intersect.
func (r PricingRule) Overlaps(other PricingRule) bool {
	if r.DayOfWeek != other.DayOfWeek {
		return false
	}
	return r.StartMinute < other.EndMinute && r.EndMinute > other.StartMinute
}

// DurationRule is a percentage uplift matched by exact session duration.
type DurationRule struct {
	ID              string  `bson:"id" json:"id"`
	DurationMinutes int     `bson:"durationMinutes" json:"durationMinutes"`
	UpliftPercent   float64 `bson:"upliftPct" json:"upliftPct"`
}
