package models

// Rate tiers for therapist fee classification.
const (
	RateDaytime    = "daytime"
	RateAfterhours = "afterhours"
	RateWeekend    = "weekend"
)

// Provider arrangements for multi-therapist jobs.
const (
	ArrangementSplit    = "split"    // therapists divide the total workload
	ArrangementMultiply = "multiply" // each therapist works the full duration
)

// PriceResult is the customer-facing price breakdown. Ephemeral; computed
// per request and never persisted by the engine itself.
type PriceResult struct {
	BasePrice            float64 `json:"basePrice"`
	DurationUpliftAmount float64 `json:"durationUpliftAmount"`
	TimeUpliftAmount     float64 `json:"timeUpliftAmount"`
	DiscountAmount       float64 `json:"discountAmount"`
	GiftCardAmount       float64 `json:"giftCardAmount"`
	FinalPrice           float64 `json:"finalPrice"`
	GSTComponent         float64 `json:"gstComponent"`
}

// FeeResult is the therapist payout breakdown. Ephemeral.
type FeeResult struct {
	HourlyRate  float64 `json:"hourlyRate"`
	HoursWorked float64 `json:"hoursWorked"`
	RateType    string  `json:"rateType"`
	Fee         float64 `json:"fee"`
}
