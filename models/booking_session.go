package models

// ServiceRequest is the customer's search input: where, when, what.
type ServiceRequest struct {
	Location        GeoPoint `json:"location"`
	ServiceID       string   `json:"serviceId"`
	Date            string   `json:"date"` // "2006-01-02"
	DurationMinutes int      `json:"durationMinutes"`
	GenderFilter    string   `json:"genderFilter,omitempty"` // optional match filter
	Discount        float64  `json:"discount,omitempty"`
	GiftCard        float64  `json:"giftCard,omitempty"`
}

// BookingSession is the staged search-select-confirm state, cached in Redis
// between requests.
type BookingSession struct {
	ID               string        `json:"id"`
	Request          ServiceRequest `json:"request"`
	MatchedProviders []ProviderDTO `json:"matchedProviders"`
	SelectedProvider string        `json:"selectedProvider,omitempty"`
	Slots            []int         `json:"slots,omitempty"` // start minutes for the selected provider
}

// ReminderPayload is the asynq task body for commitment reminders.
type ReminderPayload struct {
	CommitmentID string `json:"commitmentId"`
	ProviderID   string `json:"providerId"`
	CustomerID   string `json:"customerId,omitempty"`
	FireDate     string `json:"fireDate"`
	Title        string `json:"title"`
	Body         string `json:"body"`
}
