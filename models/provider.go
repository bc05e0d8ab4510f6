package models

import "time"

// ServiceArea describes where a therapist is willing to travel.
// A polygon (closed ring of at least 3 vertices) takes precedence; the
// radius around the therapist's home coordinates is the fallback when no
// polygon is defined or the polygon test fails.
type ServiceArea struct {
	Polygon  []GeoPoint `bson:"polygon,omitempty" json:"polygon,omitempty"`
	RadiusKm float64    `bson:"radiusKm,omitempty" json:"radiusKm,omitempty"`
}

// Provider is a mobile massage therapist. Read-only to the engine; created
// and edited through the admin surface.
type Provider struct {
	ID           string                `bson:"id" json:"id"`
	Name         string                `bson:"name" json:"name"`
	Email        string                `bson:"email" json:"email,omitempty"`
	PhoneNumber  string                `bson:"phoneNumber" json:"phoneNumber,omitempty"`
	Gender       string                `bson:"gender" json:"gender,omitempty"`
	HourlyRate   float64               `bson:"hourlyRate" json:"hourlyRate"`
	IsActive     bool                  `bson:"isActive" json:"isActive"`
	ServiceIDs   []string              `bson:"serviceIds" json:"serviceIds,omitempty"`
	Location     *GeoPoint             `bson:"location,omitempty" json:"location,omitempty"`
	ServiceArea  *ServiceArea          `bson:"serviceArea,omitempty" json:"serviceArea,omitempty"`
	WorkingHours map[string]DayWindow  `bson:"workingHours,omitempty" json:"workingHours,omitempty"` // keyed by lowercase weekday name
	CreatedAt    time.Time             `bson:"createdAt" json:"createdAt,omitzero"`
	UpdatedAt    time.Time             `bson:"updatedAt" json:"updatedAt,omitzero"`
}

// WeekdayKey returns the WorkingHours map key for a weekday.
func WeekdayKey(wd time.Weekday) string {
	switch wd {
	case time.Sunday:
		return "sunday"
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	default:
		return "saturday"
	}
}

// WindowFor returns the provider's working window for the given weekday, or
// nil when none is configured.
func (p *Provider) WindowFor(wd time.Weekday) *DayWindow {
	if p.WorkingHours == nil {
		return nil
	}
	w, ok := p.WorkingHours[WeekdayKey(wd)]
	if !ok {
		return nil
	}
	return &w
}

// ProviderDTO is the customer-facing projection returned by availability
// search, with contact details stripped.
type ProviderDTO struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Gender      string   `json:"gender,omitempty"`
	HourlyRate  float64  `json:"hourlyRate"`
	ProximityKm float64  `json:"proximityKm"`
	ServiceIDs  []string `json:"serviceIds,omitempty"`
}
