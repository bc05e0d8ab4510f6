package models

import "fmt"

// GeoPoint is a plain latitude/longitude pair in decimal degrees.
type GeoPoint struct {
	Lat float64 `bson:"lat" json:"lat"`
	Lng float64 `bson:"lng" json:"lng"`
}

// DayWindow is a half-open [StartMinute, EndMinute) working window,
// expressed in minutes from midnight (e.g. 420 for 7:00 AM).
type DayWindow struct {
	StartMinute int `bson:"startMinute" json:"startMinute"`
	EndMinute   int `bson:"endMinute" json:"endMinute"`
}

// MinutesToClock formats minutes-from-midnight as "HH:MM" for display.
func MinutesToClock(m int) string {
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}
