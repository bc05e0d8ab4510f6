package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"soothely/models"
)

func TestHaversineKm(t *testing.T) {
	tests := []struct {
		name      string
		a, b      models.GeoPoint
		wantKm    float64
		tolerance float64
	}{
		{
			name:      "same point",
			a:         models.GeoPoint{Lat: -33.8688, Lng: 151.2093},
			b:         models.GeoPoint{Lat: -33.8688, Lng: 151.2093},
			wantKm:    0,
			tolerance: 0.001,
		},
		{
			name:      "Sydney CBD to Parramatta (~20km)",
			a:         models.GeoPoint{Lat: -33.8688, Lng: 151.2093},
			b:         models.GeoPoint{Lat: -33.8151, Lng: 151.0011},
			wantKm:    20,
			tolerance: 2,
		},
		{
			name:      "Sydney to Melbourne (~714km)",
			a:         models.GeoPoint{Lat: -33.8688, Lng: 151.2093},
			b:         models.GeoPoint{Lat: -37.8136, Lng: 144.9631},
			wantKm:    714,
			tolerance: 15,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := HaversineKm(tt.a, tt.b)
			if math.Abs(got-tt.wantKm) > tt.tolerance {
				t.Errorf("HaversineKm() = %f, want %f (±%f)", got, tt.wantKm, tt.tolerance)
			}
		})
	}
}

func TestIsServedBy_Polygon(t *testing.T) {
	triangle := []models.GeoPoint{
		{Lat: 0, Lng: 0},
		{Lat: 0, Lng: 10},
		{Lat: 10, Lng: 0},
	}
	provider := models.Provider{
		ServiceArea: &models.ServiceArea{Polygon: triangle},
	}

	tests := []struct {
		name string
		loc  models.GeoPoint
		want bool
	}{
		{"strictly inside", models.GeoPoint{Lat: 2, Lng: 2}, true},
		{"near centroid", models.GeoPoint{Lat: 3.3, Lng: 3.3}, true},
		{"outside hypotenuse", models.GeoPoint{Lat: 6, Lng: 6}, false},
		{"well outside", models.GeoPoint{Lat: -5, Lng: -5}, false},
		{"vertex counts as inside", models.GeoPoint{Lat: 0, Lng: 0}, true},
		{"edge point counts as inside", models.GeoPoint{Lat: 0, Lng: 5}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsServedBy(tt.loc, provider))
		})
	}
}

func TestIsServedBy_Radius(t *testing.T) {
	home := models.GeoPoint{Lat: -33.8688, Lng: 151.2093}
	provider := models.Provider{
		Location:    &home,
		ServiceArea: &models.ServiceArea{RadiusKm: 15},
	}

	// Parramatta is roughly 20km from the Sydney CBD.
	far := models.GeoPoint{Lat: -33.8151, Lng: 151.0011}
	near := models.GeoPoint{Lat: -33.87, Lng: 151.21}

	assert.True(t, IsServedBy(near, provider))
	assert.False(t, IsServedBy(far, provider))
}

func TestIsServedBy_PolygonPrecedesRadius(t *testing.T) {
	home := models.GeoPoint{Lat: 0, Lng: 0}
	provider := models.Provider{
		Location: &home,
		ServiceArea: &models.ServiceArea{
			Polygon: []models.GeoPoint{
				{Lat: 0, Lng: 0}, {Lat: 0, Lng: 1}, {Lat: 1, Lng: 0},
			},
			RadiusKm: 1000,
		},
	}

	// Outside the polygon but inside the radius: the radius fallback still
	// applies after the polygon test fails.
	assert.True(t, IsServedBy(models.GeoPoint{Lat: 2, Lng: 2}, provider))

	// Inside the polygon: matched before the radius is consulted.
	assert.True(t, IsServedBy(models.GeoPoint{Lat: 0.2, Lng: 0.2}, provider))
}

func TestIsServedBy_NoCoverage(t *testing.T) {
	assert.False(t, IsServedBy(models.GeoPoint{Lat: 1, Lng: 1}, models.Provider{}),
		"provider without a service area must never match")

	// Radius configured but no coordinates: unmatched, not a panic.
	p := models.Provider{ServiceArea: &models.ServiceArea{RadiusKm: 10}}
	assert.False(t, IsServedBy(models.GeoPoint{Lat: 1, Lng: 1}, p))

	// Degenerate two-point "polygon" and no radius.
	p = models.Provider{ServiceArea: &models.ServiceArea{
		Polygon: []models.GeoPoint{{Lat: 0, Lng: 0}, {Lat: 1, Lng: 1}},
	}}
	assert.False(t, IsServedBy(models.GeoPoint{Lat: 0.5, Lng: 0.5}, p))
}
