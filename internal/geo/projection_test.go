package geo

import (
	"errors"
	"math"
	"testing"
)

func TestNewOriginRejectsBadScale(t *testing.T) {
	for _, scale := range []float64{0, -1, -0.0001} {
		if _, err := NewOrigin(45, 45, scale); err == nil {
			t.Errorf("NewOrigin with scale %v should fail", scale)
		}
	}
}

func TestFromGeographicAtOriginIsZero(t *testing.T) {
	tests := []struct {
		name     string
		lat, lon float64
	}{
		{"equator", 0, 0},
		{"mid_latitude", 45.0, 45.0},
		{"negative", -33.87, 151.21},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origin, err := NewOrigin(tt.lat, tt.lon, 1.0)
			if err != nil {
				t.Fatalf("NewOrigin: %v", err)
			}
			x, y, err := origin.FromGeographic(tt.lat, tt.lon)
			if err != nil {
				t.Fatalf("FromGeographic at origin: %v", err)
			}
			if math.Abs(x) > 1e-6 || math.Abs(y) > 1e-6 {
				t.Errorf("projection of tangent point = (%v, %v), want (0, 0)", x, y)
			}
		})
	}
}

func TestFromGeographicKnownDisplacements(t *testing.T) {
	origin, err := NewOrigin(0, 0, 1.0)
	if err != nil {
		t.Fatalf("NewOrigin: %v", err)
	}

	// 0.001 degrees of latitude along the central meridian is an arc of
	// R * radians(0.001) with zero distortion.
	wantY := EarthRadiusMeters * 0.001 * math.Pi / 180.0
	_, y, err := origin.FromGeographic(0.001, 0)
	if err != nil {
		t.Fatalf("FromGeographic: %v", err)
	}
	if math.Abs(y-wantY) > 1e-6 {
		t.Errorf("northing for +0.001 deg lat = %v, want %v", y, wantY)
	}

	// Same displacement eastward along the equator.
	x, _, err := origin.FromGeographic(0, 0.001)
	if err != nil {
		t.Fatalf("FromGeographic: %v", err)
	}
	if math.Abs(x-wantY) > 1e-3 {
		t.Errorf("easting for +0.001 deg lon = %v, want ~%v", x, wantY)
	}

	// West and south are mirror images.
	xw, yw, err := origin.FromGeographic(-0.001, -0.001)
	if err != nil {
		t.Fatalf("FromGeographic: %v", err)
	}
	if xw >= 0 || yw >= 0 {
		t.Errorf("south-west displacement = (%v, %v), want both negative", xw, yw)
	}
}

func TestFromGeographicScaleScalesLinearly(t *testing.T) {
	unit, _ := NewOrigin(48.85, 2.35, 1.0)
	double, _ := NewOrigin(48.85, 2.35, 2.0)

	x1, y1, err := unit.FromGeographic(48.86, 2.36)
	if err != nil {
		t.Fatalf("FromGeographic: %v", err)
	}
	x2, y2, err := double.FromGeographic(48.86, 2.36)
	if err != nil {
		t.Fatalf("FromGeographic: %v", err)
	}

	if math.Abs(x2-2*x1) > 1e-6 || math.Abs(y2-2*y1) > 1e-6 {
		t.Errorf("scale 2 gave (%v, %v), want (%v, %v)", x2, y2, 2*x1, 2*y1)
	}
}

func TestFromGeographicFiniteWithinDomain(t *testing.T) {
	origin, _ := NewOrigin(45, 45, 1.0)

	for _, dLon := range []float64{-89, -45, -1, 0, 1, 45, 89} {
		for _, lat := range []float64{-60, -10, 0, 10, 45, 60} {
			x, y, err := origin.FromGeographic(lat, 45+dLon)
			if err != nil {
				t.Fatalf("FromGeographic(lat=%v, dLon=%v): %v", lat, dLon, err)
			}
			if math.IsInf(x, 0) || math.IsNaN(x) || math.IsInf(y, 0) || math.IsNaN(y) {
				t.Errorf("non-finite result (%v, %v) at lat=%v dLon=%v", x, y, lat, dLon)
			}
		}
	}
}

func TestFromGeographicSingularities(t *testing.T) {
	origin, _ := NewOrigin(0, 0, 1.0)

	tests := []struct {
		name     string
		lat, lon float64
	}{
		{"dLon_plus_90_on_equator", 0, 90},
		{"dLon_minus_90_on_equator", 0, -90},
		{"dLon_90_mid_latitude", 45, 90},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := origin.FromGeographic(tt.lat, tt.lon)
			if err == nil {
				t.Fatal("expected a domain error, got none")
			}
			var domainErr *DomainError
			if !errors.As(err, &domainErr) {
				t.Fatalf("expected *DomainError, got %T: %v", err, err)
			}
		})
	}
}
