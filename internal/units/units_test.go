package units

import (
	"math"
	"testing"
)

func TestDegreesToRadians(t *testing.T) {
	tests := []struct {
		deg  float64
		want float64
	}{
		{0, 0},
		{90, math.Pi / 2},
		{180, math.Pi},
		{-90, -math.Pi / 2},
		{360, 2 * math.Pi},
	}

	for _, tt := range tests {
		got := DegreesToRadians(tt.deg)
		if math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("DegreesToRadians(%v) = %v, want %v", tt.deg, got, tt.want)
		}
	}
}

func TestRadiansToDegreesRoundTrip(t *testing.T) {
	for _, deg := range []float64{0, 12.5, 90, 273.4, -45} {
		got := RadiansToDegrees(DegreesToRadians(deg))
		if math.Abs(got-deg) > 1e-9 {
			t.Errorf("round trip of %v deg = %v", deg, got)
		}
	}
}

func TestNormalizeBearing(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 0},
		{725, 5},
		{-90, 270},
		{-360, 0},
	}

	for _, tt := range tests {
		if got := NormalizeBearing(tt.in); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("NormalizeBearing(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatMeters(t *testing.T) {
	if got := FormatMeters(12.345); got != "12.35m" {
		t.Errorf("FormatMeters(12.345) = %q", got)
	}
	if got := FormatMeters(1500); got != "1.500km" {
		t.Errorf("FormatMeters(1500) = %q", got)
	}
}
