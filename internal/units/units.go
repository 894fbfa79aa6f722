// Package units provides shared angle and distance conversions for the
// street-view simulation pipeline. Bearings follow the compass convention:
// 0 = north, increasing clockwise, degrees.
package units

import (
	"fmt"
	"math"
)

// DegreesToRadians converts an angle in degrees to radians.
func DegreesToRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}

// RadiansToDegrees converts an angle in radians to degrees.
func RadiansToDegrees(rad float64) float64 {
	return rad * 180.0 / math.Pi
}

// NormalizeBearing maps an arbitrary compass bearing into [0, 360).
// The pipeline accepts out-of-range bearings as-is (rotation is periodic);
// this helper exists for display and storage, not for correctness.
func NormalizeBearing(deg float64) float64 {
	norm := math.Mod(deg, 360.0)
	if norm < 0 {
		norm += 360.0
	}
	return norm
}

// FormatMeters renders a metric distance for log output.
func FormatMeters(m float64) string {
	if math.Abs(m) >= 1000 {
		return fmt.Sprintf("%.3fkm", m/1000.0)
	}
	return fmt.Sprintf("%.2fm", m)
}
