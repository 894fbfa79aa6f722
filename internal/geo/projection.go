// Package geo converts geodetic coordinates into the local planar scene
// frame used to place cameras. The projection is a spherical transverse
// Mercator (Gauss-Krueger) centred on a fixed tangent point, which keeps
// distortion negligible for the city-scale regions street-level datasets
// cover.
package geo

import (
	"fmt"
	"math"

	"github.com/streetscape-data/panosim/internal/units"
)

// EarthRadiusMeters is the spherical Earth radius used by the projection.
const EarthRadiusMeters = 6378137.0

// singularityEps bounds how close sin(dLon)*cos(lat) may get to +/-1 and
// cos(dLon) to 0 before the transform is rejected as out of domain.
const singularityEps = 1e-12

// DomainError reports a coordinate outside the projection's valid region
// (longitude offsets approaching +/-90 degrees from the tangent point).
// The projection never emits NaN or Inf; it returns this instead.
type DomainError struct {
	Lat    float64 // degrees
	Lon    float64 // degrees
	Reason string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("projection domain error at (lat=%.6f, lon=%.6f): %s", e.Lat, e.Lon, e.Reason)
}

// ScenePosition is a camera position in the local planar frame, meters.
type ScenePosition struct {
	X float64
	Y float64
	Z float64
}

// Origin is the fixed tangent point of the planar projection.
// It is created once per pipeline run and never mutated.
type Origin struct {
	lat0  float64 // radians
	lon0  float64 // radians
	scale float64
}

// NewOrigin builds a projection origin from a tangent point in degrees
// and a scale factor. Scale must be positive; 1.0 means true meters.
func NewOrigin(latDeg, lonDeg, scale float64) (*Origin, error) {
	if scale <= 0 {
		return nil, fmt.Errorf("projection scale must be positive, got %g", scale)
	}
	if math.IsNaN(latDeg) || math.IsNaN(lonDeg) {
		return nil, fmt.Errorf("projection origin must be finite, got (lat=%v, lon=%v)", latDeg, lonDeg)
	}
	return &Origin{
		lat0:  units.DegreesToRadians(latDeg),
		lon0:  units.DegreesToRadians(lonDeg),
		scale: scale,
	}, nil
}

// Scale returns the configured scale factor.
func (o *Origin) Scale() float64 { return o.scale }

// LatDeg returns the tangent point latitude in degrees.
func (o *Origin) LatDeg() float64 { return units.RadiansToDegrees(o.lat0) }

// LonDeg returns the tangent point longitude in degrees.
func (o *Origin) LonDeg() float64 { return units.RadiansToDegrees(o.lon0) }

// FromGeographic projects a geodetic coordinate (degrees) into planar
// scene coordinates (meters) relative to the origin.
//
// Records are expected to lie within a bounded region around the tangent
// point. Longitude offsets approaching +/-90 degrees hit the logarithmic
// singularity of the transform; those return a *DomainError rather than
// propagating NaN/Inf into camera placement.
func (o *Origin) FromGeographic(latDeg, lonDeg float64) (x, y float64, err error) {
	lat := units.DegreesToRadians(latDeg)
	dLon := units.DegreesToRadians(lonDeg) - o.lon0

	b := math.Sin(dLon) * math.Cos(lat)
	if math.Abs(b) >= 1-singularityEps {
		return 0, 0, &DomainError{
			Lat:    latDeg,
			Lon:    lonDeg,
			Reason: fmt.Sprintf("longitude offset too close to +/-90 degrees (B=%.15f)", b),
		}
	}

	cosDLon := math.Cos(dLon)
	if math.Abs(cosDLon) < singularityEps {
		return 0, 0, &DomainError{
			Lat:    latDeg,
			Lon:    lonDeg,
			Reason: "cos(dLon) vanishes, northing undefined",
		}
	}

	x = 0.5 * o.scale * EarthRadiusMeters * math.Log((1+b)/(1-b))
	y = o.scale * EarthRadiusMeters * (math.Atan(math.Tan(lat)/cosDLon) - o.lat0)

	if math.IsInf(x, 0) || math.IsNaN(x) || math.IsInf(y, 0) || math.IsNaN(y) {
		return 0, 0, &DomainError{
			Lat:    latDeg,
			Lon:    lonDeg,
			Reason: "transform produced a non-finite coordinate",
		}
	}
	return x, y, nil
}
