// Package streetview drives the render host through the place/render/
// reconcile cycle that turns geo-referenced street-view records into
// simulated panoramic image layers.
package streetview

import (
	"fmt"
	"math"

	"github.com/streetscape-data/panosim/internal/geo"
	"github.com/streetscape-data/panosim/internal/units"
)

// EulerAngles is an XYZ-order rotation in radians, matching the render
// host's right-handed camera convention.
type EulerAngles struct {
	RX float64
	RY float64
	RZ float64
}

// CameraPose is a full camera placement: planar scene position plus
// orientation. A pose is transient; the director derives a fresh one per
// record and applies it to the host in a single call.
type CameraPose struct {
	Position    geo.ScenePosition
	Orientation EulerAngles
}

func (p CameraPose) String() string {
	return fmt.Sprintf("pos=(%.3f, %.3f, %.3f) rot=(%.4f, %.4f, %.4f)",
		p.Position.X, p.Position.Y, p.Position.Z,
		p.Orientation.RX, p.Orientation.RY, p.Orientation.RZ)
}

// BearingToOrientation converts a compass bearing (degrees, 0 = north,
// clockwise) into the orientation of a forward-facing panoramic camera:
// a fixed 90-degree tilt on X and a bearing-dependent rotation around Z.
//
// Bearings outside [0, 360) are accepted as-is; the downstream rotation
// is periodic, so no normalization is performed here. The fixed X tilt
// assumes an equirectangular panoramic camera model.
func BearingToOrientation(bearingDeg float64) EulerAngles {
	return EulerAngles{
		RX: math.Pi / 2,
		RY: 0,
		RZ: -units.DegreesToRadians(bearingDeg),
	}
}
