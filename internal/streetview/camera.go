package streetview

import (
	"fmt"

	"github.com/streetscape-data/panosim/internal/dataset"
	"github.com/streetscape-data/panosim/internal/geo"
)

// DefaultAltitudeOffsetMeters lifts the camera above the reported record
// altitude. Street-level datasets report altitudes at the road surface,
// below the height the capture rig actually sits at.
const DefaultAltitudeOffsetMeters = 0.3

// CameraDirector derives a camera pose from a geo-record and applies it
// to the render host. It owns the pose only for the duration of one
// record; poses are overwritten, never accumulated.
type CameraDirector struct {
	host           RenderHost
	origin         *geo.Origin
	altitudeOffset float64
}

// NewCameraDirector creates a director projecting through origin and
// lifting cameras by altitudeOffset meters.
func NewCameraDirector(host RenderHost, origin *geo.Origin, altitudeOffset float64) *CameraDirector {
	return &CameraDirector{
		host:           host,
		origin:         origin,
		altitudeOffset: altitudeOffset,
	}
}

// Place computes the camera pose for one record and applies it to the
// host's active camera. Position and orientation are handed to the host
// in a single SetCameraPose call so the pose is never partially applied;
// the returned pose is for logging and bookkeeping only.
func (d *CameraDirector) Place(rec dataset.GeoRecord) (CameraPose, error) {
	x, y, err := d.origin.FromGeographic(rec.Latitude, rec.Longitude)
	if err != nil {
		return CameraPose{}, err
	}

	pose := CameraPose{
		Position: geo.ScenePosition{
			X: x,
			Y: y,
			Z: rec.Altitude + d.altitudeOffset,
		},
		Orientation: BearingToOrientation(rec.CompassBearing),
	}

	if err := d.host.SetCameraPose(pose); err != nil {
		return CameraPose{}, fmt.Errorf("apply camera pose: %w", err)
	}
	return pose, nil
}
