package streetview

import (
	"errors"
	"math"
	"testing"

	"github.com/streetscape-data/panosim/internal/dataset"
	"github.com/streetscape-data/panosim/internal/fsutil"
	"github.com/streetscape-data/panosim/internal/geo"
)

func TestCameraDirectorPlace(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	host := NewSyntheticHost(fs)
	origin, err := geo.NewOrigin(45.0, 45.0, 1.0)
	if err != nil {
		t.Fatalf("NewOrigin: %v", err)
	}

	director := NewCameraDirector(host, origin, DefaultAltitudeOffsetMeters)

	rec := dataset.GeoRecord{
		ID:             "A",
		Latitude:       45.0,
		Longitude:      45.0,
		Altitude:       10.0,
		CompassBearing: 0,
	}

	pose, err := director.Place(rec)
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	if math.Abs(pose.Position.X) > 1e-6 || math.Abs(pose.Position.Y) > 1e-6 {
		t.Errorf("position = (%v, %v), want (0, 0)", pose.Position.X, pose.Position.Y)
	}
	if math.Abs(pose.Position.Z-10.3) > 1e-9 {
		t.Errorf("Z = %v, want 10.3", pose.Position.Z)
	}
	if math.Abs(pose.Orientation.RX-math.Pi/2) > 1e-12 || pose.Orientation.RY != 0 || math.Abs(pose.Orientation.RZ) > 1e-12 {
		t.Errorf("orientation = %+v, want (pi/2, 0, 0)", pose.Orientation)
	}

	// The host received the identical pose: position and orientation
	// applied together.
	applied, ok := host.LastPose()
	if !ok {
		t.Fatal("host never received a pose")
	}
	if applied != pose {
		t.Errorf("host pose %+v differs from returned pose %+v", applied, pose)
	}
}

func TestCameraDirectorOverwritesPose(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	host := NewSyntheticHost(fs)
	origin, _ := geo.NewOrigin(0, 0, 1.0)
	director := NewCameraDirector(host, origin, 0)

	first, err := director.Place(dataset.GeoRecord{ID: "a", Latitude: 0.001, Longitude: 0, CompassBearing: 90})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}
	second, err := director.Place(dataset.GeoRecord{ID: "b", Latitude: -0.001, Longitude: 0, CompassBearing: 180})
	if err != nil {
		t.Fatalf("Place: %v", err)
	}

	if first == second {
		t.Fatal("distinct records produced identical poses")
	}
	applied, _ := host.LastPose()
	if applied != second {
		t.Errorf("host holds %+v, want most recent pose %+v", applied, second)
	}
}

func TestCameraDirectorProjectionFailure(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	host := NewSyntheticHost(fs)
	origin, _ := geo.NewOrigin(0, 0, 1.0)
	director := NewCameraDirector(host, origin, 0)

	// Longitude 90 degrees from the tangent point is out of domain.
	_, err := director.Place(dataset.GeoRecord{ID: "bad", Latitude: 0, Longitude: 90})
	var domainErr *geo.DomainError
	if !errors.As(err, &domainErr) {
		t.Fatalf("expected *geo.DomainError, got %T: %v", err, err)
	}

	// The host camera was never touched by the failed placement.
	if _, ok := host.LastPose(); ok {
		t.Error("pose applied despite projection failure")
	}
}
