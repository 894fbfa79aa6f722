package streetview

import "fmt"

// RenderHost is the handle to the external 3D rendering engine. The host
// owns exactly one mutable scene (one camera, one render graph), so it is
// a process-wide singleton resource; the pipeline serializes all access.
//
// RenderBlocking must return only once every wired staging directory has
// its artifact on disk. There is no mid-render cancellation: the unit of
// work is one full place/render/reconcile cycle.
type RenderHost interface {
	// ResetCamera clears any existing camera and creates a fresh
	// panoramic camera at the scene origin.
	ResetCamera() error

	// ConfigureOutput sets the render resolution and file format.
	ConfigureOutput(settings RenderSettings) error

	// SetCameraPose applies position and orientation to the active
	// camera in one call, so a pose is never partially applied.
	SetCameraPose(pose CameraPose) error

	// AvailablePasses lists the output pass names the renderer can emit
	// (e.g. "Depth", "Normal", "DiffCol").
	AvailablePasses() []string

	// SetupRenderGraph wires the renderer's layer outputs to the given
	// staging directories, replacing any previously wired graph.
	SetupRenderGraph(bindings []LayerBinding) error

	// RenderBlocking renders one frame and returns once all wired
	// staging directories are populated.
	RenderBlocking() error
}

// RenderSettings holds the output resolution of the panoramic render.
// Height is derived from width and aspect ratio, matching equirectangular
// conventions (aspect 2 gives a full 360x180 panorama).
type RenderSettings struct {
	Width       int     `json:"width"`
	AspectRatio float64 `json:"aspect_ratio"`
}

// DefaultRenderSettings returns the standard 2:1 equirectangular output.
func DefaultRenderSettings() RenderSettings {
	return RenderSettings{Width: 2048, AspectRatio: 2.0}
}

// Height derives the output height from width and aspect ratio.
func (s RenderSettings) Height() int {
	return int(float64(s.Width) / s.AspectRatio)
}

// Validate checks the settings are renderable.
func (s RenderSettings) Validate() error {
	if s.Width <= 0 {
		return fmt.Errorf("render width must be positive, got %d", s.Width)
	}
	if s.AspectRatio <= 0 {
		return fmt.Errorf("aspect ratio must be positive, got %g", s.AspectRatio)
	}
	return nil
}
