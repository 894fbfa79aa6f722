package streetview

import (
	"fmt"
	"path/filepath"
	"sync"

	"github.com/streetscape-data/panosim/internal/fsutil"
)

// jpegStub is a minimal JPEG payload (SOI + EOI markers) used for
// placeholder artifacts.
var jpegStub = []byte{0xFF, 0xD8, 0xFF, 0xD9}

// SyntheticHost is an in-process RenderHost that writes one placeholder
// JPEG per wired layer on every render. It stands in for the real render
// engine in dry runs and tests: same staging contract, no scene content.
type SyntheticHost struct {
	mu sync.Mutex

	fs       fsutil.FileSystem
	passes   []string
	settings RenderSettings
	bindings []LayerBinding

	pose        CameraPose
	poseApplied bool
	renderCount int
}

// DefaultPasses are the output passes the synthetic renderer advertises.
var DefaultPasses = []string{"Image", "Depth", "Normal", "DiffCol"}

// NewSyntheticHost creates a synthetic host writing through fs. With no
// explicit passes it advertises DefaultPasses.
func NewSyntheticHost(fs fsutil.FileSystem, passes ...string) *SyntheticHost {
	if len(passes) == 0 {
		passes = DefaultPasses
	}
	return &SyntheticHost{
		fs:       fs,
		passes:   passes,
		settings: DefaultRenderSettings(),
	}
}

// ResetCamera clears the camera state.
func (h *SyntheticHost) ResetCamera() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pose = CameraPose{}
	h.poseApplied = false
	return nil
}

// ConfigureOutput stores the render settings.
func (h *SyntheticHost) ConfigureOutput(settings RenderSettings) error {
	if err := settings.Validate(); err != nil {
		return err
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.settings = settings
	return nil
}

// SetCameraPose applies a full pose.
func (h *SyntheticHost) SetCameraPose(pose CameraPose) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.pose = pose
	h.poseApplied = true
	return nil
}

// AvailablePasses lists the advertised output passes.
func (h *SyntheticHost) AvailablePasses() []string {
	out := make([]string, len(h.passes))
	copy(out, h.passes)
	return out
}

// SetupRenderGraph replaces the wired layer bindings.
func (h *SyntheticHost) SetupRenderGraph(bindings []LayerBinding) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.bindings = make([]LayerBinding, len(bindings))
	copy(h.bindings, bindings)
	return nil
}

// RenderBlocking writes one placeholder artifact per wired layer. The
// filename carries the render sequence number, mimicking engines that
// name outputs by frame.
func (h *SyntheticHost) RenderBlocking() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.bindings) == 0 {
		return fmt.Errorf("synthetic render: no render graph wired")
	}
	if !h.poseApplied {
		return fmt.Errorf("synthetic render: camera pose never applied")
	}

	h.renderCount++
	name := fmt.Sprintf("render%04d.jpg", h.renderCount)
	for _, b := range h.bindings {
		if err := h.fs.WriteFile(filepath.Join(b.StagingDir, name), jpegStub, 0644); err != nil {
			return fmt.Errorf("synthetic render: write %s artifact: %w", b.Layer, err)
		}
	}
	return nil
}

// LastPose returns the most recently applied pose, for assertions.
func (h *SyntheticHost) LastPose() (CameraPose, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.pose, h.poseApplied
}

// RenderCount returns how many renders have completed.
func (h *SyntheticHost) RenderCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.renderCount
}
