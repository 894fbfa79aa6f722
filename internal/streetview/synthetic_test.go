package streetview

import (
	"testing"

	"github.com/streetscape-data/panosim/internal/fsutil"
)

func TestSyntheticHostRendersToAllLayers(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	host := NewSyntheticHost(fs)

	table, err := BuildRenderGraph(host, fs, "staging", []string{"Depth", "Normal"})
	if err != nil {
		t.Fatalf("BuildRenderGraph: %v", err)
	}
	if err := host.SetCameraPose(CameraPose{}); err != nil {
		t.Fatalf("SetCameraPose: %v", err)
	}
	if err := host.RenderBlocking(); err != nil {
		t.Fatalf("RenderBlocking: %v", err)
	}

	for _, binding := range table.Bindings() {
		entries, err := fs.ReadDir(binding.StagingDir)
		if err != nil {
			t.Fatalf("ReadDir(%s): %v", binding.StagingDir, err)
		}
		if len(entries) != 1 {
			t.Errorf("layer %s has %d artifacts, want 1", binding.Layer, len(entries))
		}
	}
}

func TestSyntheticHostRequiresGraphAndPose(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()

	host := NewSyntheticHost(fs)
	if err := host.RenderBlocking(); err == nil {
		t.Error("render without a wired graph should fail")
	}

	if _, err := BuildRenderGraph(host, fs, "staging", []string{"Depth"}); err != nil {
		t.Fatalf("BuildRenderGraph: %v", err)
	}
	if err := host.RenderBlocking(); err == nil {
		t.Error("render without a camera pose should fail")
	}
}

func TestSyntheticHostResetCameraClearsPose(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	host := NewSyntheticHost(fs)

	host.SetCameraPose(CameraPose{})
	if _, ok := host.LastPose(); !ok {
		t.Fatal("pose not recorded")
	}
	host.ResetCamera()
	if _, ok := host.LastPose(); ok {
		t.Error("pose survived camera reset")
	}
}

func TestSyntheticHostRejectsBadSettings(t *testing.T) {
	fs := fsutil.NewMemoryFileSystem()
	host := NewSyntheticHost(fs)

	if err := host.ConfigureOutput(RenderSettings{Width: -1, AspectRatio: 2}); err == nil {
		t.Error("invalid settings should be rejected")
	}
}
