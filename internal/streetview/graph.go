package streetview

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/streetscape-data/panosim/internal/fsutil"
)

// LayerBinding associates one render layer with its on-disk staging
// directory.
type LayerBinding struct {
	Layer      string
	StagingDir string
}

// StagingTable is the immutable mapping from layer name to staging
// directory, in the order the layers were requested. It is built once per
// run by BuildRenderGraph; changing the layer list requires rebuilding
// the graph, which invalidates any in-flight artifacts.
type StagingTable struct {
	bindings []LayerBinding
	byLayer  map[string]string
}

// Bindings returns the layer bindings in request order.
func (t *StagingTable) Bindings() []LayerBinding {
	out := make([]LayerBinding, len(t.bindings))
	copy(out, t.bindings)
	return out
}

// Layers returns the layer names in request order.
func (t *StagingTable) Layers() []string {
	out := make([]string, len(t.bindings))
	for i, b := range t.bindings {
		out[i] = b.Layer
	}
	return out
}

// Dir returns the staging directory bound to a layer.
func (t *StagingTable) Dir(layer string) (string, bool) {
	dir, ok := t.byLayer[layer]
	return dir, ok
}

// Len returns the number of bound layers.
func (t *StagingTable) Len() int { return len(t.bindings) }

// BuildRenderGraph validates the requested layers against the host's
// available output passes, creates one empty staging subdirectory per
// layer under stagingRoot, and wires the host's render graph to them.
// Any previously wired graph is replaced.
//
// Every requested layer must exist as a host output pass; an unknown
// name fails with *UnknownLayerError rather than being skipped, keeping
// the staging table one-to-one with the configured layers.
func BuildRenderGraph(host RenderHost, fs fsutil.FileSystem, stagingRoot string, layers []string) (*StagingTable, error) {
	if len(layers) == 0 {
		return nil, fmt.Errorf("no render layers requested")
	}

	available := host.AvailablePasses()
	availSet := make(map[string]bool, len(available))
	for _, p := range available {
		availSet[p] = true
	}

	table := &StagingTable{byLayer: make(map[string]string, len(layers))}
	for _, layer := range layers {
		if _, dup := table.byLayer[layer]; dup {
			return nil, fmt.Errorf("render layer %q requested twice", layer)
		}
		if !availSet[layer] {
			return nil, &UnknownLayerError{Layer: layer, Available: available}
		}

		dir := filepath.Join(stagingRoot, layer)
		if err := fs.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create staging dir for layer %q: %w", layer, err)
		}

		table.bindings = append(table.bindings, LayerBinding{Layer: layer, StagingDir: dir})
		table.byLayer[layer] = dir
	}

	if err := host.SetupRenderGraph(table.Bindings()); err != nil {
		return nil, fmt.Errorf("wire render graph: %w", err)
	}

	log.Printf("[graph] wired %d render layers under %s", table.Len(), stagingRoot)
	return table, nil
}
