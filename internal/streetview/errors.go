package streetview

import "fmt"

// UnknownLayerError reports a requested render layer that the host does
// not expose as an output pass. Silently skipping the layer would
// desynchronize the staging table from the configured layers, so graph
// construction fails instead.
type UnknownLayerError struct {
	Layer     string
	Available []string
}

func (e *UnknownLayerError) Error() string {
	return fmt.Sprintf("render layer %q is not an available output pass (available: %v)", e.Layer, e.Available)
}

// MissingArtifactError reports a staging directory that is empty after a
// render completed: the host did not produce output for that layer.
type MissingArtifactError struct {
	Layer      string
	StagingDir string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("no artifact for layer %q in %s after render", e.Layer, e.StagingDir)
}

// AmbiguousArtifactError reports a staging directory holding more than
// one file. A stale artifact from a prior record was not drained, which
// indicates a sequencing bug in the place/render/reconcile cycle.
type AmbiguousArtifactError struct {
	Layer      string
	StagingDir string
	Count      int
}

func (e *AmbiguousArtifactError) Error() string {
	return fmt.Sprintf("%d artifacts for layer %q in %s, expected exactly one (stale file from a prior record?)", e.Count, e.Layer, e.StagingDir)
}

// CollisionError reports an output path that already exists. Outputs are
// never silently overwritten.
type CollisionError struct {
	Path string
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("output path already exists: %s", e.Path)
}

// RecordError tags a pipeline failure with the record being processed
// when it occurred.
type RecordError struct {
	RecordID string
	Err      error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("record %s: %v", e.RecordID, e.Err)
}

func (e *RecordError) Unwrap() error { return e.Err }
