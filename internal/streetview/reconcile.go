package streetview

import (
	"fmt"
	"log"
	"path/filepath"

	"github.com/streetscape-data/panosim/internal/fsutil"
)

// PassReconciler moves rendered artifacts from their per-layer staging
// directories to canonical per-record output paths. Each artifact is
// consumed exactly once: a successful reconcile fully drains every
// staging directory before the next record may be placed.
type PassReconciler struct {
	fs fsutil.FileSystem
}

// NewPassReconciler creates a reconciler over the given filesystem.
func NewPassReconciler(fs fsutil.FileSystem) *PassReconciler {
	return &PassReconciler{fs: fs}
}

type pendingMove struct {
	layer  string
	src    string
	target string
}

// Reconcile locates the single artifact in each staged layer directory
// and moves it to outputDir/<recordID>_<layer><ext>, preserving the
// renderer's file extension. It returns the output paths in layer order.
//
// Reconciliation is all-or-none per record: every staging directory is
// validated before anything is moved, so a failure never leaves a record
// with only some of its layers written. Failure modes:
//   - empty staging dir: *MissingArtifactError
//   - more than one file: *AmbiguousArtifactError
//   - target already exists: *CollisionError
func (r *PassReconciler) Reconcile(table *StagingTable, recordID, outputDir string) ([]string, error) {
	if table == nil || table.Len() == 0 {
		return nil, fmt.Errorf("reconcile: empty staging table")
	}

	// Phase one: validate every layer and plan the moves.
	moves := make([]pendingMove, 0, table.Len())
	for _, binding := range table.Bindings() {
		entries, err := r.fs.ReadDir(binding.StagingDir)
		if err != nil {
			return nil, fmt.Errorf("scan staging dir for layer %q: %w", binding.Layer, err)
		}

		var files []string
		for _, e := range entries {
			if !e.IsDir() {
				files = append(files, e.Name())
			}
		}

		switch len(files) {
		case 0:
			return nil, &MissingArtifactError{Layer: binding.Layer, StagingDir: binding.StagingDir}
		case 1:
			// exactly one fresh artifact, as expected
		default:
			return nil, &AmbiguousArtifactError{Layer: binding.Layer, StagingDir: binding.StagingDir, Count: len(files)}
		}

		src := filepath.Join(binding.StagingDir, files[0])
		target := filepath.Join(outputDir, fmt.Sprintf("%s_%s%s", recordID, binding.Layer, filepath.Ext(files[0])))
		if r.fs.Exists(target) {
			return nil, &CollisionError{Path: target}
		}
		moves = append(moves, pendingMove{layer: binding.Layer, src: src, target: target})
	}

	if err := r.fs.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	// Phase two: commit the moves. A rename failure rolls back the moves
	// already made so the record stays all-or-none.
	outputs := make([]string, 0, len(moves))
	for i, mv := range moves {
		if err := r.fs.Rename(mv.src, mv.target); err != nil {
			for j := i - 1; j >= 0; j-- {
				if rbErr := r.fs.Rename(moves[j].target, moves[j].src); rbErr != nil {
					log.Printf("[reconcile] rollback of %s failed: %v", moves[j].target, rbErr)
				}
			}
			return nil, fmt.Errorf("move artifact for layer %q: %w", mv.layer, err)
		}
		outputs = append(outputs, mv.target)
	}

	return outputs, nil
}
