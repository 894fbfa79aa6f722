package streetview

import (
	"context"
	"fmt"
	"log"

	"github.com/streetscape-data/panosim/internal/dataset"
	"github.com/streetscape-data/panosim/internal/fsutil"
	"github.com/streetscape-data/panosim/internal/geo"
)

// RecordOutcome describes one fully reconciled record: the derived pose
// and the canonical output paths, one per layer.
type RecordOutcome struct {
	Record  dataset.GeoRecord
	Pose    CameraPose
	Outputs []string
}

// Pipeline runs the place/render/reconcile cycle over a record source.
//
// The render host exposes exactly one mutable scene, so the pipeline is
// strictly sequential: at most one record is in flight at a time,
// enforced by a single-permit guard even though no goroutines are
// involved today. Cancellation is checked only at the start of each
// cycle; a record that has started always runs to completion or failure.
type Pipeline struct {
	host       RenderHost
	fs         fsutil.FileSystem
	cfg        PipelineConfig
	director   *CameraDirector
	reconciler *PassReconciler
	table      *StagingTable

	// inFlight is the single render permit.
	inFlight chan struct{}

	// OnRecord, if set, is invoked after each record is reconciled, in
	// record order. Used for run manifests and coverage sampling.
	OnRecord func(outcome RecordOutcome)
}

// NewPipeline prepares the host for a run: validates the configuration,
// configures render output, resets the camera, and wires the render
// graph. The staging table is fixed for the pipeline's lifetime.
func NewPipeline(host RenderHost, fs fsutil.FileSystem, cfg PipelineConfig) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("pipeline config: %w", err)
	}

	origin, err := geo.NewOrigin(cfg.OriginLatDeg, cfg.OriginLonDeg, cfg.OriginScale)
	if err != nil {
		return nil, err
	}

	if err := host.ConfigureOutput(cfg.Render); err != nil {
		return nil, fmt.Errorf("configure render output: %w", err)
	}
	if err := host.ResetCamera(); err != nil {
		return nil, fmt.Errorf("reset camera: %w", err)
	}

	table, err := BuildRenderGraph(host, fs, cfg.StagingRoot, cfg.Layers)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		host:       host,
		fs:         fs,
		cfg:        cfg,
		director:   NewCameraDirector(host, origin, cfg.AltitudeOffsetMeters),
		reconciler: NewPassReconciler(fs),
		table:      table,
		inFlight:   make(chan struct{}, 1),
	}
	p.inFlight <- struct{}{}
	return p, nil
}

// StagingTable returns the table wired at construction.
func (p *Pipeline) StagingTable() *StagingTable { return p.table }

// Run processes every record of src exactly once, in source order. It
// returns the number of records fully reconciled. On any failure the run
// halts and the error names the offending record; completed records stay
// on disk, and the failing record leaves nothing in the output directory.
// Skipping a failed record would desynchronize the paired real/simulated
// datasets, so there is no partial-run continuation.
func (p *Pipeline) Run(ctx context.Context, src dataset.Source) (int, error) {
	select {
	case <-p.inFlight:
	default:
		return 0, fmt.Errorf("a render run is already in flight")
	}
	defer func() { p.inFlight <- struct{}{} }()

	it, err := src.Open(ctx)
	if err != nil {
		return 0, fmt.Errorf("open record source: %w", err)
	}
	defer it.Close()

	log.Printf("[pipeline] run started: layers=%v output=%s", p.cfg.Layers, p.cfg.OutputDir)

	count := 0
	for it.Next() {
		rec := it.Record()

		// Cancellation is only honored between cycles; once a record is
		// placed the render must complete before the staging state is
		// safe to abandon.
		select {
		case <-ctx.Done():
			return count, fmt.Errorf("run cancelled after %d records: %w", count, ctx.Err())
		default:
		}

		pose, err := p.director.Place(rec)
		if err != nil {
			return count, &RecordError{RecordID: rec.ID, Err: err}
		}

		if err := p.host.RenderBlocking(); err != nil {
			return count, &RecordError{RecordID: rec.ID, Err: fmt.Errorf("render: %w", err)}
		}

		outputs, err := p.reconciler.Reconcile(p.table, rec.ID, p.cfg.OutputDir)
		if err != nil {
			return count, &RecordError{RecordID: rec.ID, Err: err}
		}

		count++
		log.Printf("[pipeline] record %s done (%d layers, %s)", rec.ID, len(outputs), pose)

		if p.OnRecord != nil {
			p.OnRecord(RecordOutcome{Record: rec, Pose: pose, Outputs: outputs})
		}
	}

	if err := it.Err(); err != nil {
		return count, fmt.Errorf("record source failed after %d records: %w", count, err)
	}

	log.Printf("[pipeline] run complete: %d records", count)
	return count, nil
}
