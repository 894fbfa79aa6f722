// Package monitor renders diagnostics for completed or in-progress
// pipeline runs: a scene coverage plot of where cameras were placed in
// the local planar frame.
package monitor

import (
	"fmt"
	"log"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/streetscape-data/panosim/internal/units"
)

// CoveragePlotter accumulates camera placements over a run and writes a
// scatter plot of the covered scene area. Sample is safe to call from a
// pipeline callback.
type CoveragePlotter struct {
	mu        sync.Mutex
	positions plotter.XYs
	recordIDs []string
}

// NewCoveragePlotter creates an empty plotter.
func NewCoveragePlotter() *CoveragePlotter {
	return &CoveragePlotter{}
}

// Sample records one camera placement in scene coordinates (meters).
func (p *CoveragePlotter) Sample(recordID string, x, y float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.positions = append(p.positions, plotter.XY{X: x, Y: y})
	p.recordIDs = append(p.recordIDs, recordID)
}

// Count returns the number of samples collected.
func (p *CoveragePlotter) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.positions)
}

// SpacingStats returns mean and standard deviation of the distance
// between consecutive camera placements, in meters. Useful for spotting
// datasets with uneven capture intervals. Returns zeros with ok=false
// when fewer than two samples exist.
func (p *CoveragePlotter) SpacingStats() (mean, stddev float64, ok bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.positions) < 2 {
		return 0, 0, false
	}

	spacings := make([]float64, 0, len(p.positions)-1)
	for i := 1; i < len(p.positions); i++ {
		dx := p.positions[i].X - p.positions[i-1].X
		dy := p.positions[i].Y - p.positions[i-1].Y
		spacings = append(spacings, math.Hypot(dx, dy))
	}

	mean = stat.Mean(spacings, nil)
	stddev = math.Sqrt(stat.Variance(spacings, nil))
	return mean, stddev, true
}

// WritePNG renders the coverage scatter to a PNG file.
func (p *CoveragePlotter) WritePNG(path string) error {
	p.mu.Lock()
	positions := make(plotter.XYs, len(p.positions))
	copy(positions, p.positions)
	p.mu.Unlock()

	if len(positions) == 0 {
		return fmt.Errorf("no camera placements sampled")
	}

	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("Scene coverage (%d cameras)", len(positions))
	pl.X.Label.Text = "X (m)"
	pl.Y.Label.Text = "Y (m)"

	scatter, err := plotter.NewScatter(positions)
	if err != nil {
		return fmt.Errorf("build scatter: %w", err)
	}
	scatter.GlyphStyle.Radius = vg.Points(2)
	pl.Add(scatter)
	pl.Add(plotter.NewGrid())

	if err := pl.Save(8*vg.Inch, 8*vg.Inch, path); err != nil {
		return fmt.Errorf("save coverage plot: %w", err)
	}

	if mean, stddev, ok := p.SpacingStats(); ok {
		log.Printf("[coverage] wrote %s: %d cameras, spacing mean=%s stddev=%s",
			path, len(positions), units.FormatMeters(mean), units.FormatMeters(stddev))
	} else {
		log.Printf("[coverage] wrote %s: %d cameras", path, len(positions))
	}
	return nil
}
