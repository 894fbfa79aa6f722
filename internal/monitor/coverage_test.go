package monitor

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestCoveragePlotterSampleAndCount(t *testing.T) {
	p := NewCoveragePlotter()
	if p.Count() != 0 {
		t.Errorf("fresh plotter count = %d", p.Count())
	}

	p.Sample("A", 0, 0)
	p.Sample("B", 3, 4)
	if p.Count() != 2 {
		t.Errorf("count = %d, want 2", p.Count())
	}
}

func TestSpacingStats(t *testing.T) {
	p := NewCoveragePlotter()

	if _, _, ok := p.SpacingStats(); ok {
		t.Error("stats with no samples should not be ok")
	}
	p.Sample("A", 0, 0)
	if _, _, ok := p.SpacingStats(); ok {
		t.Error("stats with one sample should not be ok")
	}

	// Two equal 5 m hops: mean 5, stddev 0.
	p.Sample("B", 3, 4)
	p.Sample("C", 6, 8)

	mean, stddev, ok := p.SpacingStats()
	if !ok {
		t.Fatal("stats not available")
	}
	if math.Abs(mean-5) > 1e-9 {
		t.Errorf("mean spacing = %v, want 5", mean)
	}
	if math.Abs(stddev) > 1e-9 {
		t.Errorf("stddev = %v, want 0", stddev)
	}
}

func TestWritePNG(t *testing.T) {
	p := NewCoveragePlotter()
	p.Sample("A", 0, 0)
	p.Sample("B", 10, -5)
	p.Sample("C", -3, 7)

	path := filepath.Join(t.TempDir(), "coverage.png")
	if err := p.WritePNG(path); err != nil {
		t.Fatalf("WritePNG: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat output: %v", err)
	}
	if info.Size() == 0 {
		t.Error("coverage plot is empty")
	}
}

func TestWritePNGNoSamples(t *testing.T) {
	p := NewCoveragePlotter()
	if err := p.WritePNG(filepath.Join(t.TempDir(), "coverage.png")); err == nil {
		t.Error("plotting with no samples should fail")
	}
}
