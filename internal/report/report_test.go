package report

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/streetscape-data/panosim/internal/dataset"
)

func testRun() (*dataset.Run, []dataset.RunRecord) {
	run := &dataset.Run{
		RunID:       "run-123",
		OriginLat:   45.0,
		OriginLon:   45.0,
		OriginScale: 1.0,
		Layers:      []string{"Depth", "Normal"},
		Status:      dataset.RunStatusCompleted,
		StartedAtNs: 1700000000000000000,
	}
	records := []dataset.RunRecord{
		{RunID: "run-123", RecordID: "A", X: 0, Y: 0, Z: 10.3, Outputs: []string{"out/A_Depth.jpg", "out/A_Normal.jpg"}},
		{RunID: "run-123", RecordID: "B", X: 12.5, Y: -3.2, Z: 11.0, Outputs: []string{"out/B_Depth.jpg", "out/B_Normal.jpg"}},
	}
	return run, records
}

func TestWriteRunReport(t *testing.T) {
	run, records := testRun()

	var buf bytes.Buffer
	if err := WriteRunReport(&buf, run, records); err != nil {
		t.Fatalf("WriteRunReport: %v", err)
	}

	html := buf.String()
	if !strings.Contains(html, "Camera placements") {
		t.Error("report missing coverage chart title")
	}
	if !strings.Contains(html, "Artifacts per layer") {
		t.Error("report missing layer count chart title")
	}
}

func TestWriteRunReportNilRun(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteRunReport(&buf, nil, nil); err == nil {
		t.Error("nil run should fail")
	}
}

func TestWriteRunReportFile(t *testing.T) {
	run, records := testRun()

	path := filepath.Join(t.TempDir(), "reports", "run-123.html")
	if err := WriteRunReportFile(path, run, records); err != nil {
		t.Fatalf("WriteRunReportFile: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat report: %v", err)
	}
	if info.Size() == 0 {
		t.Error("report file is empty")
	}
}
