// Package report builds standalone HTML reports for recorded pipeline
// runs: camera placement scatter and per-layer artifact counts.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/streetscape-data/panosim/internal/dataset"
)

// WriteRunReport renders a run manifest into a self-contained HTML page.
func WriteRunReport(w io.Writer, run *dataset.Run, records []dataset.RunRecord) error {
	if run == nil {
		return fmt.Errorf("nil run")
	}

	page := components.NewPage()
	page.PageTitle = fmt.Sprintf("Render run %s", run.RunID)
	page.AddCharts(coverageScatter(run, records), layerCounts(run, records))

	if err := page.Render(w); err != nil {
		return fmt.Errorf("render run report: %w", err)
	}
	return nil
}

// WriteRunReportFile writes the report to path, creating parent
// directories as needed.
func WriteRunReportFile(path string, run *dataset.Run, records []dataset.RunRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create report dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	defer f.Close()

	return WriteRunReport(f, run, records)
}

func coverageScatter(run *dataset.Run, records []dataset.RunRecord) *charts.Scatter {
	data := make([]opts.ScatterData, 0, len(records))
	for _, rec := range records {
		data = append(data, opts.ScatterData{
			Value:      []any{rec.X, rec.Y},
			Name:       rec.RecordID,
			SymbolSize: 6,
		})
	}

	subtitle := fmt.Sprintf("origin=(%.5f, %.5f) scale=%g records=%d started=%s",
		run.OriginLat, run.OriginLon, run.OriginScale, len(records),
		time.Unix(0, run.StartedAtNs).Format(time.RFC3339))

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{PageTitle: "Camera coverage", Width: "900px", Height: "900px"}),
		charts.WithTitleOpts(opts.Title{Title: "Camera placements (scene frame)", Subtitle: subtitle}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxisOpts(opts.XAxis{Name: "X (m)", NameLocation: "middle", NameGap: 25}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Y (m)", NameLocation: "middle", NameGap: 30}),
	)
	scatter.AddSeries("cameras", data)
	return scatter
}

func layerCounts(run *dataset.Run, records []dataset.RunRecord) *charts.Bar {
	counts := make(map[string]int, len(run.Layers))
	for _, rec := range records {
		for _, out := range rec.Outputs {
			// Output names follow <record>_<layer>.<ext>.
			base := filepath.Base(out)
			base = strings.TrimSuffix(base, filepath.Ext(base))
			if idx := strings.LastIndex(base, "_"); idx >= 0 {
				counts[base[idx+1:]]++
			}
		}
	}

	x := make([]string, 0, len(run.Layers))
	y := make([]opts.BarData, 0, len(run.Layers))
	for _, layer := range run.Layers {
		x = append(x, layer)
		y = append(y, opts.BarData{Value: counts[layer]})
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{Width: "900px", Height: "480px"}),
		charts.WithTitleOpts(opts.Title{Title: "Artifacts per layer", Subtitle: "status: " + run.Status}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
	)
	bar.SetXAxis(x).AddSeries("artifacts", y,
		charts.WithLabelOpts(opts.Label{Show: opts.Bool(true), Position: "top"}),
	)
	return bar
}
