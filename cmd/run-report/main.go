// Command run-report renders diagnostics for a recorded pipeline run:
// a standalone HTML report (camera coverage and per-layer artifact
// counts) and optionally a PNG scene coverage plot.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/streetscape-data/panosim/internal/dataset"
	"github.com/streetscape-data/panosim/internal/monitor"
	"github.com/streetscape-data/panosim/internal/report"
)

var (
	dbFile   = flag.String("db", "streetviews.db", "Path to the SQLite dataset database")
	runID    = flag.String("run", "", "Run ID to report on (default: most recent run)")
	htmlOut  = flag.String("html", "", "Path for the HTML report")
	pngOut   = flag.String("png", "", "Path for a PNG coverage plot")
	listRuns = flag.Bool("list", false, "List recorded runs and exit")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.Fatalf("run-report: %v", err)
	}
}

func run() error {
	db, err := dataset.Open(*dbFile)
	if err != nil {
		return fmt.Errorf("open dataset %s: %w", *dbFile, err)
	}
	defer db.Close()

	store := dataset.NewRunStore(db)

	if *listRuns {
		runs, err := store.ListRuns()
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			log.Print("no recorded runs")
			return nil
		}
		for _, r := range runs {
			log.Printf("%s  status=%-9s  records=%-5d  layers=%v", r.RunID, r.Status, r.RecordCount, r.Layers)
		}
		return nil
	}

	if *htmlOut == "" && *pngOut == "" {
		return fmt.Errorf("nothing to do: give -html and/or -png (or -list)")
	}

	id := *runID
	if id == "" {
		runs, err := store.ListRuns()
		if err != nil {
			return err
		}
		if len(runs) == 0 {
			return fmt.Errorf("no recorded runs in %s", *dbFile)
		}
		id = runs[0].RunID
		log.Printf("using most recent run %s", id)
	}

	runRow, err := store.GetRun(id)
	if err != nil {
		return err
	}
	records, err := store.ListRunRecords(id)
	if err != nil {
		return err
	}

	if *htmlOut != "" {
		if err := report.WriteRunReportFile(*htmlOut, runRow, records); err != nil {
			return err
		}
		log.Printf("wrote %s", *htmlOut)
	}

	if *pngOut != "" {
		coverage := monitor.NewCoveragePlotter()
		for _, rec := range records {
			coverage.Sample(rec.RecordID, rec.X, rec.Y)
		}
		if err := coverage.WritePNG(*pngOut); err != nil {
			return err
		}
	}

	return nil
}
