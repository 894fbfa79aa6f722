// Command panosim renders simulated panoramic image layers for every
// geo-referenced street-view record in a dataset. It places a panoramic
// camera at each record's projected scene position, renders the
// configured layers, and reconciles the staged outputs into per-record
// files, recording a run manifest alongside the dataset.
//
// The built-in synthetic host writes placeholder artifacts through the
// real staging contract; embedding programs substitute an actual render
// engine behind the same interface.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os/signal"
	"strings"
	"syscall"

	"github.com/streetscape-data/panosim/internal/dataset"
	"github.com/streetscape-data/panosim/internal/fsutil"
	"github.com/streetscape-data/panosim/internal/monitor"
	"github.com/streetscape-data/panosim/internal/streetview"
	"github.com/streetscape-data/panosim/internal/version"
)

var (
	dbFile         = flag.String("db", "streetviews.db", "Path to the SQLite dataset database")
	configFile     = flag.String("config", "", "Optional JSON pipeline config file (flags override)")
	originLat      = flag.Float64("origin-lat", 0, "Projection tangent point latitude (degrees)")
	originLon      = flag.Float64("origin-lon", 0, "Projection tangent point longitude (degrees)")
	originScale    = flag.Float64("scale", 1.0, "Projection scale factor")
	layersFlag     = flag.String("layers", "Depth,Normal,DiffCol", "Comma-separated render layers")
	stagingRoot    = flag.String("staging", "staging", "Staging root for transient per-layer outputs")
	outputDir      = flag.String("out", "output", "Output directory for reconciled images")
	altitudeOffset = flag.Float64("altitude-offset", streetview.DefaultAltitudeOffsetMeters, "Camera lift above record altitude (meters)")
	renderWidth    = flag.Int("width", 2048, "Panorama width in pixels")
	aspectRatio    = flag.Float64("aspect", 2.0, "Panorama aspect ratio (width/height)")
	coveragePNG    = flag.String("coverage-png", "", "Optional path for a scene coverage plot of the run")
	noManifest     = flag.Bool("no-manifest", false, "Skip writing the run manifest to the dataset database")
)

func main() {
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		log.Fatalf("panosim: %v", err)
	}
}

func run(ctx context.Context) error {
	log.Printf("panosim %s", version.String())

	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	db, err := dataset.Open(*dbFile)
	if err != nil {
		return fmt.Errorf("open dataset %s: %w", *dbFile, err)
	}
	defer db.Close()

	total, err := db.CountRecords()
	if err != nil {
		return err
	}
	if total == 0 {
		return fmt.Errorf("dataset %s holds no street-view records (import with dataset-import first)", *dbFile)
	}
	log.Printf("dataset %s: %d street-view records", *dbFile, total)

	fs := fsutil.OSFileSystem{}
	host := streetview.NewSyntheticHost(fs)

	pipeline, err := streetview.NewPipeline(host, fs, cfg)
	if err != nil {
		return err
	}

	var store *dataset.RunStore
	var manifest *dataset.Run
	if !*noManifest {
		store = dataset.NewRunStore(db)
		manifest = &dataset.Run{
			OriginLat:   cfg.OriginLatDeg,
			OriginLon:   cfg.OriginLonDeg,
			OriginScale: cfg.OriginScale,
			Layers:      cfg.Layers,
			StagingRoot: cfg.StagingRoot,
			OutputDir:   cfg.OutputDir,
		}
		if err := store.InsertRun(manifest); err != nil {
			return err
		}
		log.Printf("run manifest: %s", manifest.RunID)
	}

	coverage := monitor.NewCoveragePlotter()
	pipeline.OnRecord = func(o streetview.RecordOutcome) {
		coverage.Sample(o.Record.ID, o.Pose.Position.X, o.Pose.Position.Y)
		if store == nil {
			return
		}
		rec := &dataset.RunRecord{
			RunID:    manifest.RunID,
			RecordID: o.Record.ID,
			X:        o.Pose.Position.X,
			Y:        o.Pose.Position.Y,
			Z:        o.Pose.Position.Z,
			Bearing:  o.Record.CompassBearing,
			Outputs:  o.Outputs,
		}
		if err := store.InsertRunRecord(rec); err != nil {
			log.Printf("manifest write for record %s failed: %v", o.Record.ID, err)
		}
	}

	count, runErr := pipeline.Run(ctx, db.Records())

	if store != nil {
		status := dataset.RunStatusCompleted
		failure := ""
		if runErr != nil {
			status = dataset.RunStatusFailed
			failure = runErr.Error()
		}
		if err := store.FinishRun(manifest.RunID, status, count, failure); err != nil {
			log.Printf("finish run manifest: %v", err)
		}
	}

	if *coveragePNG != "" && count > 0 {
		if err := coverage.WritePNG(*coveragePNG); err != nil {
			log.Printf("coverage plot: %v", err)
		}
	}

	if runErr != nil {
		return fmt.Errorf("after %d records: %w", count, runErr)
	}
	log.Printf("rendered %d records into %s", count, cfg.OutputDir)
	return nil
}

// buildConfig merges the optional config file with command-line flags;
// explicitly set flags win.
func buildConfig() (streetview.PipelineConfig, error) {
	cfg := streetview.DefaultPipelineConfig()
	if *configFile != "" {
		loaded, err := streetview.LoadPipelineConfig(*configFile)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}

	set := make(map[string]bool)
	flag.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if *configFile == "" || set["origin-lat"] {
		cfg.OriginLatDeg = *originLat
	}
	if *configFile == "" || set["origin-lon"] {
		cfg.OriginLonDeg = *originLon
	}
	if *configFile == "" || set["scale"] {
		cfg.OriginScale = *originScale
	}
	if *configFile == "" || set["layers"] {
		cfg.Layers = splitLayers(*layersFlag)
	}
	if *configFile == "" || set["staging"] {
		cfg.StagingRoot = *stagingRoot
	}
	if *configFile == "" || set["out"] {
		cfg.OutputDir = *outputDir
	}
	if *configFile == "" || set["altitude-offset"] {
		cfg.AltitudeOffsetMeters = *altitudeOffset
	}
	if *configFile == "" || set["width"] {
		cfg.Render.Width = *renderWidth
	}
	if *configFile == "" || set["aspect"] {
		cfg.Render.AspectRatio = *aspectRatio
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func splitLayers(s string) []string {
	var layers []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			layers = append(layers, trimmed)
		}
	}
	return layers
}
