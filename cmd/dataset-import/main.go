// Command dataset-import loads street-view records from a CSV export
// into the SQLite dataset the render pipeline consumes. It also exposes
// schema migration operations for the dataset database.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/streetscape-data/panosim/internal/dataset"
)

var (
	dbFile        = flag.String("db", "streetviews.db", "Path to the SQLite dataset database")
	csvFile       = flag.String("csv", "", "CSV file of street-view records to import")
	migrationsDir = flag.String("migrations", "migrations", "Path to the migrations directory")
	migrateCmd    = flag.String("migrate", "", "Migration operation: up, down, or version")
)

func main() {
	flag.Parse()

	if err := run(); err != nil {
		log.Fatalf("dataset-import: %v", err)
	}
}

func run() error {
	db, err := dataset.Open(*dbFile)
	if err != nil {
		return fmt.Errorf("open dataset %s: %w", *dbFile, err)
	}
	defer db.Close()

	switch *migrateCmd {
	case "":
		// fall through to import
	case "up":
		return db.MigrateUp(*migrationsDir)
	case "down":
		return db.MigrateDown(*migrationsDir)
	case "version":
		version, dirty, err := db.MigrateVersion(*migrationsDir)
		if err != nil {
			return err
		}
		log.Printf("schema version %d (dirty=%v)", version, dirty)
		return nil
	default:
		return fmt.Errorf("unknown migrate operation %q (want up, down, or version)", *migrateCmd)
	}

	if *csvFile == "" {
		return fmt.Errorf("no -csv file given")
	}

	f, err := os.Open(*csvFile)
	if err != nil {
		return fmt.Errorf("open CSV: %w", err)
	}
	defer f.Close()

	n, err := db.ImportCSV(f)
	if err != nil {
		return fmt.Errorf("after %d rows: %w", n, err)
	}

	total, err := db.CountRecords()
	if err != nil {
		return err
	}
	log.Printf("imported %d records from %s (%d total in %s)", n, *csvFile, total, *dbFile)
	return nil
}
